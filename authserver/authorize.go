// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package authserver

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"time"

	"github.com/stacklok/memos-mcp/authserver/storage"
	"github.com/stacklok/memos-mcp/oauth"
)

// loginPageTemplate is the login form rendered by GET /authorize. The
// validated request parameters travel through hidden fields and are
// re-validated on submission, so nothing here is trusted on POST.
const loginPageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Sign in</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 24rem; margin: 4rem auto; padding: 0 1rem; }
    input[type=password] { width: 100%; padding: 0.5rem; margin: 0.5rem 0 1rem; }
    button { padding: 0.5rem 1.5rem; }
    .error { color: #b00020; }
  </style>
</head>
<body>
  <h1>Sign in</h1>
  <p>{{if .ClientName}}<strong>{{.ClientName}}</strong>{{else}}A client{{end}} is requesting access to the memos server.</p>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/authorize">
    <input type="hidden" name="client_id" value="{{.ClientID}}">
    <input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">
    <input type="hidden" name="response_type" value="{{.ResponseType}}">
    <input type="hidden" name="state" value="{{.State}}">
    <input type="hidden" name="code_challenge" value="{{.CodeChallenge}}">
    <input type="hidden" name="code_challenge_method" value="{{.CodeChallengeMethod}}">
    <label for="password">Password</label>
    <input type="password" id="password" name="password" autofocus>
    <button type="submit">Authorize</button>
  </form>
</body>
</html>
`

// loginPageData feeds loginPageTemplate.
type loginPageData struct {
	ClientName          string
	Error               string
	ClientID            string
	RedirectURI         string
	ResponseType        string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// authorizeRequest is a fully validated authorization request.
type authorizeRequest struct {
	client        *storage.Client
	redirectURI   string
	state         string
	codeChallenge string
}

// authorizeError is a validation failure shown directly to the user agent.
// Authorization request errors are never redirected: until the client and
// redirect URI are proven valid, redirecting would hand the error (and an
// open-redirect primitive) to an unverified destination.
type authorizeError struct {
	code        string
	description string
	status      int
}

// validateAuthorizeRequest checks an authorization request, whether it
// arrives as GET query parameters or as the hidden fields of the login form.
func (s *Server) validateAuthorizeRequest(r *http.Request, get func(string) string) (*authorizeRequest, *authorizeError) {
	clientID := get("client_id")
	if clientID == "" {
		return nil, &authorizeError{errorCodeInvalidRequest, "client_id is required", http.StatusBadRequest}
	}

	client, err := s.store.GetClient(r.Context(), clientID)
	if err != nil {
		return nil, &authorizeError{errorCodeInvalidClient, "unknown client", http.StatusBadRequest}
	}

	redirectURI := get("redirect_uri")
	if !registeredRedirectURI(client, redirectURI) {
		return nil, &authorizeError{errorCodeInvalidRequest, "redirect_uri does not match a registered redirect URI", http.StatusBadRequest}
	}

	if rt := get("response_type"); rt != oauth.ResponseTypeCode {
		return nil, &authorizeError{errorCodeInvalidRequest, "response_type must be code", http.StatusBadRequest}
	}

	challenge := get("code_challenge")
	if challenge == "" {
		return nil, &authorizeError{errorCodeInvalidRequest, "code_challenge is required", http.StatusBadRequest}
	}
	if method := get("code_challenge_method"); method != oauth.PKCEMethodS256 {
		return nil, &authorizeError{errorCodeInvalidRequest, "code_challenge_method must be S256", http.StatusBadRequest}
	}
	if err := validateCodeChallenge(challenge); err != nil {
		return nil, &authorizeError{errorCodeInvalidRequest, "code_challenge is not a valid S256 challenge", http.StatusBadRequest}
	}

	return &authorizeRequest{
		client:        client,
		redirectURI:   redirectURI,
		state:         get("state"),
		codeChallenge: challenge,
	}, nil
}

// registeredRedirectURI reports whether uri exactly matches one of the
// client's registered redirect URIs. Matching is byte equality per the
// OAuth 2.0 Security BCP; no prefix or pattern logic.
func registeredRedirectURI(client *storage.Client, uri string) bool {
	if uri == "" {
		return false
	}
	for _, registered := range client.RedirectURIs {
		if registered == uri {
			return true
		}
	}
	return false
}

// handleAuthorizeForm validates the authorization request and renders the
// login form.
func (s *Server) handleAuthorizeForm(w http.ResponseWriter, r *http.Request) {
	req, authErr := s.validateAuthorizeRequest(r, r.URL.Query().Get)
	if authErr != nil {
		s.logger.Warn("rejected authorization request",
			"error", authErr.code,
			"description", authErr.description)
		writeOAuthError(w, authErr.code, authErr.description, authErr.status)
		return
	}

	s.renderLoginPage(w, req, http.StatusOK, "")
}

// handleAuthorizeSubmit re-validates the submitted request, checks the
// shared password, and on success issues an authorization code bound to the
// client, redirect URI, and PKCE challenge.
func (s *Server) handleAuthorizeSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, errorCodeInvalidRequest, "failed to parse form", http.StatusBadRequest)
		return
	}

	req, authErr := s.validateAuthorizeRequest(r, r.PostForm.Get)
	if authErr != nil {
		s.logger.Warn("rejected authorization submission",
			"error", authErr.code,
			"description", authErr.description)
		writeOAuthError(w, authErr.code, authErr.description, authErr.status)
		return
	}

	if subtle.ConstantTimeCompare([]byte(r.PostForm.Get("password")), s.password) != 1 {
		s.logger.Warn("login failed", "client_id", req.client.ID)
		s.renderLoginPage(w, req, http.StatusUnauthorized, "Incorrect password.")
		return
	}

	code, err := newSecret()
	if err != nil {
		s.logger.Error("failed to generate authorization code", "error", err)
		writeOAuthError(w, errorCodeServerError, "failed to issue authorization code", http.StatusInternalServerError)
		return
	}

	grant := &storage.AuthorizationCode{
		ClientID:      req.client.ID,
		RedirectURI:   req.redirectURI,
		CodeChallenge: req.codeChallenge,
		ExpiresAt:     time.Now().Add(AuthorizationCodeTTL),
	}
	if err := s.store.CreateAuthorizationCode(r.Context(), code, grant); err != nil {
		s.logger.Error("failed to store authorization code", "error", err)
		writeOAuthError(w, errorCodeServerError, "failed to issue authorization code", http.StatusInternalServerError)
		return
	}

	s.logger.Info("issued authorization code", "client_id", req.client.ID)

	redirect, err := url.Parse(req.redirectURI)
	if err != nil {
		// The URI was validated at registration; a parse failure here is a bug.
		writeOAuthError(w, errorCodeServerError, "invalid redirect URI", http.StatusInternalServerError)
		return
	}
	query := redirect.Query()
	query.Set("code", code)
	if req.state != "" {
		query.Set("state", req.state)
	}
	redirect.RawQuery = query.Encode()

	http.Redirect(w, r, redirect.String(), http.StatusFound)
}

func (s *Server) renderLoginPage(w http.ResponseWriter, req *authorizeRequest, status int, errMsg string) {
	data := loginPageData{
		ClientName:          req.client.Name,
		Error:               errMsg,
		ClientID:            req.client.ID,
		RedirectURI:         req.redirectURI,
		ResponseType:        oauth.ResponseTypeCode,
		State:               req.state,
		CodeChallenge:       req.codeChallenge,
		CodeChallengeMethod: oauth.PKCEMethodS256,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.loginPage.Execute(w, data); err != nil {
		s.logger.Error("failed to render login page", "error", err)
	}
}
