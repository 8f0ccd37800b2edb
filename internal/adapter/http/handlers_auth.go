package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"fittrack/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/oauth2"
)

// SSOConfig holds the optional OIDC login wiring.
type SSOConfig struct {
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// handleToken implements the login endpoint: form-encoded username and
// password exchanged for a bearer token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		writeError(w, domain.Invalid("invalid form payload"))
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	tok, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": tok,
		"token_type":   "bearer",
	})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.sso == nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.sso.OAuth2Config.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.sso == nil {
		writeError(w, domain.ErrNotFound)
		return
	}

	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		writeError(w, domain.Invalid("invalid state"))
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", MaxAge: -1, Path: "/"})

	oauthToken, err := s.sso.OAuth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.log.Warn().Err(err).Msg("sso code exchange failed")
		writeError(w, domain.ErrUnauthorized)
		return
	}
	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	verifier := s.sso.Provider.Verifier(&oidc.Config{ClientID: s.sso.OAuth2Config.ClientID})
	idToken, err := verifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("sso id token rejected")
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var claims struct {
		Email string `json:"email"`
		Sub   string `json:"sub"`
	}
	if err = idToken.Claims(&claims); err != nil {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	username := claims.Email
	if username == "" {
		username = claims.Sub
	}

	tok, err := s.auth.LoginSSO(r.Context(), username, claims.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": tok,
		"token_type":   "bearer",
	})
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
