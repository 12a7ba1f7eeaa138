package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// handleLogin authenticates against the configured credentials and
// issues a short-lived HS256 token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.security.JWT.Secret == "" {
		writeError(w, http.StatusNotImplemented, ErrCodeInternal, "authentication is not configured")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.security.JWT.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.security.JWT.Password)) == 1
	if !userOK || !passOK {
		writeUnauthorized(w, "invalid credentials")
		return
	}

	now := time.Now()
	expiry := now.Add(s.security.JWT.GetAccessTokenTTL())
	claims := jwt.MapClaims{
		"sub":  req.Username,
		"iat":  now.Unix(),
		"exp":  expiry.Unix(),
		"role": "operator",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.security.JWT.Secret))
	if err != nil {
		s.logger.Error("signing token", "error", err)
		writeInternalError(w, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     signed,
		ExpiresAt: expiry.Unix(),
	})
}
