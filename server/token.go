package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const jwtSubject = "operator"

// generateJWT mints a bearer token for the operator: an HS512 token signed
// with the server secret, valid for one hour.
func (s *Server) generateJWT() (string, error) {
	claims := jwt.MapClaims{
		"iss": "sgserver",
		"sub": jwtSubject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(s.Secret)
}

func (s *Server) validateJWT(tokStr string) error {
	_, err := jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("sgserver"), jwt.WithSubject(jwtSubject), jwt.WithLeeway(time.Minute))
	return err
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// requireAuth wraps next so it only runs when the request carries a valid
// bearer token, checked against a single operator credential rather than a
// user lookup.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		tok, err := getBearerToken(req)
		if err == nil {
			err = s.validateJWT(tok)
		}
		if err != nil {
			time.Sleep(s.UnauthDelay)
			writeJSONError(w, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		next(w, req)
	}
}
