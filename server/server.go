// Package server exposes a read-only HTTP API over a store of benchmark
// runs, plus a single authenticated endpoint to trigger a new sweep: a
// thin chi router, a JWT bearer auth layer (token.go), and a JSON response
// convention (api.go) — built around a single operator credential rather
// than a user database, since this API has one administrative action, not
// accounts.
package server

import (
	"net/http"
	"time"

	"github.com/andrewwinslow/grammar-approx/internal/store"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// PathPrefix is the prefix every route in this package is mounted under.
const PathPrefix = "/api/v1"

// Server holds the dependencies the HTTP API needs to serve requests.
type Server struct {
	DB     *store.Store
	Secret []byte

	// OperatorPasswordHash is the bcrypt hash of the operator password that
	// Login accepts in exchange for a bearer token.
	OperatorPasswordHash []byte

	// UnauthDelay deprioritizes failed-auth responses to slow down
	// credential-guessing attempts.
	UnauthDelay time.Duration
}

// HashPassword bcrypt-hashes an operator password for use as
// Server.OperatorPasswordHash.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Router builds the chi router serving every endpoint under PathPrefix.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Route(PathPrefix, func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/grammars/{algorithm}/{n}/{sample}", s.handleGetGrammar)
		r.Post("/runs", s.requireAuth(s.handleCreateRun))
	})
	return r
}
