package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	grammarapprox "github.com/andrewwinslow/grammar-approx"
	"github.com/andrewwinslow/grammar-approx/internal/bench"
	"github.com/andrewwinslow/grammar-approx/internal/store"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, short, detail string) {
	writeJSON(w, status, map[string]string{"error": short, "message": detail})
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return
	}

	if err := bcrypt.CompareHashAndPassword(s.OperatorPasswordHash, []byte(body.Password)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "bad credentials")
		return
	}

	tok, err := s.generateJWT()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: tok})
}

func (s *Server) handleListRuns(w http.ResponseWriter, req *http.Request) {
	runs, err := s.DB.ListRuns(req.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

type runDetail struct {
	store.Run
	Results []store.Result `json:"results"`
}

func (s *Server) handleGetRun(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	run, results, err := s.DB.GetRun(req.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runDetail{Run: run, Results: results})
}

func (s *Server) handleGetGrammar(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	algorithm := chi.URLParam(req, "algorithm")

	n, err := strconv.Atoi(chi.URLParam(req, "n"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", "n must be an integer")
		return
	}
	sample, err := strconv.Atoi(chi.URLParam(req, "sample"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", "sample must be an integer")
		return
	}

	g, err := s.DB.LoadGrammar(req.Context(), id, algorithm, n, sample)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "run did not retain a grammar for that key")
		return
	}

	keys, rhss := g.Entries()
	rules := make(map[string][]string, len(keys))
	for i, k := range keys {
		rules[k] = rhss[i]
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"size":  g.Size(),
		"rules": rules,
	})
}

type createRunRequest struct {
	Algorithms []string `json:"algorithms"`
	Sizes      []int    `json:"sizes"`
	Samples    int      `json:"samples"`
	Alphabet   string   `json:"alphabet"`
	Seed       int64    `json:"seed"`
}

// handleCreateRun triggers a new sweep synchronously within the request and
// persists it, a thin convenience layer over the same bench.Sweep the CLI
// calls (SPEC_FULL.md §4.9) — it does not change any algorithm semantics.
func (s *Server) handleCreateRun(w http.ResponseWriter, req *http.Request) {
	var body createRunRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return
	}

	cfg := bench.DefaultSweepConfig()
	if len(body.Sizes) > 0 {
		cfg.Sizes = body.Sizes
	}
	if body.Samples > 0 {
		cfg.SamplesPerSize = body.Samples
	}
	if body.Alphabet != "" {
		cfg.Alphabet = body.Alphabet
	}
	if body.Seed != 0 {
		cfg.Seed = body.Seed
	}

	algorithms := grammarapprox.Algorithms
	if len(body.Algorithms) > 0 {
		algorithms = nil
		for _, name := range body.Algorithms {
			a, err := grammarapprox.ParseAlgorithm(name)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
				return
			}
			algorithms = append(algorithms, a)
		}
	}

	report, err := bench.Sweep(algorithms, cfg)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "sweep_failed", err.Error())
		return
	}

	if err := s.persistReport(req.Context(), cfg, report); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) persistReport(ctx context.Context, cfg bench.SweepConfig, report bench.Report) error {
	runID, err := s.DB.CreateRun(ctx, cfg.Alphabet, cfg.SamplesPerSize)
	if err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	for _, c := range report.Cells {
		if err := s.DB.SaveResult(ctx, runID, c.Algorithm.String(), c.N, c.MeanSize, c.MeanSeconds); err != nil {
			return fmt.Errorf("saving result: %w", err)
		}
	}
	return nil
}
