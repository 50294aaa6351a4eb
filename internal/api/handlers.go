package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/abhisek/devsecquest/internal/validation"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to DevSecQuest API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unhealthy", Error: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "healthy"})
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rs := s.opts.Validator.Rules()
	out := make([]ruleResponse, len(rs))
	for i, rule := range rs {
		out[i] = ruleResponse{ID: rule.ID, Message: rule.Message}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := s.opts.Challenges.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list challenges")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error fetching challenges", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (s *Server) handleCreateCICD(w http.ResponseWriter, r *http.Request) {
	c, err := s.opts.Challenges.Create(r.Context(), validation.CICDChallenge())
	if err != nil {
		s.logger.Error().Err(err).Msg("create challenge")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error creating challenge", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleValidateCICD(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body", Error: err.Error()})
		return
	}

	req, err := decodeValidateRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body", Error: err.Error()})
		return
	}

	outcome, err := s.opts.Validator.ValidateSubmission(r.Context(), req.JenkinsConfig)
	if err != nil {
		var perr *validation.PersistenceError
		switch {
		case errors.Is(err, validation.ErrMissingInput):
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "jenkinsConfig is required"})
			return
		case errors.As(err, &perr):
			// Already logged and counted by the service; the pass stands.
		default:
			s.logger.Error().Err(err).Msg("validate submission")
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error validating challenge", Error: err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, outcome.Response())
}
