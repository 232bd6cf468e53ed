package adapthttp

import (
	"errors"
	"net/http"

	"weightlog/internal/app"

	"github.com/shopspring/decimal"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	profile, err := s.profile.Get(r.Context(), user.ID)
	if errors.Is(err, app.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleProfileGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	var body struct {
		GoalWeight *decimal.Decimal `json:"goalWeight"`
		Unit       string           `json:"unit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, err := s.profile.SetGoalWeight(r.Context(), user.ID, body.GoalWeight, body.Unit)
	if errors.Is(err, app.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleProfileUnit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	var body struct {
		Unit string `json:"unit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, err := s.profile.SetPreferredUnit(r.Context(), user.ID, body.Unit)
	if errors.Is(err, app.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
