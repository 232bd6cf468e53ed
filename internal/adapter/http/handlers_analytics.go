package adapthttp

import (
	"errors"
	"net/http"

	"weightlog/internal/app"
)

func (s *Server) handleTrendAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	start, err := dateQuery(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := dateQuery(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.analytics.GetTrendAnalysis(r.Context(), user.ID, start, end)
	if errors.Is(err, app.ErrInvalidRange) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	proj, err := s.analytics.GetProjection(r.Context(), user.ID)
	if errors.Is(err, app.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}
