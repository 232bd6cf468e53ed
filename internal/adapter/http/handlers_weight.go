package adapthttp

import (
	"errors"
	"net/http"

	"weightlog/internal/app"
	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

type measurementRequest struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
	Note  string          `json:"note"`
}

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	var body measurementRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	recorded, err := s.weight.Record(r.Context(), user.ID, body.Value, body.Unit, body.Note)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, recorded)
}

type recentItem struct {
	ID     int64           `json:"id"`
	Date   string          `json:"date"`
	Weight decimal.Decimal `json:"weight"`
	Unit   string          `json:"unit"`
	Note   string          `json:"note,omitempty"`
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	limit := intQuery(r, "limit", 14)
	samples, err := s.weight.ListRecent(r.Context(), user.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	unit := r.URL.Query().Get("unit")
	if unit != "kg" && unit != "lb" {
		unit = "kg"
		if p, err := s.profile.Get(r.Context(), user.ID); err == nil && p.PreferredUnit != "" {
			unit = p.PreferredUnit
		}
	}

	items := make([]recentItem, 0, len(samples))
	for _, sm := range samples {
		items = append(items, recentItem{
			ID:     sm.ID,
			Date:   sm.Date.Format("2006-01-02"),
			Weight: domain.ConvertWeight(sm.Weight, unit),
			Unit:   unit,
			Note:   sm.Note,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "unit": unit})
}

func (s *Server) handleWeightUndoLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	deleted, err := s.weight.UndoLast(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleWeightUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r.Context())

	var body struct {
		ID int64 `json:"id"`
		measurementRequest
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	recorded, err := s.weight.Update(r.Context(), user.ID, body.ID, body.Value, body.Unit, body.Note)
	if errors.Is(err, app.ErrSampleNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, recorded)
}
