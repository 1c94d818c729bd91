package adapthttp

import (
	"errors"
	"net/http"

	"feedback/internal/app"
	"feedback/internal/domain"
)

func (s *Server) handleChartsDaily(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	days := intQuery(r, "days", 30)

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKG
		prefs, err := s.svc.Preferences.ForUser(r.Context(), user.ID)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		if prefs != nil && domain.ValidUnit(prefs.WeightUnits) {
			unit = prefs.WeightUnits
		}
	}

	today := domain.Today()
	points, err := s.svc.Charts.GetDailyUntil(r.Context(), user.ID, today, days, unit)
	if errors.Is(err, app.ErrInvalidUnit) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	if days > len(points) {
		days = len(points)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days":  days,
		"unit":  unit,
		"today": today.String(),
		"items": points,
	})
}
