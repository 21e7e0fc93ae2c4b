package adapthttp

import (
	"net/http"

	"hydration/internal/app"
	"hydration/internal/domain"
)

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	user := currentUser(r)

	period := app.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = app.Period7d
	}
	if period.Days() == 0 {
		s.fail(w, r, app.ErrInvalidPeriod)
		return
	}
	if s.svc.Subscriptions != nil {
		if err := s.svc.Subscriptions.RequireAnalyticsPeriod(r.Context(), user.ID, period); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	out, err := s.svc.Analytics.GetAdvancedAnalytics(r.Context(), user.ID, period)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleWeatherAdjustment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	lat, err := floatQuery(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lon, err := floatQuery(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.svc.Weather.Adjustment(r.Context(), currentUser(r).ID, domain.WeatherQuery{
		Lat:  lat,
		Lon:  lon,
		City: r.URL.Query().Get("city"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type reminderRequest struct {
	IntervalMinutes int    `json:"intervalMinutes"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	IsEnabled       bool   `json:"isEnabled"`
	SoundID         string `json:"soundId"`
}

func (s *Server) handleReminder(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	switch r.Method {
	case http.MethodGet:
		rem, err := s.svc.Reminders.Get(r.Context(), user.ID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rem)

	case http.MethodPut:
		var req reminderRequest
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rem, err := s.svc.Reminders.Save(r.Context(), user.ID, domain.Reminder{
			IntervalMinutes: req.IntervalMinutes,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			IsEnabled:       req.IsEnabled,
			SoundID:         req.SoundID,
		})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rem)

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleReminderNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	next, ok, err := s.svc.Reminders.Next(r.Context(), currentUser(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false, "next": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enabled": true, "next": next})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	views, err := s.svc.Achievements.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(views)})
}

func (s *Server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	user := currentUser(r)

	sub, err := s.svc.Subscriptions.Get(r.Context(), user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	premium, err := s.svc.Subscriptions.IsPremium(r.Context(), user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subscription": sub,
		"premium":      premium,
	})
}
