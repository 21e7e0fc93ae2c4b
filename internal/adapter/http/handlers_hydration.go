package adapthttp

import (
	"fmt"
	"net/http"
	"time"

	"hydration/internal/app"
	"hydration/internal/domain"
)

type profileRequest struct {
	Weight         float64              `json:"weight"`
	WeightUnit     string               `json:"weightUnit"`
	Gender         domain.Gender        `json:"gender"`
	ActivityLevel  domain.ActivityLevel `json:"activityLevel"`
	CustomGoal     *int                 `json:"customGoal"`
	Timezone       string               `json:"timezone"`
	Location       string               `json:"location"`
	UseGeolocation bool                 `json:"useGeolocation"`
	UseWeather     bool                 `json:"useWeather"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	switch r.Method {
	case http.MethodGet:
		p, err := s.svc.Profiles.GetProfile(r.Context(), user.ID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if p == nil {
			s.fail(w, r, app.ErrProfileRequired)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodPut, http.MethodPost:
		var req profileRequest
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p, err := s.svc.Profiles.SaveProfile(r.Context(), user.ID, app.ProfileInput(req))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		// A new goal changes today's progress.
		if _, _, err := s.svc.Summaries.RecomputeToday(r.Context(), user.ID); err != nil {
			s.log.WarnContext(r.Context(), "summary refresh after profile save failed", "user_id", user.ID, "err", err)
		}
		writeJSON(w, http.StatusOK, p)

	default:
		methodNotAllowed(w)
	}
}

type intakeRequest struct {
	Amount              int        `json:"amount"`
	BeverageType        string     `json:"beverageType"`
	HydrationPercentage *int       `json:"hydrationPercentage"`
	LoggedAt            *time.Time `json:"loggedAt"`
}

// handleIntake records a drink and refreshes the summary of its day. The log
// is the source of truth, so a failed refresh still answers 201.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	user := currentUser(r)

	var req intakeRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	log, err := s.svc.Intakes.Record(r.Context(), user.ID, app.IntakeInput{
		AmountMl:            req.Amount,
		BeverageType:        req.BeverageType,
		HydrationPercentage: req.HydrationPercentage,
		LoggedAt:            req.LoggedAt,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sum, err := s.svc.Summaries.UpdateDailySummary(r.Context(), user.ID, log.Date)
	if err != nil {
		s.log.WarnContext(r.Context(), "daily summary update failed", "user_id", user.ID, "date", log.Date, "err", err)
		sum = nil
	}

	unlocked := []domain.Achievement{}
	if sum != nil && s.svc.Achievements != nil {
		got, err := s.svc.Achievements.Evaluate(r.Context(), *sum)
		if err != nil {
			s.log.WarnContext(r.Context(), "achievement evaluation failed", "user_id", user.ID, "err", err)
		}
		if got != nil {
			unlocked = got
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"log":          log,
		"summary":      sum,
		"achievements": unlocked,
	})
}

func (s *Server) handleIntakeRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	logs, err := s.svc.Intakes.ListRecent(r.Context(), currentUser(r).ID, intQuery(r, "limit", 20))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(logs)})
}

func (s *Server) handleIntakeDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	user := currentUser(r)

	date := r.URL.Query().Get("date")
	if date == "" {
		_, today, err := s.today(r, user.ID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		date = today
	}
	if _, err := domain.ParseDate(date); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation))
		return
	}

	logs, err := s.svc.Intakes.ListByDate(r.Context(), user.ID, date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	total := 0
	for _, l := range logs {
		total += l.AmountMl
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date,
		"total": total,
		"items": nonNil(logs),
	})
}

// today recomputes and returns the caller's summary for their local date.
func (s *Server) today(r *http.Request, userID int64) (*domain.DailySummary, string, error) {
	return s.svc.Summaries.RecomputeToday(r.Context(), userID)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	user := currentUser(r)

	p, err := s.svc.Profiles.GetProfile(r.Context(), user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if p == nil {
		s.fail(w, r, app.ErrProfileRequired)
		return
	}

	sum, date, err := s.today(r, user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	streak, err := s.svc.Streaks.GetStreakCount(r.Context(), user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	goal := p.EffectiveGoal()
	remaining := goal
	if sum != nil {
		remaining = max(goal-sum.TotalIntake, 0)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":      date,
		"summary":   sum,
		"streak":    streak,
		"goal":      goal,
		"remaining": remaining,
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	streak, err := s.svc.Streaks.GetStreakCount(r.Context(), currentUser(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rows, err := s.svc.Summaries.ListRecent(r.Context(), currentUser(r).ID, intQuery(r, "days", 30))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(rows)})
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
