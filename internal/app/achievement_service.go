package app

import (
	"context"
	"time"

	"hydration/internal/domain"
	"hydration/internal/observability"
)

// AchievementView is a catalog entry with the user's unlock state.
type AchievementView struct {
	domain.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// AchievementService evaluates and lists achievements. Unlocks are never
// revoked.
type AchievementService struct {
	repo    domain.AchievementRepository
	intakes domain.IntakeRepository
	now     func() time.Time
}

// NewAchievementService creates an AchievementService.
func NewAchievementService(repo domain.AchievementRepository, intakes domain.IntakeRepository) *AchievementService {
	return &AchievementService{repo: repo, intakes: intakes, now: time.Now}
}

// Evaluate unlocks whatever the summary's day earned and returns the
// achievements that are new.
func (s *AchievementService) Evaluate(ctx context.Context, sum domain.DailySummary) ([]domain.Achievement, error) {
	logs, err := s.intakes.GetIntakeLogsByDate(ctx, sum.UserID, sum.Date)
	if err != nil {
		return nil, err
	}
	var unlocked []domain.Achievement
	for _, code := range domain.EarnedAchievements(sum, logs) {
		isNew, err := s.repo.UnlockAchievement(ctx, sum.UserID, code, s.now().UTC())
		if err != nil {
			return unlocked, err
		}
		if !isNew {
			continue
		}
		observability.RecordAchievementUnlocked(code)
		for _, a := range domain.AchievementCatalog {
			if a.Code == code {
				unlocked = append(unlocked, a)
			}
		}
	}
	return unlocked, nil
}

// List returns the whole catalog annotated with the user's unlocks.
func (s *AchievementService) List(ctx context.Context, userID int64) ([]AchievementView, error) {
	rows, err := s.repo.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	at := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		at[r.Code] = r.UnlockedAt
	}
	out := make([]AchievementView, 0, len(domain.AchievementCatalog))
	for _, a := range domain.AchievementCatalog {
		v := AchievementView{Achievement: a}
		if t, ok := at[a.Code]; ok {
			v.Unlocked = true
			v.UnlockedAt = &t
		}
		out = append(out, v)
	}
	return out, nil
}
