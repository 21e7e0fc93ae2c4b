package app

import (
	"context"
	"errors"
	"time"

	"hydration/internal/domain"
)

// ErrPremiumRequired is returned when a premium feature is requested without
// an active subscription.
var ErrPremiumRequired = errors.New("premium subscription required")

// SubscriptionService answers premium entitlement questions. Subscriptions
// are written by the payment integration, not by this service.
type SubscriptionService struct {
	repo domain.SubscriptionRepository
	now  func() time.Time
}

// NewSubscriptionService creates a SubscriptionService.
func NewSubscriptionService(repo domain.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo, now: time.Now}
}

// WithClock replaces the service's time source.
func (s *SubscriptionService) WithClock(now func() time.Time) *SubscriptionService {
	s.now = now
	return s
}

// Get returns the user's subscription or nil.
func (s *SubscriptionService) Get(ctx context.Context, userID int64) (*domain.Subscription, error) {
	return s.repo.GetSubscription(ctx, userID)
}

// IsPremium reports whether the user currently holds premium entitlement.
func (s *SubscriptionService) IsPremium(ctx context.Context, userID int64) (bool, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.IsPremium(s.now()), nil
}

// RequireAnalyticsPeriod gates the longer analytics periods behind premium.
func (s *SubscriptionService) RequireAnalyticsPeriod(ctx context.Context, userID int64, p Period) error {
	if p == Period7d {
		return nil
	}
	ok, err := s.IsPremium(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPremiumRequired
	}
	return nil
}
