package domain

import (
	"context"
	"time"
)

// SubscriptionStatus mirrors the payment provider's lifecycle states.
type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionTrialing   SubscriptionStatus = "trialing"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

// Subscription tracks a user's premium entitlement.
type Subscription struct {
	UserID             int64              `json:"userId"`
	Status             SubscriptionStatus `json:"status"`
	PlanType           string             `json:"planType"`
	CurrentPeriodStart time.Time          `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time          `json:"currentPeriodEnd"`
	CancelAtPeriodEnd  bool               `json:"cancelAtPeriodEnd"`
}

// IsPremium reports whether the subscription grants premium features at now.
func (s *Subscription) IsPremium(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != SubscriptionActive && s.Status != SubscriptionTrialing {
		return false
	}
	return now.Before(s.CurrentPeriodEnd)
}

// SubscriptionRepository is the port for subscription persistence.
type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, userID int64) (*Subscription, error)
	UpsertSubscription(ctx context.Context, s Subscription) error
}
