// Package models contains the domain structures shared between the API
// server, the storage layer and the console client: subscriptions, alerts,
// dashboard aggregates and the request DTOs received as JSON.
package models

import "time"

// Satellite technologies offered by the reseller.
const (
	TechnologyStarlink = "Starlink"
	TechnologyVSAT     = "VSAT"
)

// Lifecycle statuses derived from a subscription's dates. The status is a
// projection recomputed on every read, never stored and never supplied by
// a client.
const (
	StatusActive   = "active"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
)

// Subscription is the full record as served by the API. ID, EndDate and
// Status are server-owned: EndDate is recomputed from StartDate and
// DurationMonths on every write, Status on every read.
type Subscription struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	Phone          string    `json:"phone"`
	Technology     string    `json:"technology"` // Starlink or VSAT
	Plan           string    `json:"plan"`
	Bandwidth      string    `json:"bandwidth"`
	Frequency      string    `json:"frequency"` // C-band, Ku-band or Ka-band
	Amount         int       `json:"amount"`    // FCFA per subscription term
	DurationMonths int       `json:"duration_months"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// SubscriptionEntry carries the editable attributes of a subscription as
// received from JSON. StartDate arrives as an RFC3339 instant, normalized by
// the console to start of day.
type SubscriptionEntry struct {
	ClientName     string `json:"client_name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Technology     string `json:"technology" validate:"required,oneof=Starlink VSAT"`
	Plan           string `json:"plan" validate:"required"`
	Bandwidth      string `json:"bandwidth" validate:"required"`
	Frequency      string `json:"frequency" validate:"required,oneof=C-band Ku-band Ka-band"`
	Amount         int    `json:"amount" validate:"required,gt=0"`
	DurationMonths int    `json:"duration_months" validate:"required,oneof=1 3 6 12"`
	StartDate      string `json:"start_date" validate:"required"`
}

// Alert is a read projection over a subscription currently in a non-active
// state. It is never created or dismissed directly; it disappears when the
// underlying subscription reclassifies to active.
type Alert struct {
	ID             string    `json:"id"`
	SubscriptionID string    `json:"subscription_id"`
	ClientName     string    `json:"client_name"`
	Message        string    `json:"message"`
	AlertType      string    `json:"alert_type"` // expiring or expired
	CreatedAt      time.Time `json:"created_at"`
}

// TechnologyCount is one slice of the per-technology breakdown.
type TechnologyCount struct {
	Technology string `json:"technology"`
	Count      int    `json:"count"`
}

// StatusBreakdown counts subscriptions per lifecycle status.
type StatusBreakdown struct {
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// DashboardStats is the aggregate snapshot served by /dashboard/stats,
// recomputed on every fetch.
type DashboardStats struct {
	TotalSubscribers    int               `json:"total_subscribers"`
	MonthlyRevenue      int               `json:"monthly_revenue"`
	ActiveSubscriptions int               `json:"active_subscriptions"`
	UrgentAlerts        int               `json:"urgent_alerts"`
	TechnologyBreakdown []TechnologyCount `json:"technology_breakdown"`
	StatusBreakdown     StatusBreakdown   `json:"status_breakdown"`
}

// RevenuePoint is one month of the revenue chart.
type RevenuePoint struct {
	Month   string `json:"month"` // 2006-01
	Revenue int    `json:"revenue"`
}
