package domain

import (
	"time"

	"kucukaslan/bridge/buildinfo"
)

// HealthResponse represents the health status of the service
type HealthResponse struct {
	Status    string              `json:"status" example:"healthy"`
	Timestamp time.Time           `json:"timestamp" example:"2025-11-22T10:00:00Z"`
	BuildInfo buildinfo.Info      `json:"buildInfo"`
	Services  ServiceHealthStatus `json:"services"`
}

// ServiceHealthStatus represents the health status of dependent services
type ServiceHealthStatus struct {
	ClickHouse ServiceStatus `json:"clickhouse"`
	Redis      ServiceStatus `json:"redis"`
}

// ServiceStatus represents the status of a single service
type ServiceStatus struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty" example:""`
}

// DispatchResponse is the structured outcome of one bridge call.
type DispatchResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Events sent successfully"`
	// EventCount is set for send calls: the number of typed events handed to
	// the collector.
	EventCount int `json:"event_count,omitempty" example:"2"`
}

// ModeRules is the externally visible snapshot of one privacy mode's rule
// sets. Property maps are keyed by event name; "*" scopes a rule to all
// events.
type ModeRules struct {
	AllowedStorageFeatures   []string            `json:"allowed_storage_features"`
	ForbiddenStorageFeatures []string            `json:"forbidden_storage_features"`
	AllowedEvents            []string            `json:"allowed_events"`
	ForbiddenEvents          []string            `json:"forbidden_events"`
	AllowedProperties        map[string][]string `json:"allowed_properties"`
	ForbiddenProperties      map[string][]string `json:"forbidden_properties"`
}

// RuleSnapshot is the full privacy rule state, keyed by mode name.
type RuleSnapshot map[string]ModeRules

// RulesResponse carries a privacy rule snapshot to the caller.
type RulesResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message" example:"Rules retrieved successfully"`
	Rules   RuleSnapshot `json:"rules"`
}
