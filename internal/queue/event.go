// Package queue defines catalog change events and publishes them to the
// message broker so downstream services (storefront caches, search
// indexers) can react without polling the database.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Actions carried by CatalogChangedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Resource names carried by CatalogChangedEvent.
const (
	ResourceProductType  = "product_type"
	ResourcePartCategory = "part_category"
	ResourcePartOption   = "part_option"
)

// CatalogChangedEvent is published after a catalog write commits.
type CatalogChangedEvent struct {
	EventID    string `json:"event_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	ResourceID uint64 `json:"resource_id"`
	Admin      string `json:"admin"`
	OccurredAt string `json:"occurred_at"`
}

// NewCatalogChangedEvent stamps a fresh event id and the current UTC time.
func NewCatalogChangedEvent(resource, action string, id uint64, admin string) CatalogChangedEvent {
	return CatalogChangedEvent{
		EventID:    uuid.NewString(),
		Resource:   resource,
		Action:     action,
		ResourceID: id,
		Admin:      admin,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
