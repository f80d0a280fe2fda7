package services

import (
	"context"
	"fmt"
	"log"

	jsoniter "github.com/json-iterator/go"

	"library-admin/internal/auth"
	"library-admin/internal/backend"
	"library-admin/internal/cache"
	"library-admin/internal/models"
	"library-admin/internal/realtime"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AuditRecorder persists one audit row per mutation.
type AuditRecorder interface {
	CreateActionLog(ctx context.Context, entry *models.AdminActionLog) error
}

// Broadcaster fans change events out to open pages.
type Broadcaster interface {
	Publish(ev realtime.Event)
}

// dependants lists the collections whose cached lists embed the key resource.
var dependants = map[string][]string{
	backend.ResourceAuthors: {backend.ResourceBooks, backend.ResourceBorrows},
	backend.ResourceGenres:  {backend.ResourceBooks, backend.ResourceBorrows},
	backend.ResourceBooks:   {backend.ResourceBorrows},
	backend.ResourceBorrows: {backend.ResourceBooks},
}

// ChangeLog runs the side effects of a successful mutation. Both fields are
// optional; a nil *ChangeLog only invalidates the cache.
type ChangeLog struct {
	Audit  AuditRecorder
	Events Broadcaster
}

func NewChangeLog(audit AuditRecorder, events Broadcaster) *ChangeLog {
	return &ChangeLog{Audit: audit, Events: events}
}

// Record invalidates cached lists, publishes the event and writes the audit
// row. Failures here are logged and never undo the mutation.
func (c *ChangeLog) Record(ctx context.Context, resource, action string, id int, description string, value interface{}) {
	cache.InvalidateLists(ctx, append([]string{resource}, dependants[resource]...)...)

	if c == nil {
		return
	}

	if c.Events != nil {
		c.Events.Publish(realtime.Event{Resource: resource, Action: action, ID: id})
	}

	if c.Audit == nil {
		return
	}

	entry := &models.AdminActionLog{
		Actor:       auth.ActorFromContext(ctx),
		ActionType:  action,
		TargetType:  resource,
		Description: description,
	}
	if id > 0 {
		entry.TargetID = &id
	}
	if value != nil {
		if data, err := json.Marshal(value); err == nil {
			s := string(data)
			entry.NewValue = &s
		}
	}
	if ip := auth.ClientIPFromContext(ctx); ip != "" {
		entry.IPAddress = &ip
	}

	if err := c.Audit.CreateActionLog(ctx, entry); err != nil {
		log.Printf("[Audit] Failed to record %s %s %d: %v", action, resource, id, err)
	}
}

// cachedList serves a collection from Redis when possible and stores the
// backend's answer otherwise.
func cachedList[T any](ctx context.Context, resource string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if data, ok := cache.GetList(ctx, resource); ok {
		items := make([]T, 0)
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		log.Printf("[Redis] Dropping unreadable %s list", resource)
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", resource, err)
	}

	if data, err := json.Marshal(items); err == nil {
		cache.SetList(ctx, resource, data)
	}
	return items, nil
}
