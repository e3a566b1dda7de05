// Package audit writes the append-only audit trail. Every CRUD
// mutation and webhook trigger lands here, with an error flag when
// the underlying operation failed.
package audit

import (
	"log"
	"sync"

	"github.com/atlascmdb/atlas/internal/database"
	"gorm.io/gorm"
)

// Subscriber receives audit entries as they are recorded. Used by the
// WebSocket event feed.
type Subscriber func(entry database.AuditLog)

// Recorder persists audit entries and fans them out to subscribers.
type Recorder struct {
	db *gorm.DB

	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewRecorder creates a recorder writing to the given database.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Subscribe registers a subscriber for new audit entries.
func (r *Recorder) Subscribe(fn Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// Record writes an audit entry. A non-nil opErr marks the entry as
// failed and stores the error message. Recording itself is best
// effort: a failure to persist the entry is logged, never propagated,
// so audit problems cannot break the operation being audited.
func (r *Recorder) Record(action database.AuditAction, entity, entityID, actor string, opErr error, details database.JSONB) database.AuditLog {
	entry := database.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Actor:    actor,
		Success:  opErr == nil,
		Details:  details,
	}
	if opErr != nil {
		entry.Message = opErr.Error()
	}

	if err := r.db.Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s %s/%s: %v", action, entity, entityID, err)
		return entry
	}

	r.mu.RLock()
	subs := make([]Subscriber, len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.RUnlock()

	for _, fn := range subs {
		fn(entry)
	}

	return entry
}
