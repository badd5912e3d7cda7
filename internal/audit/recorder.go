// Package audit appends to the action log. Recording is best-effort: an
// audit failure must never fail the operation being audited, so callers
// ignore the returned error and the recorder logs it instead.
package audit

import (
	"github.com/jnowat/SteloPTC/internal/store"
	"github.com/jnowat/SteloPTC/internal/util"
)

// Recorder writes audit entries to the store
type Recorder struct {
	store *store.Store
}

// NewRecorder returns a Recorder backed by the given store
func NewRecorder(s *store.Store) *Recorder {
	return &Recorder{store: s}
}

// Record appends one entry. A nil actorID records a system action. The
// returned error is informational only; Record already logs failures.
func (r *Recorder) Record(actorID *string, action, entityType string, entityID, oldValue, newValue, details *string) error {
	err := r.store.InsertAuditEntry(actorID, action, entityType, entityID, oldValue, newValue, details)
	if err != nil {
		util.WarnLog("audit write failed (%s %s): %v", action, entityType, err)
	}
	return err
}
