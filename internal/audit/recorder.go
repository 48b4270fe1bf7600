// Package audit keeps the global append-only log of state-changing actions.
package audit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/ids"
	"github.com/balkashynov/tally/internal/models"
)

// TimestampLayout renders timestamps as ISO-8601 UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Recorder appends entries to the auditLogs list of a store
type Recorder struct {
	store db.Store
	ids   *ids.Generator
	now   func() time.Time
	log   *zap.Logger
}

// NewRecorder creates a Recorder writing to store
func NewRecorder(store db.Store, gen *ids.Generator, log *zap.Logger) *Recorder {
	return &Recorder{
		store: store,
		ids:   gen,
		now:   time.Now,
		log:   log,
	}
}

// Record reads the whole log, appends one entry and writes the whole log back
func (r *Recorder) Record(ctx context.Context, username string, action models.Action, details string) (models.AuditEntry, error) {
	entries, err := r.load(ctx)
	if err != nil {
		return models.AuditEntry{}, err
	}

	var floor int64
	if n := len(entries); n > 0 {
		floor = entries[n-1].ID
	}

	entry := models.AuditEntry{
		ID:        r.ids.Next(floor),
		Timestamp: r.now().UTC().Format(TimestampLayout),
		Username:  username,
		Action:    action,
		Details:   details,
	}
	entries = append(entries, entry)

	if err := db.SetJSON(ctx, r.store, db.KeyAuditLogs, entries, 0); err != nil {
		return models.AuditEntry{}, fmt.Errorf("failed to write audit log: %w", err)
	}

	r.log.Debug("audit entry recorded",
		zap.String("username", username),
		zap.String("action", string(action)),
		zap.Int64("id", entry.ID),
	)
	return entry, nil
}

// List returns every entry, newest first. Entries with equal timestamps keep
// their relative insertion order reversed.
func (r *Recorder) List(ctx context.Context) ([]models.AuditEntry, error) {
	entries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	// Reverse first so the stable sort leaves ties newest-first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return parseTimestamp(entries[i].Timestamp).After(parseTimestamp(entries[j].Timestamp))
	})
	return entries, nil
}

func (r *Recorder) load(ctx context.Context) ([]models.AuditEntry, error) {
	entries := []models.AuditEntry{}
	if err := db.GetJSON(ctx, r.store, db.KeyAuditLogs, &entries); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}

// parseTimestamp accepts any RFC 3339 timestamp; unparsable values sort last
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
