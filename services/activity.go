package services

import (
	"context"
	"time"

	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"
)

// recorder writes activity events without failing the request that
// triggered them.
type recorder struct {
	events store.ActivityStore
	log    *logger.Logger
	now    func() time.Time
}

func (r recorder) record(ctx context.Context, sessionID, kind string, payload map[string]any) {
	if r.events == nil || sessionID == "" {
		return
	}
	now := r.now().UTC()
	ev := models.ActivityEvent{SessionID: sessionID, Kind: kind, Payload: payload, TS: now, CreatedAt: now}
	if err := r.events.Record(ctx, ev); err != nil {
		r.log.Warn("failed to record activity", "kind", kind, "session", sessionID, "error", err)
	}
}
