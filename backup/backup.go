// Package backup exports all data of a user as a JSON document and can
// upload it to an S3-compatible bucket.
package backup

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/store"
	"github.com/ctdp-app/ctdp/tracker"
)

// FormatVersion is bumped whenever the export layout changes.
const FormatVersion = 1

var errCollect = &apperr.Error{
	Message: "collecting backup data failed",
	Kind:    apperr.Persistence,
}

// Export is the backup document.
type Export struct {
	ExportedAt      time.Time               `json:"exportedAt"`
	UserID          string                  `json:"userId"`
	Todos           []models.Todo           `json:"todos"`
	Archived        []models.Todo           `json:"archived"`
	Sessions        []models.FocusSession   `json:"sessions"`
	SubtaskSessions []models.SubtaskSession `json:"subtaskSessions"`
	Version         int                     `json:"version"`
}

// Collect reads every todo, session and attribution record of userID.
func Collect(ctx context.Context, db store.DB, userID string, now time.Time) (*Export, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, tracker.ErrUnauthorized
	}

	e := &Export{
		Version:    FormatVersion,
		ExportedAt: now.UTC(),
		UserID:     userID,
	}

	var err error

	if e.Todos, err = db.ListTodos(ctx, userID, false); err != nil {
		return nil, errCollect.Wrap(err)
	}

	if e.Archived, err = db.ListTodos(ctx, userID, true); err != nil {
		return nil, errCollect.Wrap(err)
	}

	if e.Sessions, err = db.ListSessions(ctx, userID, time.Time{}); err != nil {
		return nil, errCollect.Wrap(err)
	}

	if e.SubtaskSessions, err = db.ListSubtaskSessions(ctx, userID); err != nil {
		return nil, errCollect.Wrap(err)
	}

	return e, nil
}

// Write encodes e as indented JSON.
func Write(w io.Writer, e *Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(e)
}

// FileName is the default name of an export taken at t.
func FileName(t time.Time) string {
	return "ctdp-backup-" + t.UTC().Format("20060102T150405Z") + ".json"
}
