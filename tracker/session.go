package tracker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ctdp-app/ctdp/internal/models"
)

func sessionLog(s *models.FocusSession) models.SessionLog {
	return models.SessionLog{
		ID:        s.ID,
		TodoTitle: s.TodoTitle,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
	}
}

// RecordSession persists a completed focus session, splits its focus time
// evenly across the selected subtasks and returns the updated totals.
// Attribution failures are logged; the session still counts as saved.
func (s *Service) RecordSession(
	ctx context.Context,
	userID string,
	req models.SessionRequest,
) (*models.SessionResult, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.TodoTitle)
	if title == "" {
		return nil, errSessionTitleRequired
	}

	sess := &models.FocusSession{
		ID:           s.newID(),
		UserID:       userID,
		TodoID:       req.TodoID,
		TodoTitle:    title,
		Note:         strings.TrimSpace(req.Note),
		WaitSeconds:  max(0, req.WaitSeconds),
		FocusSeconds: max(1, req.FocusSeconds),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.db.CreateSession(ctx, sess); err != nil {
		return nil, storageErr(err, nil, "")
	}

	s.attribute(ctx, sess, req.SubtaskIDs)

	totals, err := s.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.SessionResult{
		Log:    sessionLog(sess),
		Totals: totals,
	}, nil
}

// attribute gives each subtask floor(focusSeconds/N) seconds. The remainder
// is not attributed to any subtask.
func (s *Service) attribute(
	ctx context.Context,
	sess *models.FocusSession,
	subtaskIDs []string,
) {
	if len(subtaskIDs) == 0 {
		return
	}

	share := sess.FocusSeconds / len(subtaskIDs)
	if share == 0 {
		return
	}

	log := s.log.With(
		slog.String("user_id", sess.UserID),
		slog.String("session_id", sess.ID),
	)

	for _, id := range subtaskIDs {
		err := s.db.CreateSubtaskSession(ctx, &models.SubtaskSession{
			ID:        s.newID(),
			UserID:    sess.UserID,
			SubtaskID: id,
			SessionID: sess.ID,
			Seconds:   share,
			CreatedAt: sess.CreatedAt,
		})
		if err != nil {
			log.ErrorContext(ctx, "recording subtask sessions failed",
				slog.String("subtask_id", id),
				slog.Any("error", err),
			)

			return
		}
	}

	for _, id := range subtaskIDs {
		s.addSeconds(ctx, log, sess.UserID, id, share)
	}
}

// addSeconds increments a subtask's total. If the increment fails it falls
// back to reading the current total and writing the sum, which can lose an
// update when two sessions credit the same subtask concurrently.
func (s *Service) addSeconds(
	ctx context.Context,
	log *slog.Logger,
	userID, subtaskID string,
	seconds int,
) {
	err := s.db.IncrementSubtaskSeconds(ctx, userID, subtaskID, seconds)
	if err == nil {
		return
	}

	log.WarnContext(ctx, "incrementing subtask time failed, falling back to read-then-update",
		slog.String("subtask_id", subtaskID),
		slog.Any("error", err),
	)

	st, err := s.db.GetSubtask(ctx, userID, subtaskID)
	if err != nil {
		log.ErrorContext(ctx, "loading subtask for time attribution failed",
			slog.String("subtask_id", subtaskID),
			slog.Any("error", err),
		)

		return
	}

	err = s.db.SetSubtaskSeconds(ctx, userID, subtaskID, st.TotalSeconds+seconds)
	if err != nil {
		log.ErrorContext(ctx, "updating subtask time failed",
			slog.String("subtask_id", subtaskID),
			slog.Any("error", err),
		)
	}
}
