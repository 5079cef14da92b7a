package timer

import "github.com/ctdp-app/ctdp/internal/apperr"

var (
	errAlreadyRunning = &apperr.Error{
		Message: "a %s phase is already running",
		Kind:    apperr.Conflict,
	}

	errNothingSelected = &apperr.Error{
		Message: "select at least one subtask to schedule a session",
		Kind:    apperr.Validation,
	}

	errSaveInProgress = &apperr.Error{
		Message: "the session is already being saved",
		Kind:    apperr.Conflict,
	}

	errInvalidTransition = &apperr.Error{
		Message: "cannot %s while %s",
		Kind:    apperr.Conflict,
	}
)
