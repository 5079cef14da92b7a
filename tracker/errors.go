package tracker

import "github.com/ctdp-app/ctdp/internal/apperr"

var (
	// ErrUnauthorized is returned by every operation called without a user
	// identity. Callers should ask the user to sign in rather than retry.
	ErrUnauthorized = &apperr.Error{
		Message: "sign in required",
		Kind:    apperr.Unauthorized,
	}

	errTitleRequired = &apperr.Error{
		Message: "title is required",
		Kind:    apperr.Validation,
	}

	errLabelRequired = &apperr.Error{
		Message: "label is required",
		Kind:    apperr.Validation,
	}

	errSessionTitleRequired = &apperr.Error{
		Message: "todoTitle is required",
		Kind:    apperr.Validation,
	}

	errNoSubtaskFields = &apperr.Error{
		Message: "at least one of done or label must be provided",
		Kind:    apperr.Validation,
	}

	errTodoNotFound = &apperr.Error{
		Message: "todo %s not found",
		Kind:    apperr.NotFound,
	}

	errSubtaskNotFound = &apperr.Error{
		Message: "subtask %s not found",
		Kind:    apperr.NotFound,
	}

	errPersistence = &apperr.Error{
		Message: "storage request failed",
		Kind:    apperr.Persistence,
	}
)
