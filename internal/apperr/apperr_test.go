package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = &Error{
	Message: "todo %s not found",
	Kind:    NotFound,
}

func TestDerivedErrorsMatchSentinel(t *testing.T) {
	formatted := errSample.Fmt("abc")

	assert.Equal(t, "todo abc not found", formatted.Error())
	assert.ErrorIs(t, formatted, errSample)

	wrapped := fmt.Errorf("loading: %w", formatted.Wrap(errors.New("boom")))

	assert.ErrorIs(t, wrapped, errSample)
	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, NotFound))
}

func TestUnrelatedErrorsDoNotMatch(t *testing.T) {
	other := &Error{Message: "todo %s not found", Kind: NotFound}

	assert.NotErrorIs(t, errSample.Fmt("x"), other)
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, Unknown))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := errSample.Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
