package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctdp-app/ctdp/internal/apperr"
)

func TestHint(t *testing.T) {
	unauthorized := &apperr.Error{Message: "no identity", Kind: apperr.Unauthorized}
	persistence := &apperr.Error{Message: "db down", Kind: apperr.Persistence}
	validation := &apperr.Error{Message: "title required", Kind: apperr.Validation}

	assert.Equal(t, signInHint, Hint(unauthorized))
	assert.Contains(t, Hint(persistence.Wrap(errors.New("timeout"))), "try again")
	assert.Empty(t, Hint(validation))
	assert.Empty(t, Hint(errors.New("plain")))
}
