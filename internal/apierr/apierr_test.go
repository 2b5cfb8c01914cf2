package apierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Internal, "failed to persist", cause)
	assert.ErrorIs(t, err, cause)
}

func TestInvalidArgumentfFormatsMessage(t *testing.T) {
	err := InvalidArgumentf("term %q is too long", "slur")
	assert.Equal(t, InvalidArgument, err.Kind)
	assert.Contains(t, err.Error(), "slur")
}
