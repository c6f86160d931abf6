package yaerrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/stretchr/testify/assert"
)

func TestYaErrorFromString_Error(t *testing.T) {
	t.Parallel()

	err := yaerrors.FromString(http.StatusNotFound, "Not Found")

	assert.Equal(t, http.StatusNotFound, err.Code())
	assert.Equal(t, "404 | Not Found", err.Error())
}

func TestYaErrorFromError_Error(t *testing.T) {
	t.Parallel()

	err := yaerrors.FromError(http.StatusNotFound, yaerrors.ErrTeapot, "Not Found")

	assert.Equal(t, "404 | Not Found: backend developer is a teapot", err.Error())
	assert.ErrorIs(t, err, yaerrors.ErrTeapot)
}

func TestYaError_Wrap_PrependsTraceback(t *testing.T) {
	t.Parallel()

	err := yaerrors.FromString(http.StatusBadRequest, "chat not found").Wrap("send message")

	assert.Equal(t, "400 | send message -> chat not found", err.Error())
	assert.Equal(t, "send message", err.UnwrapLastError())
}

func TestYaError_As_Works(t *testing.T) {
	t.Parallel()

	inner := yaerrors.FromString(http.StatusTooManyRequests, "flood")
	wrapped := fmt.Errorf("outer: %w", inner)

	got, ok := yaerrors.As(wrapped)

	assert.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, got.Code())
	assert.True(t, yaerrors.HasCode(wrapped, http.StatusTooManyRequests))
	assert.False(t, yaerrors.HasCode(errors.New("plain"), http.StatusTooManyRequests))
}
