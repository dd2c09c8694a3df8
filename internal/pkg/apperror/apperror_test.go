package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errMissing := New(KindNotFound, "record not found")

	t.Run("sentinel wrapped with fmt.Errorf keeps its kind", func(t *testing.T) {
		err := fmt.Errorf("load record: %w", errMissing)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.True(t, errors.Is(err, errMissing))
	})

	t.Run("sentinel joined with a driver cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := fmt.Errorf("%w: %w", errMissing, cause)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindPersistence, "ignored"))

	cause := errors.New("deadlock detected")
	err := Wrap(cause, KindPersistence, "database unavailable")

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, CodePersistence, appErr.Code)
	assert.Equal(t, "database unavailable: deadlock detected", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindInvalidState: http.StatusConflict,
		KindForbidden:    http.StatusForbidden,
		KindPersistence:  http.StatusServiceUnavailable,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), "kind %d", kind)
	}
}
