package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	err := New(ErrCodeTemplateUnknown, "unsupported template variant")
	assert.Equal(t, "[E3001] unsupported template variant", err.Error())

	wrapped := Wrap(ErrCodeRendererLoad, "failed to load document", fmt.Errorf("net::ERR_ABORTED"))
	assert.Equal(t, "[E4002] failed to load document: net::ERR_ABORTED", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeStorageConnection, "object store unreachable", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWithDetails(t *testing.T) {
	err := New(ErrCodeTemplateInject, "missing tokens").
		WithDetails([]string{"COMPANY_NAME", "REPORT_DATE"})

	assert.Equal(t, []string{"COMPANY_NAME", "REPORT_DATE"}, err.Details)
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(New(ErrCodeInternal, "boom")))
	assert.False(t, IsAppError(fmt.Errorf("plain")))
	assert.False(t, IsAppError(nil))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeRendererTimeout, CodeOf(New(ErrCodeRendererTimeout, "deadline exceeded")))
	assert.Equal(t, ErrCodeInternal, CodeOf(fmt.Errorf("plain")))
}

func TestConvenienceConstructors(t *testing.T) {
	assert.Equal(t, ErrCodeValidation, ErrValidation("bad input").Code)
	assert.Equal(t, ErrCodeNotFound, ErrNotFound("template").Code)
	assert.Contains(t, ErrNotFound("template").Error(), "template not found")

	internal := ErrInternal("unexpected", fmt.Errorf("cause"))
	assert.Equal(t, ErrCodeInternal, internal.Code)
	require.NotNil(t, internal.Err)
}
