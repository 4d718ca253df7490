package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Rendering(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain error",
			err:  New(CodeInvalidGraph, "node count must be at least 2"),
			want: "[INVALID_GRAPH] node count must be at least 2",
		},
		{
			name: "error with field",
			err:  NewWithField(CodeInvalidArgument, "must be positive", "iterations"),
			want: "[INVALID_ARGUMENT] must be positive (field: iterations)",
		},
		{
			name: "parser error with line",
			err:  NewAtLine(CodeMalformedEdge, 7, "expected 3 fields, got 2"),
			want: "[MALFORMED_EDGE] line 7: expected 3 fields, got 2",
		},
		{
			name: "line wins over field",
			err:  NewWithField(CodeMalformedEdge, "bad capacity", "capacity").WithLine(3),
			want: "[MALFORMED_EDGE] line 3: bad capacity",
		},
		{
			name: "formatted message",
			err:  Newf(CodeNodeOutOfRange, "node %d outside [0, %d)", 9, 4),
			want: "[NODE_OUT_OF_RANGE] node 9 outside [0, 4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("file does not exist")
	err := Wrap(cause, CodeNotFound, "cannot open network file")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, CodeNotFound, Code(err))
}

func TestIs_And_Code(t *testing.T) {
	err := New(CodeTimeout, "operation timed out")

	assert.True(t, Is(err, CodeTimeout))
	assert.False(t, Is(err, CodeCanceled))
	assert.False(t, Is(errors.New("plain"), CodeTimeout))

	// Code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("solve failed: %w", err)
	assert.True(t, Is(wrapped, CodeTimeout))
	assert.Equal(t, CodeTimeout, Code(wrapped))

	assert.Equal(t, CodeInternal, Code(errors.New("plain")))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "critical", SeverityCritical.String())

	assert.True(t, IsWarning(NewWarning(CodeIsolatedNode, "node 3 has no edges")))
	assert.False(t, IsWarning(New(CodeInternal, "boom")))

	assert.True(t, IsCritical(NewCritical(CodeInternal, "corrupted state")))
	assert.True(t, IsCritical(New(CodeInternal, "boom").WithSeverity(SeverityCritical)))
	assert.False(t, IsCritical(errors.New("plain")))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeNegativeCapacity, "capacity must be non-negative").
		WithDetails("capacity", int64(-5)).
		WithDetails("edge", "2->3")

	assert.Equal(t, int64(-5), err.Details["capacity"])
	assert.Equal(t, "2->3", err.Details["edge"])
}

func TestPredefinedErrors(t *testing.T) {
	assert.Equal(t, CodeNilInput, ErrNilGraph.Code)
	assert.Equal(t, CodeSourceEqualsSink, ErrSourceEqualsSink.Code)
	assert.Equal(t, CodeIterationLimit, ErrIterationLimit.Code)
	assert.True(t, Is(ErrTimeout, CodeTimeout))
}

func TestValidationErrors(t *testing.T) {
	v := NewValidationErrors()
	assert.True(t, v.IsValid())
	assert.Nil(t, v.First())

	v.AddWarning(CodeIsolatedNode, "node 2 has no edges")
	assert.True(t, v.IsValid(), "warnings do not invalidate")
	assert.True(t, v.HasWarnings())

	v.AddErrorAtLine(CodeMalformedEdge, 4, "expected 3 fields")
	v.AddError(CodeInvalidGraph, "sink unreachable")
	assert.False(t, v.IsValid())
	assert.True(t, v.HasErrors())

	first := v.First()
	require.NotNil(t, first)
	assert.Equal(t, CodeMalformedEdge, first.Code)
	assert.Equal(t, 4, first.Line)

	messages := v.ErrorMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "[MALFORMED_EDGE] line 4: expected 3 fields", messages[0])
}

func TestValidationErrors_Merge(t *testing.T) {
	a := NewValidationErrors()
	a.AddError(CodeInvalidGraph, "first")

	b := NewValidationErrors()
	b.AddError(CodeEmptyGraph, "second")
	b.AddWarning(CodeIsolatedNode, "third")

	a.Merge(b)
	a.Merge(nil)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)

	// Mixed-severity Add routes by severity.
	a.Add(NewWarning(CodeNoPath, "zero flow"))
	assert.Len(t, a.Warnings, 2)
}
