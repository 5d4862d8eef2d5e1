package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestExecuteNilError(t *testing.T) {
	err := Execute("test:noop", nil, func() error { return nil })
	assert.NoError(t, err)
}

func TestExecuteNotFoundPassesThroughUnwrapped(t *testing.T) {
	err := Execute("test:lookup", nil, func() error { return gorm.ErrRecordNotFound })
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	// NotFound is an expected outcome, it must not become a StoreError.
	assert.Nil(t, AsStoreError(err))
}

func TestExecuteCapturesPgErrorFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Message: "new row violates row-level security policy for table \"attendance\"",
		Code:    "42501",
		Detail:  "Failing row contains (...)",
		Hint:    "Check the table policies",
	}
	err := Execute("attendance:insert", map[string]any{"session_id": "abc"}, func() error {
		return fmt.Errorf("insert: %w", pgErr)
	})

	se := AsStoreError(err)
	require.NotNil(t, se)
	assert.Equal(t, "attendance:insert", se.Label)
	assert.Equal(t, pgErr.Message, se.Message)
	assert.Equal(t, "42501", se.Code)
	assert.Equal(t, pgErr.Detail, se.Details)
	assert.Equal(t, pgErr.Hint, se.Hint)
	assert.True(t, se.PolicyViolation())
}

func TestExecuteWrapsPlainErrors(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	err := Execute("courses:list", nil, func() error { return boom })

	se := AsStoreError(err)
	require.NotNil(t, se)
	assert.Equal(t, boom.Error(), se.Message)
	assert.Empty(t, se.Code)
	assert.False(t, se.PolicyViolation())
	// The original error stays reachable for errors.Is checks.
	assert.ErrorIs(t, err, boom)
}

func TestPolicyViolationByMessageText(t *testing.T) {
	se := &StoreError{Message: "permission denied: row level security policy"}
	assert.True(t, se.PolicyViolation())

	se = &StoreError{Message: "duplicate key value"}
	assert.False(t, se.PolicyViolation())
}

func TestUniqueViolation(t *testing.T) {
	se := &StoreError{Code: CodeUniqueViolation}
	assert.True(t, se.UniqueViolation())

	se = &StoreError{Code: "23503"}
	assert.False(t, se.UniqueViolation())
}

func TestStoreErrorStringIncludesDiagnostics(t *testing.T) {
	se := &StoreError{
		Message: "duplicate key value violates unique constraint",
		Code:    "23505",
		Details: "Key (course_id, session_date) already exists.",
		Hint:    "",
	}
	s := se.Error()
	assert.Contains(t, s, "duplicate key value")
	assert.Contains(t, s, "23505")
	assert.Contains(t, s, "already exists")
}
