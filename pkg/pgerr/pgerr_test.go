package pgerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: UniqueViolation, Constraint: "bookings_timeslot_user_key"})

	assert.True(t, IsUniqueViolation(unique))
	assert.Equal(t, UniqueViolation, Code(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.Equal(t, "", Code(errors.New("plain")))
}

func TestIsLockContention(t *testing.T) {
	assert.True(t, IsLockContention(&pq.Error{Code: LockNotAvailable}))
	assert.True(t, IsLockContention(&pq.Error{Code: QueryCanceled}))
	assert.True(t, IsLockContention(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.False(t, IsLockContention(&pq.Error{Code: UniqueViolation}))
	assert.False(t, IsLockContention(nil))
}
