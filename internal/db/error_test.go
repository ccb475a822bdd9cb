package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	notFound := fmt.Errorf("lookup: %w", &NotFoundError{Key: "1", Message: "stake not found"})
	duplicate := &DuplicateKeyError{Key: "1", Message: "mission 1 already exists"}

	assert.True(t, IsNotFoundError(notFound))
	assert.False(t, IsNotFoundError(duplicate))
	assert.True(t, IsDuplicateKeyError(duplicate))
	assert.False(t, IsDuplicateKeyError(errors.New("boom")))
	assert.Equal(t, "stake not found", errors.Unwrap(notFound).Error())
}
