package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateEmail(t *testing.T) {
	assert.True(t, isDuplicateEmail(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateEmail(fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey)),
		"wrapped violations still map to the conflict response")

	assert.False(t, isDuplicateEmail(gorm.ErrInvalidData))
	assert.False(t, isDuplicateEmail(errors.New("connection reset")))
	assert.False(t, isDuplicateEmail(nil))
}
