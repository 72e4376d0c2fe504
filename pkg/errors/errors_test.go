package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinitionAsError(t *testing.T) {
	var err error = RuleNotFound
	assert.Equal(t, "No active rule for this date", err.Error())

	// %w 包装后依然能还原 Definition
	wrapped := fmt.Errorf("failed to load rule: %w", RuleNotFound)
	var def Definition
	assert.True(t, stderrors.As(wrapped, &def))
	assert.Equal(t, "RULE_NOT_FOUND", def.Code)
	assert.True(t, stderrors.Is(wrapped, RuleNotFound))
}

func TestGet(t *testing.T) {
	assert.Equal(t, OutOfRadius, Get("OUT_OF_RADIUS"))

	unknown := Get("SOMETHING_ELSE")
	assert.Equal(t, "SOMETHING_ELSE", unknown.Code)
	assert.Equal(t, "Unexpected error", unknown.Message)
}

func TestSkipMessageError(t *testing.T) {
	var err error = &SkipMessageError{Reason: "duplicate message"}
	assert.True(t, IsSkipMessageError(err))
	assert.Contains(t, err.Error(), "duplicate message")

	wrapped := fmt.Errorf("consumer: %w", err)
	assert.True(t, IsSkipMessageError(wrapped))

	assert.False(t, IsSkipMessageError(stderrors.New("boom")))
	assert.False(t, IsSkipMessageError(nil))
}
