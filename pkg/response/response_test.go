package response

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"StudyCheck/pkg/errors"
)

func TestErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errors.InvalidRule, http.StatusBadRequest},
		{errors.InvalidSlot, http.StatusBadRequest},
		{errors.OutOfWindow, http.StatusBadRequest},
		{errors.FileTooLarge, http.StatusBadRequest},
		{errors.Unauthorized, http.StatusUnauthorized},
		{errors.NotGroupOwner, http.StatusForbidden},
		{errors.NotGroupMember, http.StatusForbidden},
		{errors.NotYetEvaluable, http.StatusNotFound},
		{errors.RuleNotFound, http.StatusNotFound},
		{errors.GroupNotFound, http.StatusNotFound},
		{errors.ChecklistItemNotFound, http.StatusNotFound},
		{errors.SubmissionLocked, http.StatusConflict},
		{errors.TooManyRequests, http.StatusTooManyRequests},
		{fmt.Errorf("database connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, errorToHTTPStatus(tc.err), "err %v", tc.err)
	}
}

func TestErrorToHTTPStatusWrapped(t *testing.T) {
	// service 层经常用 %w 包装业务错误，映射要能穿透
	wrapped := fmt.Errorf("failed to evaluate member: %w", errors.NotYetEvaluable)
	assert.Equal(t, http.StatusNotFound, errorToHTTPStatus(wrapped))
}
