package queue

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestHandleGithubVerifyResultMalformedPayload(t *testing.T) {
	err := handleGithubVerifyResult(context.Background(), []byte("{not json"))
	assert.True(t, errors.IsSkipMessageError(err))
}

func TestHandleGithubVerifyResultMalformedDate(t *testing.T) {
	body := []byte(`{"message_id":"gh_result_1","group_id":1,"slot":1,"member_id":2,"verification_date":"03/03/2025","verified":true}`)
	err := handleGithubVerifyResult(context.Background(), body)
	assert.True(t, errors.IsSkipMessageError(err))
}

func TestHandleGithubVerifyResultMissingIdentity(t *testing.T) {
	body := []byte(`{"message_id":"gh_result_2","verification_date":"2025-03-03","verified":true}`)
	err := handleGithubVerifyResult(context.Background(), body)
	assert.True(t, errors.IsSkipMessageError(err))
}

// 轮询器没确认活动时什么都不回写
func TestHandleGithubVerifyResultUnverifiedIsNoop(t *testing.T) {
	body := []byte(`{"message_id":"gh_result_3","group_id":1,"slot":1,"member_id":2,"verification_date":"2025-03-03","verified":false,"detail":"no commits found"}`)
	err := handleGithubVerifyResult(context.Background(), body)
	assert.NoError(t, err)
}
