package handler

import (
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyCheck/utils"
)

func requestWithURI(uri string) *app.RequestContext {
	c := app.NewContext(0)
	c.Request.SetRequestURI(uri)
	return c
}

func TestParseDateQuery(t *testing.T) {
	// 规范参数名
	c := requestWithURI("/result?verificationDate=2025-03-03")
	date, err := parseDateQuery(c)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", utils.FormatDate(date))

	// 旧参数名兼容
	c = requestWithURI("/result?date=2025-03-04")
	date, err = parseDateQuery(c)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", utils.FormatDate(date))

	// 两个都传时规范名优先
	c = requestWithURI("/result?verificationDate=2025-03-03&date=2025-03-04")
	date, err = parseDateQuery(c)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", utils.FormatDate(date))

	// 缺省为 UTC 今天
	c = requestWithURI("/result")
	date, err = parseDateQuery(c)
	require.NoError(t, err)
	assert.Equal(t, utils.DateOnly(time.Now().UTC()), date)

	// 格式非法
	c = requestWithURI("/result?verificationDate=03/03/2025")
	_, err = parseDateQuery(c)
	assert.Error(t, err)
}
