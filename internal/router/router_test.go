package router

import (
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkotel "go.opentelemetry.io/otel"

	"StudyCheck/internal/middleware"
	"StudyCheck/pkg/logger"
	"StudyCheck/pkg/token"
)

// 未携带凭证的请求命中已注册路由时应返回鉴权 401 而不是 404，
// 以此验证路由表本身
func TestRegisteredRoutesResolve(t *testing.T) {
	logger.Init()
	require.NoError(t, token.Init())
	require.NoError(t, middleware.Init())
	require.NoError(t, middleware.InitMetrics(sdkotel.Meter("router-test")))

	h := server.Default()
	Register(h)

	registered := []struct {
		method string
		path   string
	}{
		{"GET", "/v1/study-groups/1/verification/slots/1/rules"},
		{"GET", "/v1/study-groups/1/verification/slots/1/checklist/items"},
		{"GET", "/v1/study-groups/1/verification/slots/1/gps/locations"},
		{"GET", "/v1/study-groups/1/verification/slots/1/result"},
		{"GET", "/v1/study-groups/1/verification/slots/1/checklist/result"},
		{"GET", "/v1/study-groups/1/verification/slots/1/report"},
	}

	for _, r := range registered {
		w := ut.PerformRequest(h.Engine, r.method, r.path, nil)
		assert.Equal(t, 401, w.Result().StatusCode(), r.path)
	}

	w := ut.PerformRequest(h.Engine, "GET", "/v1/not-registered", nil)
	assert.Equal(t, 404, w.Result().StatusCode())
}
