package middleware

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"

	"StudyCheck/pkg/token"
)

const (
	IdentityKey = token.IdentityKey
)

var (
	authMiddleware *jwt.HertzJWTMiddleware
)

func initAuthMiddleware() error {
	// 使用 token 包中共享的生成器
	sharedGenerator := token.GetGenerator()
	if sharedGenerator == nil {
		return fmt.Errorf("token generator not initialized, call token.Init() first")
	}

	// 基于共享生成器创建 middleware，但需要添加 HTTP 相关的配置
	authMiddleware = &jwt.HertzJWTMiddleware{
		Realm:       "StudyCheck API",
		Key:         sharedGenerator.Key,
		Timeout:     sharedGenerator.Timeout,
		MaxRefresh:  sharedGenerator.MaxRefresh,
		IdentityKey: sharedGenerator.IdentityKey,
		TimeFunc:    sharedGenerator.TimeFunc,

		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			mid, ok := claims[IdentityKey].(string)
			if !ok {
				if midFloat, ok := claims[IdentityKey].(float64); ok {
					mid = fmt.Sprintf("%.0f", midFloat)
				} else {
					return nil
				}
			}
			return mid
		},

		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(code, map[string]interface{}{
				"isSuccess": false,
				"code":      "UNAUTHORIZED",
				"message":   message,
			})
		},

		TokenLookup:   "header: Authorization, query: token, cookie: jwt",
		TokenHeadName: "Bearer",
	}

	return nil
}

func AuthMiddleware() app.HandlerFunc {
	if authMiddleware == nil {
		panic("AuthMiddleware not initialized, call Init() first")
	}
	return authMiddleware.MiddlewareFunc()
}

// GetMemberIDString 从请求上下文中获取成员 ID（字符串格式）
func GetMemberIDString(ctx context.Context, c *app.RequestContext) (string, bool) {
	memberID, exists := c.Get(IdentityKey)
	if !exists {
		return "", false
	}

	id, ok := memberID.(string)
	if !ok {
		return "", false
	}

	return id, true
}

// GetMemberID 获取成员 ID 并转为 int64，格式非法按未携带处理
func GetMemberID(ctx context.Context, c *app.RequestContext) (int64, bool) {
	raw, ok := GetMemberIDString(ctx, c)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
