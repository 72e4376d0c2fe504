package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"StudyCheck/internal/handler"
	"StudyCheck/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())
	//h.Use(middleware.CSRFMiddleware()) csrf 中间件，纯 API 客户端暂不需要

	v1 := h.Group("/v1")

	// 认证槽位路由，所有接口都要求登录成员
	slots := v1.Group("/study-groups/:group_id/verification/slots/:slot")
	slots.Use(middleware.AuthMiddleware())
	slots.Use(middleware.GeneralRateLimitMiddleware())
	{
		// 规则管理（owner only，写接口单独限流）
		slots.POST("/rules", middleware.RuleWriteRateLimitMiddleware(), handler.CreateRule)
		slots.GET("/rules", handler.ListRules)

		// 照片认证
		slots.POST("/photo", middleware.SubmissionRateLimitMiddleware(), handler.SubmitPhoto)

		// 待办清单认证
		slots.POST("/checklist/items", handler.CreateChecklistItem)
		slots.GET("/checklist/items", handler.ListChecklistItems)
		slots.PUT("/checklist/check", handler.CheckChecklistItem)

		// 到场定位认证
		slots.POST("/gps", middleware.SubmissionRateLimitMiddleware(), handler.SubmitGps)
		slots.POST("/gps/locations", middleware.RuleWriteRateLimitMiddleware(), handler.AddGpsLocation)
		slots.GET("/gps/locations", handler.ListGpsLocations)

		// GitHub 认证
		slots.POST("/github", middleware.SubmissionRateLimitMiddleware(), handler.SubmitGithub)

		// 判定结果与报表，/checklist/result 是清单结果的既有路径，
		// 与 /result 等价（结果接口对所有认证方式通用）
		slots.GET("/result", handler.GetResult)
		slots.GET("/checklist/result", handler.GetResult)
		slots.GET("/report", handler.GetReport)
	}
}
