package response

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"StudyCheck/pkg/errors"
)

// Body 统一响应格式，成功与失败共用同一外壳
type Body struct {
	Data      interface{} `json:"data,omitempty"`
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	IsSuccess bool        `json:"isSuccess"`
}

const successCode = "OK"

func errorToHTTPStatus(err error) int {
	var def errors.Definition
	if !stderrors.As(err, &def) {
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case "INVALID_RULE", "INVALID_SLOT", "INVALID_TIMEZONE",
		"OUT_OF_WINDOW", "INVALID_FILE_COUNT", "OUT_OF_RADIUS",
		"NO_GPS_LOCATION", "METHOD_MISMATCH", "INVALID_COMMIT_REF",
		"CHECKLIST_NOT_TODAY", "INVALID_REQUEST", "INVALID_MEMBER_ID",
		"FILE_TOO_LARGE":
		return http.StatusBadRequest // 400
	case "UNAUTHORIZED":
		return http.StatusUnauthorized // 401
	case "NOT_GROUP_OWNER", "NOT_GROUP_MEMBER":
		return http.StatusForbidden // 403
	// 结果未出（仍在窗口期或尚无可判定数据）对客户端是轮询预期内的 404
	case "NOT_YET_EVALUABLE", "RULE_NOT_FOUND", "GROUP_NOT_FOUND",
		"CHECKLIST_ITEM_NOT_FOUND":
		return http.StatusNotFound // 404
	case "SUBMISSION_LOCKED":
		return http.StatusConflict // 409
	case "TOO_MANY_REQUESTS":
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	var def errors.Definition
	if stderrors.As(err, &def) {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, Body{
		IsSuccess: false,
		Code:      code,
		Message:   message,
	})
}

// ErrorWithDetails 错误响应附带诊断信息，开发环境用
func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	var def errors.Definition
	if stderrors.As(err, &def) {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, Body{
		IsSuccess: false,
		Code:      code,
		Message:   message,
		Data:      details,
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, Body{
		IsSuccess: true,
		Code:      successCode,
		Message:   "success",
		Data:      data,
	})
}

// Created 用于创建类接口，返回 201
func Created(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusCreated, Body{
		IsSuccess: true,
		Code:      successCode,
		Message:   "created",
		Data:      data,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, Body{
		IsSuccess: false,
		Code:      "INVALID_REQUEST",
		Message:   err.Error(),
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
