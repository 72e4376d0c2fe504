package dto

// CreateItemRequest 新增清单条目请求，只能创建当天的条目。
// verificationDate 可省略（默认今天），显式传非今天会被拒绝
type CreateItemRequest struct {
	Content          string `json:"content" vd:"len($)>0"`
	SortOrder        int    `json:"sortOrder,omitempty"`
	VerificationDate string `json:"verificationDate,omitempty"`
}

// CheckRequest 勾选/取消勾选请求，幂等
type CheckRequest struct {
	ItemID           int64  `json:"itemId" vd:"$>0"`
	VerificationDate string `json:"verificationDate,omitempty"`
	Checked          bool   `json:"checked"`
}

// ItemResponse 清单条目视图
type ItemResponse struct {
	ItemID           int64  `json:"itemId"`
	VerificationDate string `json:"verificationDate"`
	SortOrder        int    `json:"sortOrder"`
	Content          string `json:"content"`
	Checked          bool   `json:"checked"`
	CheckedAt        string `json:"checkedAt,omitempty"`
}
