package model

// EvaluationSweepMessage 结算扫描消息：窗口关闭后触发某组某槽位的批量结算
type EvaluationSweepMessage struct {
	MessageID        string `json:"message_id"`
	GroupID          int64  `json:"group_id"`
	Slot             int    `json:"slot"`
	VerificationDate string `json:"verification_date"` // 2006-01-02
	ScheduledAt      string `json:"scheduled_at"`
	DelaySeconds     int    `json:"delay_seconds"`
}

// GithubVerifyMessage 投递给外部 GitHub 轮询器的核验请求，fire-and-forget
type GithubVerifyMessage struct {
	MessageID        string `json:"message_id"`
	GroupID          int64  `json:"group_id"`
	Slot             int    `json:"slot"`
	MemberID         int64  `json:"member_id"`
	VerificationDate string `json:"verification_date"`
	Repo             string `json:"repo"`
	Branch           string `json:"branch"`
	CommitRef        string `json:"commit_ref"`
}

// GithubVerifyResultMessage 外部轮询器的核验回执，
// verified 为 true 时回写到当天的提交记录
type GithubVerifyResultMessage struct {
	MessageID        string `json:"message_id"`
	GroupID          int64  `json:"group_id"`
	Slot             int    `json:"slot"`
	MemberID         int64  `json:"member_id"`
	VerificationDate string `json:"verification_date"`
	Verified         bool   `json:"verified"`
	Detail           string `json:"detail,omitempty"`
}
