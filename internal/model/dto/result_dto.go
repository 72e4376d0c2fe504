package dto

// ResultResponse 单日判定结果
type ResultResponse struct {
	GroupID          int64  `json:"groupId"`
	Slot             int    `json:"slot"`
	MemberID         int64  `json:"memberId"`
	VerificationDate string `json:"verificationDate"`
	Passed           bool   `json:"passed"`
	Exempted         bool   `json:"exempted"`
	EvaluatedAt      string `json:"evaluatedAt"`
}

// MemberReport 成员期间统计
type MemberReport struct {
	MemberID   int64   `json:"memberId"`
	Nickname   string  `json:"nickname,omitempty"`
	Role       string  `json:"role"`
	PassedDays int     `json:"passedDays"`
	Exempted   int     `json:"exemptedDays"`
	Percentage float64 `json:"percentage"`
}

// ReportResponse 期间报表，供排行榜渲染
type ReportResponse struct {
	GroupID          int64          `json:"groupId"`
	Slot             int            `json:"slot"`
	StartDate        string         `json:"startDate"`
	EndDate          string         `json:"endDate"`
	OpportunityCount int            `json:"opportunityCount"`
	Members          []MemberReport `json:"members"`
}
