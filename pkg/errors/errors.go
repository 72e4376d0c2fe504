package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized    = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidMemberID = Definition{Code: "INVALID_MEMBER_ID", Message: "Invalid member ID format"}
	NotGroupOwner   = Definition{Code: "NOT_GROUP_OWNER", Message: "Only the group owner may do this"}
	NotGroupMember  = Definition{Code: "NOT_GROUP_MEMBER", Message: "Not a member of this group"}
)

// 规则模块错误。
var (
	InvalidRule     = Definition{Code: "INVALID_RULE", Message: "Invalid verification rule"}
	InvalidSlot     = Definition{Code: "INVALID_SLOT", Message: "Slot must be 1 or 2"}
	InvalidTimezone = Definition{Code: "INVALID_TIMEZONE", Message: "Unknown IANA timezone"}
	RuleNotFound    = Definition{Code: "RULE_NOT_FOUND", Message: "No active rule for this date"}
	GroupNotFound   = Definition{Code: "GROUP_NOT_FOUND", Message: "Study group not found"}
)

// 提交模块错误。
var (
	OutOfWindow       = Definition{Code: "OUT_OF_WINDOW", Message: "Submission window is closed"}
	InvalidFileCount  = Definition{Code: "INVALID_FILE_COUNT", Message: "Photo count outside rule bounds"}
	OutOfRadius       = Definition{Code: "OUT_OF_RADIUS", Message: "Position outside allowed radius"}
	NoGpsLocation     = Definition{Code: "NO_GPS_LOCATION", Message: "No GPS location configured for rule"}
	MethodMismatch    = Definition{Code: "METHOD_MISMATCH", Message: "Rule does not use this verification method"}
	SubmissionLocked  = Definition{Code: "SUBMISSION_LOCKED", Message: "Another submission is in progress"}
	InvalidCommitRef  = Definition{Code: "INVALID_COMMIT_REF", Message: "Commit reference is empty or malformed"}
	FileTooLarge      = Definition{Code: "FILE_TOO_LARGE", Message: "Uploaded file exceeds size limit"}
)

// 清单（待办）模块错误。
var (
	ChecklistNotToday     = Definition{Code: "CHECKLIST_NOT_TODAY", Message: "Checklist items can only be created for today"}
	ChecklistItemNotFound = Definition{Code: "CHECKLIST_ITEM_NOT_FOUND", Message: "Checklist item not found"}
)

// 结算模块错误。
var (
	NotYetEvaluable = Definition{Code: "NOT_YET_EVALUABLE", Message: "Result is not decided yet"}
)

// 通用错误。
var (
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, try again later"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:          Unauthorized,
	InvalidMemberID.Code:       InvalidMemberID,
	NotGroupOwner.Code:         NotGroupOwner,
	NotGroupMember.Code:        NotGroupMember,
	InvalidRule.Code:           InvalidRule,
	InvalidSlot.Code:           InvalidSlot,
	InvalidTimezone.Code:       InvalidTimezone,
	RuleNotFound.Code:          RuleNotFound,
	GroupNotFound.Code:         GroupNotFound,
	OutOfWindow.Code:           OutOfWindow,
	InvalidFileCount.Code:      InvalidFileCount,
	OutOfRadius.Code:           OutOfRadius,
	NoGpsLocation.Code:         NoGpsLocation,
	MethodMismatch.Code:        MethodMismatch,
	SubmissionLocked.Code:      SubmissionLocked,
	InvalidCommitRef.Code:      InvalidCommitRef,
	FileTooLarge.Code:          FileTooLarge,
	ChecklistNotToday.Code:     ChecklistNotToday,
	ChecklistItemNotFound.Code: ChecklistItemNotFound,
	NotYetEvaluable.Code:       NotYetEvaluable,
	TooManyRequests.Code:       TooManyRequests,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
