package dto

// PhotoSubmissionResponse 照片提交结果
type PhotoSubmissionResponse struct {
	RecordID         int64    `json:"recordId"`
	GroupID          int64    `json:"groupId"`
	Slot             int      `json:"slot"`
	VerificationDate string   `json:"verificationDate"`
	PhotoCount       int      `json:"photoCount"`
	FilePaths        []string `json:"filePaths"`
}

// GpsSubmissionRequest GPS 提交请求
type GpsSubmissionRequest struct {
	Latitude  float64 `json:"latitude" vd:"$>=-90 && $<=90"`
	Longitude float64 `json:"longitude" vd:"$>=-180 && $<=180"`
}

// GpsSubmissionResponse GPS 提交结果
type GpsSubmissionResponse struct {
	RecordID         int64   `json:"recordId"`
	GroupID          int64   `json:"groupId"`
	Slot             int     `json:"slot"`
	VerificationDate string  `json:"verificationDate"`
	DistanceM        float64 `json:"distanceM"`
	LocationName     string  `json:"locationName,omitempty"`
}

// GithubSubmissionRequest GitHub 提交请求，只记录 claim
type GithubSubmissionRequest struct {
	CommitRef string `json:"commitRef" vd:"len($)>0"`
}

// GithubSubmissionResponse GitHub 提交结果
type GithubSubmissionResponse struct {
	RecordID         int64  `json:"recordId"`
	GroupID          int64  `json:"groupId"`
	Slot             int    `json:"slot"`
	VerificationDate string `json:"verificationDate"`
	CommitRef        string `json:"commitRef"`
}
