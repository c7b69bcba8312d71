package model

// SubmissionRequest 提交到远程评测服务的请求体，字段名由评测服务决定
type SubmissionRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
}

// SubmissionToken 提交后返回的 token
type SubmissionToken struct {
	Token string `json:"token"`
}

// SubmissionResult 按 token 查询到的提交状态
type SubmissionResult struct {
	Token         string `json:"token,omitempty"`
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Message       string `json:"message"`
	Status        *Status `json:"status"` // 缺失或为 null 时为 nil
	Time          string `json:"time"`
	Memory        int    `json:"memory"`
}

// JudgeError 评测服务返回的错误信息
type JudgeError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
