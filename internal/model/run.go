package model

import "time"

const (
	OutputNotAvailable = "Output not available for HTML/CSS."
	OutputNone         = "No output"
	ErrorPrefix        = "Error: "
)

// Outcome 一次运行的结果类型
type Outcome string

const (
	OutcomePending     Outcome = "pending"
	OutcomeCompleted   Outcome = "completed"
	OutcomeFailed      Outcome = "failed"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeCanceled    Outcome = "canceled"
)

// RunRequest 一次运行所需的编辑器状态快照
type RunRequest struct {
	Language   string `json:"language"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// RunResult 运行结果，Output 为展示在输出区域的文本
type RunResult struct {
	Outcome Outcome `json:"outcome"`
	Output  string  `json:"output"`
	Token   string  `json:"token,omitempty"`
	Status  *Status `json:"status,omitempty"`
	Stdout  string  `json:"stdout,omitempty"`
	Stderr  string  `json:"stderr,omitempty"`
	Reason  string  `json:"reason,omitempty"`
	Polls   int     `json:"polls"`
}

// RunEvent 运行结束后发布的事件
type RunEvent struct {
	SessionID  string    `json:"session_id"`
	Language   string    `json:"language"`
	Outcome    Outcome   `json:"outcome"`
	Output     string    `json:"output"`
	Token      string    `json:"token,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}
