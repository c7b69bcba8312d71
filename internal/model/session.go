package model

import "time"

// DefaultFilename 文件名为空时保存使用的名字
const DefaultFilename = "code.txt"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle 切换明暗主题
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Session 编辑器会话状态
type Session struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	Stdin     string    `json:"stdin"`
	Output    string    `json:"output"`
	Theme     Theme     `json:"theme"`
	Filename  string    `json:"filename"`
	Running   bool      `json:"running"`
	RunSeq    uint64    `json:"run_seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
