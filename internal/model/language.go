package model

// Language 编辑器可选择的语言
type Language struct {
	Name     string `json:"name"`
	JudgeID  int    `json:"judge_id,omitempty"` // 远程评测服务中的语言 ID，0 表示不可运行
	Template string `json:"template"`           // 切换到该语言时的初始代码
}

// Executable 是否可以提交到远程评测服务运行
func (l Language) Executable() bool {
	return l.JudgeID != 0
}

// JudgeLanguage 远程评测服务 /languages 返回的语言
type JudgeLanguage struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
