package language

import (
	"codepad-server/internal/model"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var ErrLanguageNotFound = errors.New("language not found")

// languages 固定的语言列表，顺序即前端下拉框顺序
var languages = []model.Language{
	{Name: "python", JudgeID: 71, Template: pythonTemplate},
	{Name: "cpp", JudgeID: 54, Template: cppTemplate},
	{Name: "c", JudgeID: 50, Template: cTemplate},
	{Name: "java", JudgeID: 62, Template: javaTemplate},
	{Name: "javascript", JudgeID: 63, Template: javascriptTemplate},
	{Name: "html", Template: htmlTemplate},
	{Name: "css", Template: cssTemplate},
}

// GetLanguages 返回语言列表的副本
func GetLanguages() []model.Language {
	return slices.Clone(languages)
}

// DefaultLanguage 新建会话时使用的语言
func DefaultLanguage() model.Language {
	return languages[0]
}

func GetLanguageByName(name string) (model.Language, error) {
	i := slices.IndexFunc(languages, func(l model.Language) bool {
		return l.Name == name
	})
	if i < 0 {
		return model.Language{}, fmt.Errorf("%w: %q", ErrLanguageNotFound, name)
	}
	return languages[i], nil
}
