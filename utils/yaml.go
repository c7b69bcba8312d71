package utils

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ReadYaml 读取 yaml 文件并解析到 v
func ReadYaml(v interface{}, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// WriteYaml 将 v 序列化后写入 path，目录不存在时自动创建
func WriteYaml(v interface{}, path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
