package conf

import (
	"codepad-server/utils"
	"os"

	"github.com/joho/godotenv"
)

// Conf 全局配置，由 InitConfig 加载
var Conf = &Config{}

// DefaultPath 默认配置文件路径
const DefaultPath = "config.yaml"

type Config struct {
	Server   ServerConf   `yaml:"server" json:"server"`
	Judge    JudgeConf    `yaml:"judge" json:"judge"`
	Executor ExecutorConf `yaml:"executor" json:"executor"`
	Storage  StorageConf  `yaml:"storage" json:"storage"`
	Events   EventsConf   `yaml:"events" json:"events"`
}

func (c *Config) Default() {
	c.Server.Default()
	c.Judge.Default()
	c.Executor.Default()
	c.Storage.Default()
	c.Events.Default()
}

// ReadYaml 读取配置文件，文件不存在时写入一份默认配置
func (c *Config) ReadYaml(path string) error {
	v, err := utils.IsFileExists(path)
	if err != nil {
		return err
	}
	if !v {
		c.Default()
		return c.WriteYaml(path)
	}
	err = utils.ReadYaml(c, path)
	if err != nil {
		return err
	}
	// 未填写的字段使用默认值
	c.Default()
	return nil
}

func (c *Config) WriteYaml(path string) error {
	return utils.WriteYaml(c, path)
}

// ApplyEnv 使用环境变量覆盖配置，密钥一般放在 .env 中而不是 config.yaml
func (c *Config) ApplyEnv() {
	if v := os.Getenv("JUDGE_API_KEY"); v != "" {
		c.Judge.APIKey = v
	}
	if v := os.Getenv("JUDGE_BASE_URL"); v != "" {
		c.Judge.BaseURL = v
	}
	if v := os.Getenv("CODEPAD_PORT"); v != "" {
		c.Server.Port = v
	}
}

func InitConfig(path string) error {
	if path == "" {
		path = DefaultPath
	}
	// .env 可以不存在
	_ = godotenv.Load()
	if err := Conf.ReadYaml(path); err != nil {
		return err
	}
	Conf.ApplyEnv()
	return nil
}
