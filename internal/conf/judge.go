package conf

// JudgeConf 远程评测服务（Judge0 CE）配置
type JudgeConf struct {
	BaseURL        string `yaml:"base_url" json:"base_url"`
	APIKey         string `yaml:"api_key" json:"-"`
	APIHost        string `yaml:"api_host" json:"api_host"`
	RequestTimeout int    `yaml:"request_timeout" json:"request_timeout"` // seconds 单次请求超时
}

func (c *JudgeConf) Default() {
	if c.BaseURL == "" {
		c.BaseURL = "https://judge0-ce.p.rapidapi.com"
	}
	if c.APIHost == "" {
		c.APIHost = "judge0-ce.p.rapidapi.com"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10
	}
}
