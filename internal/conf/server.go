package conf

type ServerConf struct {
	Port         string   `yaml:"port" json:"port"`
	Token        string   `yaml:"token" json:"-"`                     // 为空时不启用认证
	AllowOrigins []string `yaml:"allow_origins" json:"allow_origins"` // 前端页面来源
	RateLimit    float64  `yaml:"rate_limit" json:"rate_limit"`       // 每个客户端每秒可运行次数
	RateBurst    int      `yaml:"rate_burst" json:"rate_burst"`
}

func (c *ServerConf) Default() {
	if c.Port == "" {
		c.Port = "25000"
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"*"}
	}
	if c.RateLimit == 0 {
		c.RateLimit = 5
	}
	if c.RateBurst == 0 {
		c.RateBurst = 10
	}
}
