package conf

// EventsConf 运行结果事件配置，NatsURL 为空时不发布
type EventsConf struct {
	NatsURL string `yaml:"nats_url" json:"nats_url"`
	Subject string `yaml:"subject" json:"subject"`
}

func (c *EventsConf) Default() {
	if c.Subject == "" {
		c.Subject = "codepad.run.result"
	}
}
