package conf

type ExecutorConf struct {
	JobQueue             int  `yaml:"job_queue" json:"job_queue"`                           // 任务队列大小
	JobPool              int  `yaml:"job_pool" json:"job_pool"`                             // 任务协程池数量
	PollInterval         int  `yaml:"poll_interval" json:"poll_interval"`                   // ms 轮询间隔
	MaxPollInterval      int  `yaml:"max_poll_interval" json:"max_poll_interval"`           // ms 指数退避上限，不大于 poll_interval 时为固定间隔
	PollTimeout          int  `yaml:"poll_timeout" json:"poll_timeout"`                     // seconds 轮询总时长上限，0 为不限制
	CancelOnRerun        bool `yaml:"cancel_on_rerun" json:"cancel_on_rerun"`               // 为 true 时新的运行会取消同一会话中未完成的轮询
}

func (c *ExecutorConf) Default() {
	if c.JobQueue == 0 {
		c.JobQueue = 100
	}
	if c.JobPool == 0 {
		c.JobPool = 5
	}
	if c.PollInterval == 0 {
		c.PollInterval = 1000
	}
}
