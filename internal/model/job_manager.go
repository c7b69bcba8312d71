package model

type JobManagerStatus struct {
	JobQueueNum  int               `json:"job_queue_num"`
	JobQueueLen  int               `json:"job_queue_len"`
	JobPoolNum   int               `json:"job_pool_num"`
	RunnerStatus []JobRunnerStatus `json:"runner_status"`
}

type JobRunnerStatus struct {
	Id       int     `json:"id"`
	Status   string  `json:"status"`
	Language string  `json:"language,omitempty"`
	TimeUsed float64 `json:"time_used"`
}
