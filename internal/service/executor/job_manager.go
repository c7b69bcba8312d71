package executor

import (
	"codepad-server/internal/model"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job 表示一次运行任务，由任务管理器调度执行
type Job struct {
	Ctx      context.Context
	Request  model.RunRequest
	RespChan chan model.RunResult
}

// ProcessFunc 任务的实际执行函数
type ProcessFunc func(ctx context.Context, req model.RunRequest) model.RunResult

type JobManager struct {
	JobQueue    chan *Job          // 任务队列
	JobQueueNum int                // 任务队列大小
	JobPoolNum  int                // 任务池大小
	JobRunners  map[int]*JobRunner // 任务运行器
}

// NewJobManager 创建任务管理器
// @Param process ProcessFunc 任务执行函数
// @Param jobPoolNum int 运行器数量
// @Param jobQueueNum int 任务队列大小
func NewJobManager(process ProcessFunc, jobPoolNum, jobQueueNum int) *JobManager {
	var jm = &JobManager{
		JobQueue:    make(chan *Job, jobQueueNum),
		JobQueueNum: jobQueueNum,
		JobPoolNum:  jobPoolNum,
		JobRunners:  make(map[int]*JobRunner),
	}
	for i := 0; i < jobPoolNum; i++ {
		jobRunner := NewJobRunner(i, jm.JobQueue, process)
		jm.JobRunners[i] = jobRunner
	}
	return jm
}

func (jm *JobManager) Start() {
	for _, jobRunner := range jm.JobRunners {
		jobRunner.Start()
	}
}

// SubmitJob 提交一个新任务到任务队列。
// 未知语言和不可运行的语言不进入队列，直接返回结果。
// 如果任务队列已满，则会立即返回一个表示队列已满的 RunResult。
// 否则，任务会被添加到队列中，并阻塞等待任务执行完成后的结果。
func (jm *JobManager) SubmitJob(ctx context.Context, req model.RunRequest) model.RunResult {
	// 不需要提交到评测服务的请求不占用队列
	if _, res, ok := resolve(req); !ok {
		recordOutcome(res.Outcome)
		return res
	}

	job := &Job{
		Ctx:      ctx,
		Request:  req,
		RespChan: make(chan model.RunResult, 1),
	}

	select {
	case jm.JobQueue <- job:
		IncrementSubmitted()
	default:
		IncrementRejected()
		return failed("", 0, ErrQueueFull)
	}

	select {
	case res := <-job.RespChan:
		return res
	case <-ctx.Done():
		// 运行器仍会在发现 ctx 取消后尽快结束
		return canceled("", 0, ctx.Err())
	}
}

func (jm *JobManager) Stop() {
	for _, jobRunner := range jm.JobRunners {
		jobRunner.Stop()
	}
}

func (jm *JobManager) GetJobRunnerStatus(id int) (JobRunnerStatus, error) {
	if jobRunner, ok := jm.JobRunners[id]; ok {
		return jobRunner.GetStatus(), nil
	}
	return JobRunnerStatusUnknown, fmt.Errorf("job runner %d not found", id)
}

// GetStatus 返回队列和所有运行器的状态
func (jm *JobManager) GetStatus() model.JobManagerStatus {
	status := model.JobManagerStatus{
		JobQueueNum:  jm.JobQueueNum,
		JobQueueLen:  len(jm.JobQueue),
		JobPoolNum:   jm.JobPoolNum,
		RunnerStatus: make([]model.JobRunnerStatus, 0, len(jm.JobRunners)),
	}
	for i := 0; i < jm.JobPoolNum; i++ {
		jr, ok := jm.JobRunners[i]
		if !ok {
			continue
		}
		status.RunnerStatus = append(status.RunnerStatus, jr.Snapshot())
	}
	return status
}

type JobRunnerStatus uint8

const (
	JobRunnerStatusIdle JobRunnerStatus = iota
	JobRunnerStatusRunning
	JobRunnerStatusStopped
	JobRunnerStatusUnknown
)

func (s JobRunnerStatus) String() string {
	switch s {
	case JobRunnerStatusIdle:
		return "Idle"
	case JobRunnerStatusRunning:
		return "Running"
	case JobRunnerStatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

type JobControlCommand uint8

const (
	JobControlCommandStop JobControlCommand = iota
)

// JobRunner 表示任务运行器，负责执行具体的任务
type JobRunner struct {
	Id          int
	JobQueue    <-chan *Job
	process     ProcessFunc
	mu          sync.Mutex
	job         *Job
	status      JobRunnerStatus
	startedAt   time.Time
	controlChan chan JobControlCommand // 控制通道，用于接收控制命令
	jobFinish   chan struct{}          // 任务完成通道，当任务完成时，向该通道发送信号
}

func NewJobRunner(id int, jobQueue <-chan *Job, process ProcessFunc) *JobRunner {
	return &JobRunner{
		Id:          id,
		JobQueue:    jobQueue,
		process:     process,
		status:      JobRunnerStatusStopped,
		controlChan: make(chan JobControlCommand),
		jobFinish:   make(chan struct{}, 1),
	}
}

func (jr *JobRunner) Start() {
	jr.setStatus(JobRunnerStatusIdle, nil)
	go jr.Run()
}

func (jr *JobRunner) Stop() {
	if jr.GetStatus() == JobRunnerStatusStopped {
		return
	}
	jr.controlChan <- JobControlCommandStop
}

func (jr *JobRunner) GetStatus() JobRunnerStatus {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	return jr.status
}

// Snapshot 返回运行器当前状态，TimeUsed 为当前任务已运行的秒数
func (jr *JobRunner) Snapshot() model.JobRunnerStatus {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	s := model.JobRunnerStatus{
		Id:     jr.Id,
		Status: jr.status.String(),
	}
	if jr.job != nil {
		s.Language = jr.job.Request.Language
		s.TimeUsed = time.Since(jr.startedAt).Seconds()
	}
	return s
}

func (jr *JobRunner) setStatus(status JobRunnerStatus, job *Job) {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	jr.status = status
	jr.job = job
	if job != nil {
		jr.startedAt = time.Now()
	}
}

func (jr *JobRunner) Run() {
	for jr.GetStatus() != JobRunnerStatusStopped {
		// 根据当前状态动态设置可用的通道
		var jobChan <-chan *Job
		if jr.GetStatus() == JobRunnerStatusIdle {
			jobChan = jr.JobQueue
		}

		select {
		case job := <-jobChan: // 仅在Idle状态监听任务队列
			jr.handleJob(job)
		case cmd := <-jr.controlChan:
			jr.handleControl(cmd)
		case <-jr.jobFinish:
			jr.setStatus(JobRunnerStatusIdle, nil)
		}
	}
}

func (jr *JobRunner) handleJob(job *Job) {
	jr.setStatus(JobRunnerStatusRunning, job)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("runner", jr.Id).Errorf("job panic: %v", r)
				job.RespChan <- failed("", 0, fmt.Errorf("internal error: %v", r))
			}
			jr.jobFinish <- struct{}{}
		}()
		if err := job.Ctx.Err(); err != nil {
			// 排队期间已被取消
			job.RespChan <- canceled("", 0, err)
			return
		}
		res := jr.process(job.Ctx, job.Request)
		recordOutcome(res.Outcome)
		job.RespChan <- res
	}()
}

func (jr *JobRunner) handleControl(cmd JobControlCommand) {
	switch cmd {
	case JobControlCommandStop:
		jr.setStatus(JobRunnerStatusStopped, nil)
	}
}
