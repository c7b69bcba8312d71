package executor

import (
	"codepad-server/internal/model"
	"codepad-server/internal/service/language"
	"codepad-server/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Judge 远程评测服务，提交代码并按 token 查询结果
type Judge interface {
	Submit(ctx context.Context, req model.SubmissionRequest) (string, error)
	Get(ctx context.Context, token string) (model.SubmissionResult, error)
}

// PollPolicy 轮询策略
type PollPolicy struct {
	Interval    time.Duration // 首次重试前的等待
	MaxInterval time.Duration // 不大于 Interval 时为固定间隔，否则每次翻倍直到该值
	Timeout     time.Duration // 轮询总时长上限，0 为不限制
}

func (p PollPolicy) next(cur time.Duration) time.Duration {
	if p.MaxInterval <= p.Interval {
		return p.Interval
	}
	cur *= 2
	if cur > p.MaxInterval {
		cur = p.MaxInterval
	}
	return cur
}

// Runner 执行一次“提交 -> 轮询 -> 结果”的流程
type Runner struct {
	judge  Judge
	policy PollPolicy
	wait   func(ctx context.Context, d time.Duration) error
}

type RunnerOption func(*Runner)

// WithWaiter 替换轮询间隔的等待函数
func WithWaiter(wait func(ctx context.Context, d time.Duration) error) RunnerOption {
	return func(r *Runner) {
		r.wait = wait
	}
}

func NewRunner(judge Judge, policy PollPolicy, opts ...RunnerOption) *Runner {
	if policy.Interval <= 0 {
		policy.Interval = time.Second
	}
	r := &Runner{
		judge:  judge,
		policy: policy,
		wait:   sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run 运行代码并返回输出。
// 不可运行的语言直接返回提示文本；提交或轮询出错时输出为 "Error: " 加错误信息；
// 状态 ID 不大于 2 时等待后重新查询，否则取 stdout，其次 stderr，都为空时为 "No output"。
func (r *Runner) Run(ctx context.Context, req model.RunRequest) model.RunResult {
	lang, early, ok := resolve(req)
	if !ok {
		return early
	}

	log := logrus.WithField("language", lang.Name)

	token, err := r.judge.Submit(ctx, model.SubmissionRequest{
		SourceCode: req.SourceCode,
		LanguageID: lang.JudgeID,
		Stdin:      req.Stdin,
	})
	if err != nil {
		if ctx.Err() != nil {
			return canceled("", 0, ctx.Err())
		}
		log.WithError(err).Warn("submit failed")
		return failed("", 0, err)
	}
	log = log.WithField("token", token)

	pollCtx := ctx
	if r.policy.Timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, r.policy.Timeout)
		defer cancel()
	}

	delay := r.policy.Interval
	for polls := 1; ; polls++ {
		res, err := r.judge.Get(pollCtx, token)
		if err == nil && res.Status == nil {
			err = ErrMissingStatus
		}
		if err == nil && !res.Status.Id.Pending() {
			status := *res.Status
			log.WithFields(logrus.Fields{"status": status.Id.String(), "polls": polls}).Debug("submission finished")
			return model.RunResult{
				Outcome: model.OutcomeCompleted,
				Output:  utils.FirstNonEmpty(res.Stdout, res.Stderr, model.OutputNone),
				Token:   token,
				Status:  &status,
				Stdout:  res.Stdout,
				Stderr:  res.Stderr,
				Polls:   polls,
			}
		}
		if err == nil {
			err = r.wait(pollCtx, delay)
			delay = r.policy.next(delay)
		}
		if err != nil {
			switch {
			case ctx.Err() != nil:
				return canceled(token, polls, ctx.Err())
			case errors.Is(err, context.DeadlineExceeded) && pollCtx.Err() != nil:
				err = fmt.Errorf("no result after %s", r.policy.Timeout)
			}
			log.WithError(err).Warn("poll failed")
			return failed(token, polls, err)
		}
	}
}

// resolve 查找请求的语言。未知语言或不可运行的语言直接返回结果，ok 为 false
func resolve(req model.RunRequest) (model.Language, model.RunResult, bool) {
	lang, err := language.GetLanguageByName(req.Language)
	if err != nil {
		return lang, failed("", 0, err), false
	}
	if !lang.Executable() {
		return lang, model.RunResult{
			Outcome: model.OutcomeUnavailable,
			Output:  model.OutputNotAvailable,
		}, false
	}
	return lang, model.RunResult{}, true
}

func failed(token string, polls int, err error) model.RunResult {
	return model.RunResult{
		Outcome: model.OutcomeFailed,
		Output:  model.ErrorPrefix + err.Error(),
		Token:   token,
		Reason:  err.Error(),
		Polls:   polls,
	}
}

// canceled 被新的运行取消或会话被删除，输出不应覆盖会话
func canceled(token string, polls int, err error) model.RunResult {
	return model.RunResult{
		Outcome: model.OutcomeCanceled,
		Output:  model.ErrorPrefix + err.Error(),
		Token:   token,
		Reason:  err.Error(),
		Polls:   polls,
	}
}
