package session

import (
	"codepad-server/internal/model"
	"codepad-server/internal/service/language"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

// Executor 运行代码，阻塞直到得到结果
type Executor interface {
	SubmitJob(ctx context.Context, req model.RunRequest) model.RunResult
}

// ArtifactStore 保存等待下载的文件
type ArtifactStore interface {
	Create(filename string, content []byte) (model.Artifact, error)
}

// Publisher 运行结束后的事件发布
type Publisher interface {
	PublishRunResult(ev model.RunEvent) error
}

type entry struct {
	session model.Session
	ctx     context.Context    // 会话删除时结束，所有运行由它派生
	close   context.CancelFunc
	cancel  context.CancelFunc // 最近一次运行的取消函数
}

// Store 保存所有编辑器会话，会话只在内存中
type Store struct {
	mu            sync.RWMutex
	sessions      map[string]*entry
	exec          Executor
	artifacts     ArtifactStore
	publisher     Publisher
	cancelOnRerun bool
	now           func() time.Time
}

type Option func(*Store)

// WithPublisher 设置运行结果事件发布
func WithPublisher(p Publisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

// WithCancelOnRerun 为 true 时新的运行会取消同一会话中未完成的运行。
// 默认不取消，输出以最后完成的为准
func WithCancelOnRerun(cancel bool) Option {
	return func(s *Store) {
		s.cancelOnRerun = cancel
	}
}

func NewStore(exec Executor, artifacts ArtifactStore, opts ...Option) *Store {
	s := &Store{
		sessions:      make(map[string]*entry),
		exec:          exec,
		artifacts:     artifacts,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create 新建会话，默认语言为 python，浅色主题
func (s *Store) Create() model.Session {
	lang := language.DefaultLanguage()
	now := s.now()
	sess := model.Session{
		ID:        uuid.NewString(),
		Language:  lang.Name,
		Code:      lang.Template,
		Theme:     model.ThemeLight,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ctx, closeFn := context.WithCancel(context.Background())
	s.mu.Lock()
	s.sessions[sess.ID] = &entry{session: sess, ctx: ctx, close: closeFn}
	s.mu.Unlock()
	return sess
}

func (s *Store) Get(id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	return e.session, nil
}

// List 按创建时间返回所有会话
func (s *Store) List() []model.Session {
	s.mu.RLock()
	list := make([]model.Session, 0, len(s.sessions))
	for _, e := range s.sessions {
		list = append(list, e.session)
	}
	s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Delete 删除会话并取消其所有未完成的运行
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.close()
	return nil
}

// update 在锁内修改会话
func (s *Store) update(id string, fn func(*model.Session) error) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	if err := fn(&e.session); err != nil {
		return model.Session{}, err
	}
	e.session.UpdatedAt = s.now()
	return e.session, nil
}

// SetLanguage 切换语言，代码重置为该语言的模板并清空输入输出
func (s *Store) SetLanguage(id, name string) (model.Session, error) {
	lang, err := language.GetLanguageByName(name)
	if err != nil {
		return model.Session{}, err
	}
	return s.update(id, func(sess *model.Session) error {
		sess.Language = lang.Name
		sess.Code = lang.Template
		sess.Stdin = ""
		sess.Output = ""
		return nil
	})
}

func (s *Store) ToggleTheme(id string) (model.Session, error) {
	return s.update(id, func(sess *model.Session) error {
		sess.Theme = sess.Theme.Toggle()
		return nil
	})
}

func (s *Store) SetCode(id, code string) (model.Session, error) {
	return s.update(id, func(sess *model.Session) error {
		sess.Code = code
		return nil
	})
}

func (s *Store) SetStdin(id, stdin string) (model.Session, error) {
	return s.update(id, func(sess *model.Session) error {
		sess.Stdin = stdin
		return nil
	})
}

func (s *Store) SetFilename(id, filename string) (model.Session, error) {
	return s.update(id, func(sess *model.Session) error {
		sess.Filename = filename
		return nil
	})
}

// Open 用打开的文件替换代码和文件名，不校验内容
func (s *Store) Open(id, filename, content string) (model.Session, error) {
	return s.update(id, func(sess *model.Session) error {
		sess.Filename = filename
		sess.Code = content
		return nil
	})
}

// Save 将当前代码保存为待下载文件，文件名为空时使用 code.txt
func (s *Store) Save(id string) (model.Artifact, error) {
	sess, err := s.Get(id)
	if err != nil {
		return model.Artifact{}, err
	}
	name := sess.Filename
	if name == "" {
		name = model.DefaultFilename
	}
	return s.artifacts.Create(name, []byte(sess.Code))
}

// Run 以当前会话状态发起一次运行，立即返回，结果写入会话输出并通过通道返回
func (s *Store) Run(id string) (<-chan model.RunResult, error) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	req := model.RunRequest{
		Language:   e.session.Language,
		SourceCode: e.session.Code,
		Stdin:      e.session.Stdin,
	}
	if s.cancelOnRerun && e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(e.ctx)
	e.cancel = cancel
	e.session.RunSeq++
	e.session.Running = true
	seq := e.session.RunSeq
	s.mu.Unlock()

	done := make(chan model.RunResult, 1)
	go func() {
		defer cancel()
		res := s.exec.SubmitJob(ctx, req)
		s.finish(id, seq, req.Language, res)
		done <- res
	}()
	return done, nil
}

// RunSync 发起运行并等待结果
func (s *Store) RunSync(ctx context.Context, id string) (model.RunResult, error) {
	done, err := s.Run(id)
	if err != nil {
		return model.RunResult{}, err
	}
	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return model.RunResult{}, ctx.Err()
	}
}

func (s *Store) finish(id string, seq uint64, lang string, res model.RunResult) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		// 被取消的运行不写输出；其余结果后完成的覆盖先完成的
		if res.Outcome != model.OutcomeCanceled {
			e.session.Output = res.Output
			e.session.UpdatedAt = s.now()
		}
		if e.session.RunSeq == seq {
			e.session.Running = false
			e.cancel = nil
		}
	}
	s.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"session": id, "outcome": res.Outcome, "polls": res.Polls})
	if res.Outcome == model.OutcomeCanceled {
		log.Debug("run canceled")
		return
	}
	log.Info("run finished")

	if s.publisher != nil && ok {
		err := s.publisher.PublishRunResult(model.RunEvent{
			SessionID:  id,
			Language:   lang,
			Outcome:    res.Outcome,
			Output:     res.Output,
			Token:      res.Token,
			FinishedAt: s.now(),
		})
		if err != nil {
			log.WithError(err).Warn("publish run result failed")
		}
	}
}
