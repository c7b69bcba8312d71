package bootstrap

import (
	"codepad-server/internal/conf"
	"codepad-server/internal/service/events"
	"codepad-server/internal/service/executor"
	"codepad-server/internal/service/judge"
	"codepad-server/internal/service/session"
	"codepad-server/internal/service/storage"
	"codepad-server/server"
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Options 命令行参数
type Options struct {
	ConfigPath string
}

// Init 按顺序初始化各个模块并启动服务，收到退出信号后返回
func Init(opts Options) error {
	if err := initConf(opts.ConfigPath); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	se, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer storage.CloseStorageEngine()

	pub, err := initEvents()
	if err != nil {
		return err
	}
	defer pub.Close()

	client := initJudge()
	jobs := initExecutor(client)
	defer jobs.Stop()

	sessions := session.NewStore(jobs, se,
		session.WithPublisher(pub),
		session.WithCancelOnRerun(conf.Conf.Executor.CancelOnRerun),
	)

	return server.InitServer(ctx, server.Deps{
		Sessions:  sessions,
		Artifacts: se,
		Jobs:      jobs,
		Judge:     client,
	})
}

func initEvents() (events.Publisher, error) {
	return events.Connect(conf.Conf.Events)
}

func initJudge() *judge.Client {
	judge.Init(conf.Conf.Judge)
	if conf.Conf.Judge.APIKey == "" {
		logrus.Warn("judge api key is empty, requests may be rejected by the execution service")
	}
	return judge.GetClientInstance()
}

func initExecutor(client *judge.Client) *executor.JobManager {
	return executor.Init(client, conf.Conf.Executor)
}
