package server

import (
	"codepad-server/internal/conf"
	"codepad-server/internal/service/session"
	"codepad-server/internal/service/storage"
	"codepad-server/server/handler"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps 路由依赖的服务
type Deps struct {
	Sessions  *session.Store
	Artifacts *storage.StorageEngine
	Jobs      handler.JobStatusSource
	Judge     handler.JudgeInfo
}

// NewRouter 创建gin实例并注册路由
func NewRouter(config conf.ServerConf, deps Deps) *gin.Engine {
	router := gin.Default()

	corsConf := cors.DefaultConfig()
	corsConf.AllowOrigins = config.AllowOrigins
	corsConf.AllowHeaders = append(corsConf.AllowHeaders, "Authorization")
	corsConf.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConf))

	InitRoute(router, config, deps)
	return router
}

// InitServer 启动服务，ctx 结束后优雅关闭
func InitServer(ctx context.Context, deps Deps) error {
	gin.SetMode(gin.ReleaseMode)
	config := conf.Conf.Server

	srv := &http.Server{
		Addr:    ":" + config.Port,
		Handler: NewRouter(config, deps),
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("server listening on :%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
