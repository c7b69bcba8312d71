package bootstrap

import (
	"codepad-server/internal/conf"
	"codepad-server/internal/service/storage"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func initStorage(ctx context.Context) (*storage.StorageEngine, error) {
	// 使用配置文件中的存储配置初始化存储引擎
	storageConfig := &storage.Config{
		StoreDir: conf.Conf.Storage.StoreDir,
		DBPath:   conf.Conf.Storage.DBPath,
		TTL:      time.Duration(conf.Conf.Storage.ArtifactTTL) * time.Second,
	}

	if err := storage.InitStorageEngine(storageConfig); err != nil {
		return nil, err
	}
	se := storage.GetStorageEngineInstance()
	se.StartJanitor(ctx, time.Minute)

	logrus.Info("Storage engine initialized successfully")
	return se, nil
}
