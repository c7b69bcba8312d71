package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config 存储引擎配置
type Config struct {
	StoreDir string        `yaml:"store_dir"` // 存储目录
	DBPath   string        `yaml:"db_path"`   // 数据库文件路径
	TTL      time.Duration `yaml:"ttl"`       // 未下载文件的保留时间，不大于 0 时不过期
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.StoreDir == "" {
		return fmt.Errorf("store_dir cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path cannot be empty")
	}
	return nil
}

var globalStorageEngine *StorageEngine

// GetStorageEngineInstance 获取存储引擎单例实例，需先调用 InitStorageEngine
func GetStorageEngineInstance() *StorageEngine {
	return globalStorageEngine
}

// InitStorageEngine 使用自定义配置初始化存储引擎
func InitStorageEngine(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// 确保数据库目录存在
	dbDir := filepath.Dir(config.DBPath)
	if dbDir != "." && dbDir != "" {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var err error
	globalStorageEngine, err = NewStorageEngine(config.StoreDir, config.DBPath, config.TTL)
	return err
}

// CloseStorageEngine 关闭存储引擎
func CloseStorageEngine() error {
	if globalStorageEngine != nil {
		return globalStorageEngine.Close()
	}
	return nil
}
