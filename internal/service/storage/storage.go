package storage

import (
	"codepad-server/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// ContentType 保存的文件一律按 utf-8 文本下载
const ContentType = "text/plain;charset=utf-8"

var ErrArtifactNotFound = errors.New("artifact not found")

// StorageEngine 保存等待下载的文件，下载一次后即删除
type StorageEngine struct {
	db       *sql.DB
	storeDir string
	ttl      time.Duration
	now      func() time.Time
}

// NewStorageEngine 创建新的存储引擎实例
func NewStorageEngine(storeDir, dbPath string, ttl time.Duration) (*StorageEngine, error) {
	// 确保存储目录存在
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// 打开SQLite数据库
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	se := &StorageEngine{
		db:       db,
		storeDir: storeDir,
		ttl:      ttl,
		now:      time.Now,
	}

	// 初始化数据库表
	if err := se.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return se, nil
}

// initDB 初始化数据库表
func (se *StorageEngine) initDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS artifact (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		size INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);
	`
	_, err := se.db.Exec(query)
	return err
}

func (se *StorageEngine) path(id string) string {
	return filepath.Join(se.storeDir, id)
}

// Create 保存内容并返回待下载文件的元数据，磁盘上的文件名为随机 ID
func (se *StorageEngine) Create(filename string, content []byte) (model.Artifact, error) {
	now := se.now()
	a := model.Artifact{
		ID:          uuid.NewString(),
		Filename:    filename,
		Size:        int64(len(content)),
		ContentType: ContentType,
		CreatedAt:   now,
	}
	var expires int64
	if se.ttl > 0 {
		a.ExpiresAt = now.Add(se.ttl)
		expires = a.ExpiresAt.Unix()
	}

	if err := os.WriteFile(se.path(a.ID), content, 0644); err != nil {
		return model.Artifact{}, fmt.Errorf("failed to write file: %w", err)
	}

	_, err := se.db.Exec(
		"INSERT INTO artifact (id, filename, size, content_type, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)",
		a.ID, a.Filename, a.Size, a.ContentType, a.CreatedAt.Unix(), expires,
	)
	if err != nil {
		os.Remove(se.path(a.ID))
		return model.Artifact{}, err
	}
	return a, nil
}

// fromUnix 0 表示不过期
func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// Get 获取文件元数据，已过期的文件视为不存在
func (se *StorageEngine) Get(id string) (model.Artifact, error) {
	var (
		a                  model.Artifact
		created, expiresAt int64
	)
	err := se.db.QueryRow(
		"SELECT id, filename, size, content_type, created_at, expires_at FROM artifact WHERE id = ?",
		id,
	).Scan(&a.ID, &a.Filename, &a.Size, &a.ContentType, &created, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Artifact{}, ErrArtifactNotFound
		}
		return model.Artifact{}, err
	}
	a.CreatedAt = time.Unix(created, 0)
	a.ExpiresAt = fromUnix(expiresAt)
	if se.ttl > 0 && !se.now().Before(a.ExpiresAt) {
		return model.Artifact{}, ErrArtifactNotFound
	}
	return a, nil
}

// Open 返回文件元数据和内容
func (se *StorageEngine) Open(id string) (model.Artifact, io.ReadCloser, error) {
	a, err := se.Get(id)
	if err != nil {
		return model.Artifact{}, nil, err
	}
	file, err := os.Open(se.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Artifact{}, nil, ErrArtifactNotFound
		}
		return model.Artifact{}, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return a, file, nil
}

// List 列出所有未下载的文件
func (se *StorageEngine) List() ([]model.Artifact, error) {
	rows, err := se.db.Query(
		"SELECT id, filename, size, content_type, created_at, expires_at FROM artifact ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []model.Artifact
	for rows.Next() {
		var (
			a                  model.Artifact
			created, expiresAt int64
		)
		if err := rows.Scan(&a.ID, &a.Filename, &a.Size, &a.ContentType, &created, &expiresAt); err != nil {
			return nil, err
		}
		a.CreatedAt = time.Unix(created, 0)
		a.ExpiresAt = fromUnix(expiresAt)
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// Revoke 删除文件，下载完成后调用
func (se *StorageEngine) Revoke(id string) error {
	// 从数据库中删除记录
	if _, err := se.db.Exec("DELETE FROM artifact WHERE id = ?", id); err != nil {
		return err
	}

	// 删除物理文件
	if err := os.Remove(se.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PurgeExpired 删除所有过期的文件，返回删除数量
func (se *StorageEngine) PurgeExpired() (int, error) {
	if se.ttl <= 0 {
		return 0, nil
	}
	rows, err := se.db.Query("SELECT id FROM artifact WHERE expires_at <= ?", se.now().Unix())
	if err != nil {
		return 0, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()

	for _, id := range ids {
		if err := se.Revoke(id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// StartJanitor 定期清理过期文件，直到 ctx 结束
func (se *StorageEngine) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := se.PurgeExpired()
				if err != nil {
					logrus.WithError(err).Warn("purge expired artifacts failed")
				} else if n > 0 {
					logrus.WithField("count", n).Debug("expired artifacts purged")
				}
			}
		}
	}()
}

// Close 关闭存储引擎
func (se *StorageEngine) Close() error {
	return se.db.Close()
}
