// Package storage 聚合数据库、Blob、KV 和 MQ 存储资源的初始化与访问.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//	    // 处理错误
//	}
//
//	dbClient := mgr.GetDBClient()
//	blobClient := mgr.GetBlobClient()
package storage

import (
	"context"
	"sync"

	"github.com/sakuray/campusvault/pkg/internal/model"
	blobc "github.com/sakuray/campusvault/pkg/internal/storage/blob"
	dbc "github.com/sakuray/campusvault/pkg/internal/storage/db"
	kvc "github.com/sakuray/campusvault/pkg/internal/storage/kv"
	mqc "github.com/sakuray/campusvault/pkg/internal/storage/mq"
	nlog "github.com/sakuray/campusvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB   *dbc.Client
	Blob *blobc.Client
	KV   *kvc.Client
	MQ   *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置. 重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.DB = dbi

		// 建表
		if e := dbi.WithContext(ctx).AutoMigrate(
			&model.File{},
			&model.User{},
			&model.Student{},
		); e != nil {
			err = e
			return
		}

		// Blob
		blobi, e := blobc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.Blob = blobi

		// KV
		kvi, e := kvc.NewKVClient(ctx)
		if e != nil {
			err = e
			return
		}

		m.KV = kvi

		// MQ
		mqi, e := mqc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.MQ = mqi

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetBlobClient 获取 Blob 客户端.
func (m *Manager) GetBlobClient() *blobc.Client {
	return m.Blob
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close 依次关闭全部存储资源.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.KV != nil {
		if e := m.KV.Close(); e != nil {
			err = e
		}
	}

	if m.Blob != nil {
		if e := m.Blob.Close(); e != nil {
			err = e
		}
	}

	if m.DB != nil {
		if sqlDB, e := m.DB.DB.DB(); e == nil {
			if e := sqlDB.Close(); e != nil {
				err = e
			}
		}
	}

	return err
}
