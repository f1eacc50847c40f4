// Package storage 聚合应用的持久化资源，数据库、KV 缓存、消息队列和 rclone 远端.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	rcloneClient := mgr.GetRcloneClient()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	dbc "github.com/bedrib/mediamover/pkg/internal/storage/db"
	kvc "github.com/bedrib/mediamover/pkg/internal/storage/kv"
	mqc "github.com/bedrib/mediamover/pkg/internal/storage/mq"
	rclonec "github.com/bedrib/mediamover/pkg/internal/storage/rclone"
	nlog "github.com/bedrib/mediamover/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB     *dbc.Client
	KV     *kvc.Client
	MQ     *mqc.Client
	Rclone *rclonec.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
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

		// rclone 远端，纯子进程客户端，构造不会失败
		m.Rclone = rclonec.New()

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetRcloneClient 获取 rclone 客户端.
func (m *Manager) GetRcloneClient() *rclonec.Client {
	return m.Rclone
}
