package service

import (
	"context"

	"github.com/sakuray/campusvault/pkg/cache"
	ctxPkg "github.com/sakuray/campusvault/pkg/context"
	"github.com/sakuray/campusvault/pkg/internal/storage/blob"
	"github.com/sakuray/campusvault/pkg/internal/storage/db"
	"github.com/sakuray/campusvault/pkg/internal/storage/mq"
)

// FileService 文件工作流服务，负责元数据和Blob内容的协同管理.
// 所有依赖在构造时显式注入.
type FileService struct {
	dbClient   *db.Client
	blobClient *blob.Client
	mqClient   *mq.Client
	metaCache  *cache.Cache
}

// New 以显式依赖构造 FileService. mqClient 和 metaCache 可以为 nil.
func New(dbClient *db.Client, blobClient *blob.Client, mqClient *mq.Client, metaCache *cache.Cache) *FileService {
	return &FileService{
		dbClient:   dbClient,
		blobClient: blobClient,
		mqClient:   mqClient,
		metaCache:  metaCache,
	}
}

// NewFileService 从请求上下文中取出存储客户端构造服务.
func NewFileService(c context.Context) *FileService {
	dbc := ctxPkg.GetDBClient(c)
	blobc := ctxPkg.GetBlobClient(c)
	mqc := ctxPkg.GetMQClient(c)

	var metaCache *cache.Cache
	if kvc := ctxPkg.GetKVClient(c); kvc != nil {
		metaCache = cache.NewCache(kvc.KVStore)
	}

	return &FileService{
		dbClient:   dbc,
		blobClient: blobc,
		mqClient:   mqc,
		metaCache:  metaCache,
	}
}
