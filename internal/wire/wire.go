//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"foligo-api/internal/application/assistant"
	appauth "foligo-api/internal/application/auth"
	appcontent "foligo-api/internal/application/content"
	appmedia "foligo-api/internal/application/media"
	appproject "foligo-api/internal/application/project"
	appuser "foligo-api/internal/application/user"
	"foligo-api/internal/config"
	"foligo-api/internal/domain/repository"
	"foligo-api/internal/infrastructure/llm"
	"foligo-api/internal/infrastructure/messaging"
	"foligo-api/internal/infrastructure/persistence/postgres"
	"foligo-api/internal/infrastructure/persistence/redis"
	"foligo-api/internal/infrastructure/sso"
	"foligo-api/internal/infrastructure/storage"
	"foligo-api/internal/interfaces/http/handler"
	"foligo-api/internal/interfaces/http/router"
	"foligo-api/internal/workflow/chain"
	workflowport "foligo-api/internal/workflow/port"
)

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient    *postgres.Client
	TxManager   *postgres.TxManager
	UserRepo    *postgres.UserRepository
	ProjectRepo *postgres.ProjectRepository
	ContentRepo *postgres.ContentRepository
	SkillRepo   *postgres.SkillRepository
	TagRepo     *postgres.TagRepository
	MediaRepo   *postgres.MediaRepository
}

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		StorageSet,
		SSOSet,
		WorkflowSet,
		ApplicationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserRepository,
	postgres.NewProjectRepository,
	postgres.NewContentRepository,
	postgres.NewSkillRepository,
	postgres.NewTagRepository,
	postgres.NewMediaRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.ProjectRepository), new(*postgres.ProjectRepository)),
	wire.Bind(new(repository.ContentRepository), new(*postgres.ContentRepository)),
	wire.Bind(new(repository.SkillRepository), new(*postgres.SkillRepository)),
	wire.Bind(new(repository.TagRepository), new(*postgres.TagRepository)),
	wire.Bind(new(repository.MediaRepository), new(*postgres.MediaRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
)

// StorageSet 对象存储提供者集合
var StorageSet = wire.NewSet(
	ProvideStorageClient,
)

// SSOSet SSO 提供者集合
var SSOSet = wire.NewSet(
	sso.NewRegistry,
	ProvideLoginSessionStore,
	wire.Bind(new(sso.LoginSessionStore), new(*sso.MemorySessionStore)),
)

// WorkflowSet 工作流提供者集合（模型工厂 + 重试器 + 各条链）
var WorkflowSet = wire.NewSet(
	llm.NewEinoFactory,
	llm.NewRetrier,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(workflowport.ModelCaller), new(*llm.Retrier)),
	chain.NewConversationChain,
	chain.NewClassifyChain,
	chain.NewGenerateChain,
	chain.NewExtractChain,
)

// ApplicationSet 应用服务提供者集合
var ApplicationSet = wire.NewSet(
	assistant.NewContextBuilder,
	assistant.NewClassifier,
	assistant.NewTurnHandler,
	assistant.NewGenerator,
	appcontent.NewEntityResolver,
	appcontent.NewService,
	wire.Bind(new(assistant.ContentReader), new(*appcontent.Service)),
	appauth.NewService,
	appauth.NewSSOService,
	appproject.NewService,
	appuser.NewService,
	appmedia.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewProjectHandler,
	handler.NewContentHandler,
	handler.NewTaxonomyHandler,
	handler.NewMediaHandler,
	handler.NewAssistantHandler,
	handler.NewWebhookHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.New,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

// ProvideStorageClient 提供 MinIO 对象存储客户端
func ProvideStorageClient(cfg *config.Config) (*storage.Client, error) {
	return storage.NewClient(&cfg.Storage.Minio)
}

// ProvideLoginSessionStore 提供 SSO 登录会话存储并启动过期清理
func ProvideLoginSessionStore(ctx context.Context, cfg *config.Config) *sso.MemorySessionStore {
	store := sso.NewMemorySessionStore(cfg.SSO.SessionTTL)
	sso.StartSweeper(ctx, store, cfg.SSO.SweepInterval)
	return store
}
