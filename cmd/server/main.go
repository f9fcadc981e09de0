// Package main 是应用程序的入口点。
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"faq-support-go/internal/config"
	"faq-support-go/internal/handler"
	"faq-support-go/internal/model"
	"faq-support-go/internal/repository"
	"faq-support-go/internal/seed"
	"faq-support-go/internal/service"
	"faq-support-go/pkg/database"
	"faq-support-go/pkg/kafka"
	"faq-support-go/pkg/llm"
	"faq-support-go/pkg/log"
	"faq-support-go/pkg/storage"
	"faq-support-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 0. 加载 .env（不存在时忽略）
	_ = godotenv.Load()

	// 1. 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志记录器
	if err := log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	ctx := context.Background()

	// 3. 初始化存储
	faqRepo, conversationRepo, messageRepo := mustOpenStorage(cfg.Database)

	// 4. 可选组件：Redis 幂等缓存、Kafka 事件、MinIO 种子来源
	var replyCache repository.ReplyCache
	if cfg.Database.Redis.Addr != "" {
		rdb, err := database.NewRedis(ctx, cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		if err != nil {
			log.Fatal("初始化 Redis 失败", err)
		}
		defer rdb.Close()
		replyCache = repository.NewReplyCache(rdb)
	}

	var publisher service.EventPublisher
	if cfg.Kafka.Brokers != "" {
		producer := kafka.NewProducer(cfg.Kafka)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("关闭 Kafka 生产者失败", err)
			}
		}()
		publisher = producer
	}

	var objects seed.ObjectReader
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal("初始化 MinIO 失败", err)
		}
		objects = store
	}

	// 5. 初始化模型提供方；缺少 API key 时使用禁用实现
	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		log.Fatal("初始化模型提供方失败", err)
	}
	if !cfg.LLM.Enabled() {
		log.Warnf("未配置 API key，所有回复将返回未配置提示")
	} else {
		log.Infof("模型提供方: %s, 模型: %s", cfg.LLM.Provider, provider.Model())
	}

	// 6. 初始化 Service (依赖注入)
	faqService := service.NewFAQService(faqRepo)
	chatService := service.NewChatService(
		faqRepo,
		conversationRepo,
		messageRepo,
		service.NewModelInvoker(provider, cfg.LLM.Timeout()),
		publisher,
		replyCache,
		cfg.Chat,
	)

	// 7. 初始化 FAQ 数据（仅当表为空）
	if cfg.Seed.OnStartup {
		entries, err := seed.Load(ctx, cfg.Seed, objects)
		if err != nil {
			log.Fatal("加载初始 FAQ 失败", err)
		}
		if _, err := faqService.SeedIfEmpty(ctx, entries); err != nil {
			log.Fatal("写入初始 FAQ 失败", err)
		}
	}

	deps := handler.RouterDeps{
		Server: cfg.Server,
		Chat:   chatService,
		FAQ:    faqService,
	}
	if cfg.AdminEnabled() {
		jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours)
		deps.JWTManager = jwtManager
		deps.Admin = service.NewAdminService(cfg.Admin, cfg.JWT, jwtManager)
		log.Info("管理接口已启用")
	}

	// 8. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(deps)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}

// mustOpenStorage 根据配置返回内存或数据库实现的仓储。
func mustOpenStorage(cfg config.DatabaseConfig) (repository.FAQRepository, repository.ConversationRepository, repository.MessageRepository) {
	if cfg.Driver == "memory" {
		log.Warnf("使用内存存储，进程退出后数据将丢失")
		store := repository.NewMemoryStore()
		return store.FAQs(), store.Conversations(), store.Messages()
	}

	db, err := database.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		log.Fatal("初始化数据库失败", err)
	}
	if err := database.Migrate(db, &model.FAQ{}, &model.Conversation{}, &model.Message{}); err != nil {
		log.Fatal("数据库迁移失败", err)
	}
	log.Infof("数据库初始化成功, driver: %s", cfg.Driver)
	return repository.NewFAQRepository(db), repository.NewConversationRepository(db), repository.NewMessageRepository(db)
}
