// Package app 提供应用程序的初始化和组装.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/filegate/pkg/api"
	"github.com/yeisme/filegate/pkg/configs"
	"github.com/yeisme/filegate/pkg/internal/handle"
	"github.com/yeisme/filegate/pkg/internal/registry"
	"github.com/yeisme/filegate/pkg/internal/service"
	"github.com/yeisme/filegate/pkg/internal/shortcode"
	"github.com/yeisme/filegate/pkg/internal/storage"
	"github.com/yeisme/filegate/pkg/internal/tgbot"
	"github.com/yeisme/filegate/pkg/log"
	"github.com/yeisme/filegate/pkg/metrics"
	"github.com/yeisme/filegate/pkg/middleware"
	"github.com/yeisme/filegate/pkg/rule"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	// 校验关键配置段，token 缺失时尽早失败
	if err := rule.ValidateStruct(&config.Bot); err != nil {
		fmt.Printf("Invalid bot config: %v\n", err)
		os.Exit(1)
	}

	if err := rule.ValidateStruct(&config.Store); err != nil {
		fmt.Printf("Invalid store config: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	bot, err := tgbot.New(config.Bot.Token)
	if err != nil {
		fmt.Printf("Error connecting to Telegram: %v\n", err)
		os.Exit(1)
	}

	dispatcher := buildDispatcher(config, manager, bot)

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.GinLoggerMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.StorageMiddleware(manager),
	)

	api.RegisterRoutes(engine, config.Bot.WebhookPath, handle.NewWebhookHandler(dispatcher))

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine: engine,
		config: config,
	}
}

// buildDispatcher 组装检索与收录服务.
func buildDispatcher(config *configs.AppConfig, manager *storage.Manager, bot *tgbot.Client) *service.Dispatcher {
	var reg registry.Registry = registry.NewMongo(manager.GetStoreClient())
	if kvClient := manager.GetKVClient(); kvClient != nil {
		reg = registry.NewCached(reg, kvClient)
	}

	verifier := service.NewVerifier(bot, config.Bot.ChannelID)
	access := service.NewAccessService(&config.Bot, reg, verifier, bot.Username())
	ingest := service.NewIngestService(&config.Bot, reg, shortcode.New(config.Bot.CodeLength), bot.Username())

	return service.NewDispatcher(access, ingest, bot)
}

func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
