// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"medi-ai-go/internal/config"
	"medi-ai-go/internal/handler"
	"medi-ai-go/internal/middleware"
	"medi-ai-go/internal/model"
	"medi-ai-go/internal/repository"
	"medi-ai-go/internal/service"
	"medi-ai-go/pkg/database"
	"medi-ai-go/pkg/llm"
	"medi-ai-go/pkg/log"
	"medi-ai-go/pkg/storage"
	"medi-ai-go/pkg/token"
)

func main() {
	// 1. 初始化配置（jwt.secret 缺失会在这里直接失败）
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 初始化可选的外部依赖。
	// MySQL 缺省时用户存进程内存；Redis 缺省时限流退化为本地窗口、历史记录禁用。
	var userRepo repository.UserRepository
	if cfg.Database.MySQL.DSN != "" {
		database.InitMySQL(cfg.Database.MySQL.DSN)
		if err := database.DB.AutoMigrate(&model.User{}); err != nil {
			log.Fatal("用户表迁移失败", err)
		}
		userRepo = repository.NewUserRepository(database.DB)
	} else {
		log.Info("未配置 MySQL，用户数据仅保存在进程内存中")
		userRepo = repository.NewMemoryUserRepository()
	}

	var redisClient *redis.Client
	var historyRepo repository.HistoryRepository
	if cfg.Database.Redis.Addr != "" {
		database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		redisClient = database.RDB
		historyRepo = repository.NewHistoryRepository(redisClient)
	} else {
		log.Info("未配置 Redis，查询历史与 token 黑名单已禁用")
	}

	if cfg.MinIO.Endpoint != "" {
		storage.InitMinIO(cfg.MinIO)
	}

	// 4. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenExpireDays)
	llmClient := llm.NewClient(cfg.LLM)

	var classifier service.Classifier
	if cfg.Assistant.ClassifyFallback {
		classifier = service.NewKeywordClassifier()
	}
	assistantService := service.NewAssistantService(llmClient, classifier)
	doctorService := service.NewDoctorService()
	userService := service.NewUserService(userRepo, jwtManager, redisClient, cfg.MinIO)

	// 5. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 6. 注册路由
	api := r.Group("/api")
	api.Use(
		middleware.CORSMiddleware(),
		middleware.SecurityHeaders(),
		middleware.RateLimiter(middleware.RateLimitConfig{
			Limit:  cfg.RateLimit.Limit,
			Window: time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
		}, redisClient),
	)
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Medical Assistant API is running"})
		})

		medicalHandler := handler.NewMedicalHandler(assistantService, doctorService, historyRepo)
		medical := api.Group("/medical")
		{
			// 查询路由匿名可用；携带有效 token 时结果会写入该用户的历史
			medical.POST("/query", middleware.OptionalAuthMiddleware(jwtManager, userService), medicalHandler.Query)
			medical.GET("/categories", medicalHandler.Categories)
			medical.POST("/nearby-doctors", medicalHandler.NearbyDoctors)
			medical.GET("/history", middleware.AuthMiddleware(jwtManager, userService), medicalHandler.History)
		}

		authHandler := handler.NewAuthHandler(userService)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authed := auth.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/profile", authHandler.GetProfile)
				authed.PUT("/profile", authHandler.UpdateProfile)
				authed.POST("/logout", authHandler.Logout)
				authed.POST("/avatar", authHandler.UploadAvatar)
			}
		}
	}

	// 7. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
