package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"account-manager/internal/api/router"
	"account-manager/internal/model"
	"account-manager/internal/pkg/config"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/pkg/database"
	"account-manager/internal/pkg/logger"
	"account-manager/internal/repository"
	"account-manager/internal/scheduler"
	"account-manager/internal/service"

	_ "account-manager/docs" // Swagger docs
)

// @title Account Manager API
// @version 1.0
// @description 账号与凭据管理平台 API 文档
// @description 提供个人凭据、EMS系统账号、服务器安全信息管理等功能

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var (
	configFile = flag.String("config", "", "配置文件路径 (例如: -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "显示版本信息")
)

const (
	appVersion = "1.0.0"
	appName    = "account-manager"
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 显示版本信息
	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	// init config logger
	var cfg *config.Config
	{
		// 优先级: 命令行参数 > 环境变量 > 默认路径
		configPath := getConfigPath()

		// 加载配置
		c, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("加载配置失败: %v\n", err)
			fmt.Println("\n使用方式:")
			fmt.Println("  1. 命令行参数指定:")
			fmt.Println("     ./account-manager -config=configs/config.yaml")
			fmt.Println("  2. 环境变量指定:")
			fmt.Println("     export CONFIG_FILE=configs/config.yaml")
			fmt.Println("     ./account-manager")
			fmt.Println("  3. 使用默认配置:")
			fmt.Println("     ./account-manager  (将使用 configs/config.yaml)")
			os.Exit(1)
		}
		cfg = c

		// 初始化日志
		if err := logger.Init(&cfg.Log); err != nil {
			fmt.Printf("初始化日志失败: %v\n", err)
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Load config file: %s of %s", configPath, getConfigSource()))

		defer func() {
			_ = logger.Close()
		}()
	}

	logger.Info(fmt.Sprintf("服务 %s 启动中...", appName), zap.String("version", appVersion))

	if cfg.Auth.JWT.Secret == "" {
		logger.Fatal("auth.jwt.secret 未配置, 无法签发令牌")
	}

	// 初始化加密器; 密钥缺失时生成并回写配置文件
	cipher := setupCipher(cfg)

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer func() {
		_ = database.Close()
	}()

	logger.Info(fmt.Sprintf("数据库连接成功 %s:%v", cfg.Database.Host, cfg.Database.Port), zap.String("database", cfg.Database.Database))

	// 同步表结构
	if err := database.Migrate(
		&model.User{},
		&model.UserEquipmentAssignment{},
		&model.Credential{},
		&model.EmsSystem{},
		&model.EmsCredential{},
		&model.ServerSecurityInfo{},
		&model.SecurityChecklistItem{},
	); err != nil {
		logger.Fatal("同步表结构失败", zap.Error(err))
	}

	// 初始化并启动定时任务调度器
	emsRepo := repository.NewEmsRepository(database.GetDB())
	emsService := service.NewEmsService(emsRepo, cipher)
	taskScheduler := scheduler.NewScheduler(logger.Log, emsService)
	if err := taskScheduler.Start(cfg); err != nil {
		logger.Warn("定时任务调度器启动失败", zap.Error(err))
	}

	// 设置路由
	r := router.Setup(cfg, database.GetDB(), cipher)

	// 创建HTTP服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logger.Info(fmt.Sprintf("%s 服务启动成功", appName),
			zap.String("address", addr),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务正在关闭...")

	// 关闭定时任务调度器
	taskScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}

// setupCipher 构造凭据加密器
//
// crypto.aes_key 为空时自动生成并回写配置文件; 密钥一旦丢失
// 既有密文全部无法解密, 因此回写失败视为致命错误。
func setupCipher(cfg *config.Config) *crypto.Cipher {
	if cfg.Crypto.AESKey == "" {
		key, err := crypto.GenerateKey()
		if err != nil {
			logger.Fatal("生成加密密钥失败", zap.Error(err))
		}
		if err := cfg.PersistAESKey(key); err != nil {
			logger.Fatal("保存加密密钥失败", zap.Error(err))
		}
		logger.Warn("crypto.aes_key 未配置, 已自动生成并写入配置文件, 请妥善备份该密钥")
	}

	cipher, err := crypto.NewCipherFromBase64(cfg.Crypto.AESKey)
	if err != nil {
		logger.Fatal("初始化加密器失败", zap.Error(err))
	}
	return cipher
}

// getConfigPath 获取配置文件路径
// 优先级: 命令行参数 > 环境变量 > 默认路径
func getConfigPath() string {
	// 1. 命令行参数
	if *configFile != "" {
		return *configFile
	}

	// 2. 环境变量
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}

	// 3. 默认路径
	return "configs/config.yaml"
}

// getConfigSource 获取配置来源说明
func getConfigSource() string {
	if *configFile != "" {
		return "命令行参数"
	}
	if os.Getenv("CONFIG_FILE") != "" {
		return "环境变量"
	}
	return "默认配置"
}
