package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"account-manager/internal/api/handler"
	"account-manager/internal/api/middleware"
	"account-manager/internal/pkg/config"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/pkg/jwt"
	"account-manager/internal/repository"
	"account-manager/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB, cipher *crypto.Cipher) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	emsRepo := repository.NewEmsRepository(db)
	serverRepo := repository.NewServerRepository(db)

	// 初始化Service
	jwtManager := jwt.NewManager(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessTokenExpire)
	ldapService := service.NewLDAPService(&cfg.Auth.LDAP)
	authService := service.NewAuthService(&cfg.Auth, jwtManager, userRepo, ldapService)
	userService := service.NewUserService(userRepo)
	credentialService := service.NewCredentialService(credentialRepo, cipher)
	emsService := service.NewEmsService(emsRepo, cipher)
	serverService := service.NewServerService(serverRepo, cipher)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	credentialHandler := handler.NewCredentialHandler(credentialService)
	emsHandler := handler.NewEmsHandler(emsService)
	serverHandler := handler.NewServerHandler(serverService)

	// 公共接口(无需token)
	r.POST("/register", userHandler.Register)
	r.POST("/token", authHandler.Login)

	// 需要认证的路由
	authed := r.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		authed.GET("/users/me", authHandler.GetMe)

		// 个人凭据 (仅owner可达)
		credentialGroup := authed.Group("/credentials")
		{
			credentialGroup.POST("", credentialHandler.Create)
			credentialGroup.GET("", credentialHandler.List)
			credentialGroup.PUT("/:id", credentialHandler.Update)
			credentialGroup.DELETE("/:id", credentialHandler.Delete)
		}

		// EMS系统 (角色过滤与脱敏在service/policy层)
		emsGroup := authed.Group("/ems-systems")
		{
			emsGroup.GET("", emsHandler.List)
			emsGroup.POST("", emsHandler.Create)
		}

		// 服务器安全管理
		serverGroup := authed.Group("/server-security")
		{
			serverGroup.GET("", serverHandler.List)
			serverGroup.GET("/:id/passwords", serverHandler.GetPasswords)
			serverGroup.PUT("/:id/accounts", serverHandler.UpdateAccounts)
		}

		// 合规检查项 (路径与:id并列会与gin路由树冲突, 独立一级)
		checklistGroup := authed.Group("/checklist-items")
		{
			checklistGroup.POST("", serverHandler.CreateChecklistItem)
			checklistGroup.PUT("/:id", serverHandler.UpdateChecklistItem)
		}
	}

	return r
}
