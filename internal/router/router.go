package router

import (
	"time"

	"supergp/config"
	"supergp/internal/handler"
	"supergp/internal/middleware"
	"supergp/internal/repository"
	"supergp/internal/service"
	"supergp/internal/ws"
	"supergp/pkg/cloudinary"
	"supergp/pkg/gateway"
	"supergp/pkg/mailer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers and returns the engine.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	regRepo := repository.NewRegistrationRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	configRepo := repository.NewConfigRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	gw := gateway.NewMercadoPago(cfg.MercadoPago.BaseURL)
	mail := mailer.NewResend(cfg.Mail.ResendAPIKey, cfg.Mail.From)

	regSvc := service.NewRegistrationService(cfg, regRepo, couponRepo, categoryRepo, configRepo, gw, mail)
	authSvc := service.NewAuthService(cfg, adminRepo)

	hub := ws.NewCheckInHub()

	regHandler := handler.NewRegistrationHandler(regSvc, regRepo)
	couponHandler := handler.NewCouponHandler(regSvc, couponRepo)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	paymentHandler := handler.NewPaymentHandler(regSvc)
	checkinHandler := handler.NewCheckInHandler(regSvc, hub)
	adminHandler := handler.NewAdminHandler(authSvc)
	newsHandler := handler.NewNewsHandler(newsRepo)
	settingsHandler := handler.NewSettingsHandler(settingRepo)
	uploadHandler := handler.NewUploadHandler(cloud)
	configHandler := handler.NewConfigHandler(configRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(120, time.Minute)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		// public signup flow
		api.POST("/calcular-precio", regHandler.Calculate)
		api.POST("/inscripciones", regHandler.Create)
		api.GET("/inscripciones/:id", regHandler.Get)
		api.GET("/cupones/validar/:codigo", couponHandler.Validate)
		api.GET("/categorias", categoryHandler.Listing)
		api.GET("/noticias", newsHandler.List)
		api.GET("/noticias/:id", newsHandler.Get)
		api.GET("/configuracion/sitio", settingsHandler.List)
		api.GET("/pagos/public-key", configHandler.PublicKey)

		// payment flow
		api.POST("/pagos/preferencia/:id", paymentHandler.CreatePreference)
		api.GET("/pagos/verificar/:id", paymentHandler.Verify)
		api.POST("/webhooks/mercadopago", paymentHandler.Webhook)

		// admin auth
		api.POST("/admin/login", adminHandler.Login)
		api.POST("/admin/register", adminHandler.Register)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(&cfg.JWT), middleware.AdminRequired())
	{
		admin.GET("/inscripciones", regHandler.List)
		admin.PUT("/inscripciones/:id/completar", regHandler.OverrideStatus)
		admin.POST("/inscripciones/eliminar", regHandler.BulkDelete)
		admin.GET("/asistencia", regHandler.Attendance)

		admin.POST("/checkin/scan", checkinHandler.Scan)
		admin.POST("/checkin/:id/confirmar", checkinHandler.Confirm)

		admin.POST("/cupones", couponHandler.Create)
		admin.GET("/cupones", couponHandler.List)
		admin.PUT("/cupones/:id", couponHandler.Update)
		admin.DELETE("/cupones/:id", couponHandler.Delete)

		admin.PUT("/categorias/precios", categoryHandler.UpsertPrice)
		admin.DELETE("/categorias/precios/:nombre", categoryHandler.DeletePrice)
		admin.PUT("/categorias/grupos", categoryHandler.UpsertGroup)
		admin.DELETE("/categorias/grupos/:nombre", categoryHandler.DeleteGroup)

		admin.POST("/noticias", newsHandler.Create)
		admin.PUT("/noticias/:id", newsHandler.Update)
		admin.DELETE("/noticias/:id", newsHandler.Delete)

		admin.PUT("/configuracion/sitio", settingsHandler.Update)
		admin.POST("/uploads/imagen", uploadHandler.Image)

		admin.GET("/configuracion/plataforma", configHandler.GetPlatform)
		admin.PUT("/configuracion/plataforma", configHandler.UpdatePlatform)
		admin.GET("/configuracion/pagos", configHandler.GetEventPayment)
		admin.PUT("/configuracion/pagos", configHandler.UpdateEventPayment)
	}

	// live check-in feed for venue dashboards
	r.GET("/ws/checkin", ws.UpgradeCheckInWS(&cfg.JWT, hub))

	return r
}
