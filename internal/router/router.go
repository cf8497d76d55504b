package router

import (
	"time"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/config"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/handler"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/middleware"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	baseRepo := repository.NewBaseRepository(db)
	equipmentRepo := repository.NewEquipmentTypeRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)
	audit := service.NewQueueAuditRecorder(dispatcher)
	alerts := service.NewQueueAlertNotifier(dispatcher)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, baseRepo, cfg, audit)
	catalogSvc := service.NewCatalogService(baseRepo, equipmentRepo, balanceRepo, audit)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, balanceRepo, baseRepo, equipmentRepo, audit)
	transferSvc := service.NewTransferService(transferRepo, balanceRepo, baseRepo, equipmentRepo, audit)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, balanceRepo, baseRepo, equipmentRepo, audit, alerts)
	inventorySvc := service.NewInventoryService(balanceRepo)
	dashboardSvc := service.NewDashboardService(balanceRepo, purchaseRepo, transferRepo, assignmentRepo, equipmentRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	basesH := handler.NewBasesHandler(catalogSvc)
	equipmentH := handler.NewEquipmentHandler(catalogSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	transfersH := handler.NewTransfersHandler(transferSvc)
	assignmentsH := handler.NewAssignmentsHandler(assignmentSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleCommander, model.RoleLogistics)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	api := r.Group("/api", jwtMW)
	{
		api.POST("/auth/register", adminOnly, authH.Register)

		// Reference data — all roles read, admin writes
		api.GET("/bases", anyRole, basesH.List)
		bases := api.Group("/bases", adminOnly)
		{
			bases.POST("", basesH.Create)
			bases.PUT("/:id", basesH.Update)
			bases.DELETE("/:id", basesH.Delete)
		}
		api.GET("/equipment-types", anyRole, equipmentH.List)
		api.POST("/equipment-types", adminOnly, equipmentH.Create)

		// Ledger operations — every role may record movements; the service
		// layer enforces base scoping per actor.
		api.POST("/purchases", anyRole, purchasesH.Create)
		api.GET("/purchases", anyRole, purchasesH.List)

		api.POST("/transfers", anyRole, transfersH.Create)
		api.GET("/transfers", anyRole, transfersH.List)
		api.GET("/transfers/:id", anyRole, transfersH.Get)
		api.PATCH("/transfers/:id/status", anyRole, transfersH.UpdateStatus)

		api.POST("/assignments", anyRole, assignmentsH.Create)
		api.GET("/assignments", anyRole, assignmentsH.List)

		// Reporting
		api.GET("/balances", anyRole, inventoryH.List)
		api.GET("/balances/:baseId/:equipmentTypeId", anyRole, inventoryH.Get)
		api.GET("/dashboard", anyRole, dashboardH.Summary)
	}

	return r
}
