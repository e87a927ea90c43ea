package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hospital-meals/internal/repositories"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/config"
	"hospital-meals/pkg/eventbus"
	"hospital-meals/pkg/middleware"
	"hospital-meals/pkg/service"
	appwebsocket "hospital-meals/pkg/websocket"
)

type Loggers struct {
	Main     *zap.Logger
	Auth     *zap.Logger
	Order    *zap.Logger
	Tiffin   *zap.Logger
	Realtime *zap.Logger
}

// Services - всё, что нужно маршрутам. В тестах сюда подставляются фейки.
type Services struct {
	Auth      services.AuthServiceInterface
	Order     services.OrderServiceInterface
	Tiffin    services.TiffinServiceInterface
	Menu      services.MenuServiceInterface
	Patient   services.PatientServiceInterface
	Report    services.ReportServiceInterface
	Dashboard services.DashboardServiceInterface
	Audit     services.AuditServiceInterface
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	bus *eventbus.Bus,
	hub *appwebsocket.Hub,
	jwtSvc service.JWTService,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn, loggers.Auth)
	orderRepo := repositories.NewOrderRepository(dbConn, loggers.Order)
	tiffinRepo := repositories.NewTiffinRepository(dbConn, loggers.Tiffin)
	patientRepo := repositories.NewPatientRepository(dbConn, loggers.Main)
	menuRepo := repositories.NewMenuRepository(dbConn, loggers.Main)
	auditRepo := repositories.NewAuditRepository(dbConn, loggers.Main)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	orderService := services.NewOrderService(orderRepo, auditRepo, bus, loggers.Order)
	tiffinService := services.NewTiffinService(tiffinRepo, auditRepo, loggers.Tiffin)
	svc := Services{
		Auth:      services.NewAuthService(userRepo, cacheRepo, jwtSvc, auditRepo, cfg.Auth, loggers.Auth),
		Order:     orderService,
		Tiffin:    tiffinService,
		Menu:      services.NewMenuService(menuRepo, txManager, cacheRepo, auditRepo, bus, cfg.Menu.CacheTTL, loggers.Main),
		Patient:   services.NewPatientService(patientRepo, auditRepo, loggers.Main),
		Report:    services.NewReportService(reportRepo, cfg.Report, loggers.Main),
		Dashboard: services.NewDashboardService(orderService, tiffinService, loggers.Main),
		Audit:     services.NewAuditService(auditRepo, loggers.Main),
	}

	// --- 3. РОУТЕРЫ ---
	registerRoutes(e, svc, jwtSvc, hub, loggers)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}

func registerRoutes(e *echo.Echo, svc Services, jwtSvc service.JWTService, hub *appwebsocket.Hub, loggers *Loggers) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)

	runAuthRouter(api, svc.Auth, loggers.Auth, authMW)
	runRealtimeRouter(api, hub, jwtSvc, loggers.Realtime)

	secureGroup := api.Group("", authMW.Auth)
	runOrderRouter(secureGroup, svc.Order, svc.Dashboard, loggers.Order, authMW)
	runTiffinRouter(secureGroup, svc.Tiffin, loggers.Tiffin, authMW)
	runMenuRouter(secureGroup, svc.Menu, loggers.Main, authMW)
	runPatientRouter(secureGroup, svc.Patient, loggers.Main, authMW)
	runAdminRouter(secureGroup, svc.Report, svc.Audit, loggers.Main, authMW)
}
