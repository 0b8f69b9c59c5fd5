package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wastage-backend/internal/ai"
	"wastage-backend/internal/apperr"
	"wastage-backend/internal/audit"
	"wastage-backend/internal/auth"
	"wastage-backend/internal/config"
	"wastage-backend/internal/dashboard"
	"wastage-backend/internal/database"
	"wastage-backend/internal/export"
	"wastage-backend/internal/logger"
	"wastage-backend/internal/models"
	"wastage-backend/internal/wastage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		logrus.Fatalf("[FATAL] logger başlatılamadı: %v", err)
	}
	appLog := logger.App()

	ctx := context.Background()
	backend, err := database.Open(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatalf("[FATAL] %v", err)
	}

	// audit: postgres varsa tabloya, yoksa bellekte son olaylar
	var sink audit.Sink = audit.NewMemorySink(1000)
	if backend.DB != nil {
		sink = audit.NewGormSink(backend.DB)
	}
	recorder := audit.NewRecorder(sink, logger.Audit())

	loc := cfg.Location()
	svc := wastage.NewService(backend.Store, recorder, logger.Error())
	flows := ai.NewFlows(newGenerator(cfg, appLog), cfg.AITimeout, logger.Error())

	dash := dashboard.Deps{
		Records:  svc,
		Profiles: backend.Store,
		Audit:    recorder,
		Clock:    time.Now,
		Location: loc,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler(logger.Error()),
	})
	app.Use(recover.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(corsOrigins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: apperr.DegradedHeader + ", Content-Disposition",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"store":    cfg.StoreDriver,
			"degraded": svc.Degraded(),
		})
	})

	api := app.Group("/api")

	// Public auth (sadece yerleşik JWT modunda)
	var authMiddleware fiber.Handler
	switch cfg.AuthProvider {
	case "firebase":
		authClient, err := backend.Firebase.Auth(ctx)
		if err != nil {
			appLog.Fatalf("[FATAL] firebase auth client oluşturulamadı: %v", err)
		}
		authMiddleware = auth.FirebaseMiddleware(authClient, backend.Store, appLog)
	default:
		api.Post("/auth/register", auth.RegisterHandler(backend.Store))
		api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(backend.Store))
		api.Post("/auth/login", auth.LoginHandler(cfg.JWTSecret, backend.Store))
		authMiddleware = auth.JWTMiddleware(cfg.JWTSecret)
	}

	// Protected
	protected := api.Group("")
	protected.Use(authMiddleware)

	protected.Get("/auth/me", auth.MeHandler(backend.Store))

	// Zayiat kayıtları
	protected.Get("/wastage", wastage.ListHandler(svc))
	protected.Post("/wastage", wastage.CreateHandler(svc))
	protected.Get("/wastage/export.csv", export.CSVHandler(svc, loc))
	protected.Get("/wastage/export.xlsx", export.XLSXHandler(svc, loc))
	protected.Get("/wastage/:id", wastage.GetHandler(svc))
	protected.Delete("/wastage/:id", wastage.DeleteHandler(svc))
	protected.Get("/donations", wastage.DonationsHandler(svc))

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler(dash))
	protected.Get("/dashboard/trend", dashboard.TrendHandler(dash))
	protected.Get("/dashboard/reasons", dashboard.ReasonsHandler(dash))
	protected.Get("/dashboard/goal", dashboard.GoalHandler(dash))
	protected.Put("/dashboard/goal", dashboard.UpdateGoalHandler(dash))
	protected.Get("/report", dashboard.ReportHandler(dash))

	// AI
	protected.Post("/ai/weekly-summary", ai.WeeklySummaryHandler(flows, svc, time.Now))
	protected.Post("/ai/insights", ai.InsightsHandler(flows, svc, time.Now))
	protected.Post("/ai/recipes", ai.RecipesHandler(flows))

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(recorder))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		appLog.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	appLog.Infof("listening on :%s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		appLog.Errorf("server stopped: %v", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := backend.Store.Close(closeCtx); err != nil {
		appLog.WithError(err).Warn("record store close failed")
	}
}

func newGenerator(cfg *config.Config, log *logrus.Logger) ai.Generator {
	switch cfg.AIProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Warn("[WARN] GEMINI_API_KEY tanımlanmamış, AI akışları devre dışı.")
			return ai.Unavailable{}
		}
		return ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	case "openai":
		gen, err := ai.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.WithError(err).Warn("[WARN] OpenAI generator oluşturulamadı, AI akışları devre dışı.")
			return ai.Unavailable{}
		}
		return gen
	}
	return ai.Unavailable{}
}
