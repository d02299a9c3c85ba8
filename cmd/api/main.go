package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tatibku/backend/internal/auth"
	"github.com/tatibku/backend/internal/config"
	"github.com/tatibku/backend/internal/database"
	"github.com/tatibku/backend/internal/handler"
	"github.com/tatibku/backend/internal/middleware"
	"github.com/tatibku/backend/internal/repository"
	"github.com/tatibku/backend/internal/storage"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize photo storage
	photoStore, err := storage.NewPhotoStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthRepository(db)
	masterRepo := repository.NewMasterRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, authRepo, jwtService)
	userHandler := handler.NewUserHandler(userRepo)
	masterHandler := handler.NewMasterHandler(masterRepo)
	studentHandler := handler.NewStudentHandler(studentRepo, masterRepo)
	recordHandler := handler.NewRecordHandler(recordRepo, studentRepo, masterRepo)
	importHandler := handler.NewImportHandler(studentRepo, masterRepo)
	statsHandler := handler.NewStatsHandler(studentRepo, masterRepo, recordRepo)
	parentHandler := handler.NewParentHandler(studentRepo, recordRepo)
	exportHandler := handler.NewExportHandler(studentRepo, masterRepo, recordRepo)
	uploadHandler := handler.NewUploadHandler(photoStore, studentRepo)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, db)

	// Periodic cleanup of expired refresh tokens and blacklist entries
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := authRepo.DeleteExpiredTokens(); err != nil {
				log.Printf("token cleanup failed: %v", err)
			} else if n > 0 {
				log.Printf("token cleanup: %d expired entries removed", n)
			}
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INTERNAL_ERROR",
					"message": err.Error(),
				},
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.Origins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))

	// API v1 routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authRoutes.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)
	authRoutes.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Parent portal (public, registration code + PIN)
	api.Post("/parent/check", parentHandler.Check)

	// Student routes
	siswaRoutes := api.Group("/siswa", authMiddleware.Required())
	siswaRoutes.Get("/", studentHandler.List)
	siswaRoutes.Post("/", studentHandler.Create)
	siswaRoutes.Get("/:id", studentHandler.Get)
	siswaRoutes.Patch("/:id", studentHandler.Update)
	siswaRoutes.Delete("/:id", studentHandler.Delete)
	siswaRoutes.Post("/:id/reset-credential", studentHandler.ResetCredential)

	// Bulk roster import
	siswaRoutes.Post("/import", importHandler.ImportSiswa)
	siswaRoutes.Get("/import/template", importHandler.DownloadTemplate)

	// Behavior record routes
	catatanRoutes := api.Group("/catatan", authMiddleware.Required())
	catatanRoutes.Get("/", recordHandler.List)
	catatanRoutes.Post("/", recordHandler.Create)
	catatanRoutes.Delete("/:id", recordHandler.Delete)

	// Master data (read access for all staff)
	api.Get("/tahun-ajaran", authMiddleware.Required(), masterHandler.ListTahunAjaran)
	api.Get("/guru", authMiddleware.Required(), masterHandler.ListGuru)
	api.Get("/kelas", authMiddleware.Required(), masterHandler.ListKelas)
	api.Get("/jenis-poin", authMiddleware.Required(), masterHandler.ListJenisPoin)

	// Dashboard
	api.Get("/dashboard/stats", authMiddleware.Required(), statsHandler.GetDashboardStats)

	// Exports
	exportRoutes := api.Group("/exports", authMiddleware.Required())
	exportRoutes.Get("/siswa", exportHandler.ExportRoster)
	exportRoutes.Get("/kelas/:id/rekap", exportHandler.ExportRecapPDF)

	// Upload routes
	uploadRoutes := api.Group("/uploads", authMiddleware.Required())
	uploadRoutes.Post("/presign", uploadHandler.Presign)
	uploadRoutes.Post("/confirm", uploadHandler.Confirm)
	uploadRoutes.Delete("/siswa/:id", uploadHandler.Delete)

	// Admin routes
	adminRoutes := api.Group("/admin", authMiddleware.Required(), authMiddleware.AdminOnly())

	// Admin - Tahun Ajaran
	adminRoutes.Post("/tahun-ajaran", masterHandler.CreateTahunAjaran)
	adminRoutes.Patch("/tahun-ajaran/:id", masterHandler.UpdateTahunAjaran)
	adminRoutes.Delete("/tahun-ajaran/:id", masterHandler.DeleteTahunAjaran)

	// Admin - Guru
	adminRoutes.Post("/guru", masterHandler.CreateGuru)
	adminRoutes.Patch("/guru/:id", masterHandler.UpdateGuru)
	adminRoutes.Delete("/guru/:id", masterHandler.DeleteGuru)

	// Admin - Kelas
	adminRoutes.Post("/kelas", masterHandler.CreateKelas)
	adminRoutes.Patch("/kelas/:id", masterHandler.UpdateKelas)
	adminRoutes.Delete("/kelas/:id", masterHandler.DeleteKelas)

	// Admin - Jenis Poin
	adminRoutes.Post("/jenis-poin", masterHandler.CreateJenisPoin)
	adminRoutes.Patch("/jenis-poin/:id", masterHandler.UpdateJenisPoin)
	adminRoutes.Delete("/jenis-poin/:id", masterHandler.DeleteJenisPoin)

	// Admin - Staff accounts
	adminRoutes.Get("/users", userHandler.List)
	adminRoutes.Post("/users", userHandler.Create)
	adminRoutes.Patch("/users/:id", userHandler.Update)
	adminRoutes.Patch("/users/:id/password", userHandler.ResetPassword)
	adminRoutes.Delete("/users/:id", userHandler.Delete)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
