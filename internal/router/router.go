package router

import (
	"github.com/prajvalpatil/cashbook-prototype/internal/config"
	"github.com/prajvalpatil/cashbook-prototype/internal/handler"
	"github.com/prajvalpatil/cashbook-prototype/internal/middleware"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine and the full API surface.
func SetupRouter(cfg *config.Config, st *store.Store) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	// login does not require auth
	authHandler := handler.NewAuthHandler(st, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, st))

	protected.GET("/me", handler.GetMe)

	projectHandler := handler.NewProjectHandler(st)
	protected.GET("/projects", projectHandler.ListProjects)
	protected.POST("/projects", projectHandler.CreateProject)
	protected.PUT("/projects/:id", projectHandler.UpdateProject)
	protected.DELETE("/projects/:id", projectHandler.DeleteProject)

	entryHandler := handler.NewEntryHandler(st, cfg.App.MaxUploadBytes)
	protected.GET("/projects/:id/entries", entryHandler.ListEntries)
	protected.POST("/entries", entryHandler.CreateEntry)
	protected.PUT("/entries/:id", entryHandler.UpdateEntry)
	protected.DELETE("/entries/:id", entryHandler.DeleteEntry)
	protected.POST("/entries/:id/payments", entryHandler.RecordPayment)

	reportHandler := handler.NewReportHandler(st)
	protected.GET("/projects/:id/dashboard", reportHandler.Dashboard)
	protected.GET("/projects/:id/stocks", reportHandler.Stocks)
	protected.GET("/projects/:id/ledgers", reportHandler.Ledgers)
	protected.GET("/projects/:id/report", reportHandler.Report)
	protected.GET("/projects/:id/report/csv", reportHandler.ExportCSV)
	protected.GET("/projects/:id/report/xlsx", reportHandler.ExportXLSX)

	partyHandler := handler.NewPartyHandler(st)
	protected.GET("/parties", partyHandler.ListParties)
	protected.POST("/parties", partyHandler.CreateParty)
	protected.GET("/materials", partyHandler.ListMaterials)
	protected.POST("/materials", partyHandler.CreateMaterial)

	fileHandler := handler.NewFileHandler(st, cfg.App.MaxUploadBytes)
	protected.GET("/projects/:id/files", fileHandler.ListFiles)
	protected.POST("/files", fileHandler.UploadFile)
	protected.GET("/files/:id/download", fileHandler.DownloadFile)
	protected.DELETE("/files/:id", fileHandler.DeleteFile)

	backupHandler := handler.NewBackupHandler(st, cfg.Backup.Dir)
	protected.POST("/projects/:id/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	return r
}
