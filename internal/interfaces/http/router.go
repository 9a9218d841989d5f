package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/report"
	"github.com/jhoicas/crm-api/internal/application/social"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ClientUC     *usecase.ClientUseCase
	MessageUC    *usecase.MessageUseCase
	PipelineUC   *pipeline.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ReportUC     *report.UseCase
	SocialUC     *social.UseCase
	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionTTL, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UserUC.GetByID))
	protected.Get("/auth/me", authHandler.Me)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	// Clientes
	clients := protected.Group("/clients", RequireCapability(entity.CapManageClients))
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Kanban
	kanban := protected.Group("/kanban", RequireCapability(entity.CapManagePipeline))
	kanbanHandler := NewKanbanHandler(deps.PipelineUC)
	kanban.Get("/", kanbanHandler.Board)
	kanban.Post("/cards", kanbanHandler.Create)
	kanban.Get("/cards/:id", kanbanHandler.GetByID)
	kanban.Put("/cards/:id", kanbanHandler.Update)
	kanban.Delete("/cards/:id", kanbanHandler.Delete)
	kanban.Post("/cards/:id/move", kanbanHandler.Move)

	// Inbox
	messages := protected.Group("/messages", RequireCapability(entity.CapUseInbox))
	messageHandler := NewMessageHandler(deps.MessageUC, deps.SocialUC)
	messages.Get("/", messageHandler.List)
	messages.Get("/unread", messageHandler.Unread)
	messages.Post("/", messageHandler.Send)
	messages.Post("/sync", messageHandler.Sync)
	messages.Post("/:id/read", messageHandler.MarkRead)

	// Usuarios (admin)
	users := protected.Group("/users", RequireCapability(entity.CapManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)

	// Reportes
	reports := protected.Group("/reports", RequireCapability(entity.CapExportReports))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/", dashboardHandler.ReportsSummary)
	reports.Get("/clients/export", reportHandler.ExportClients)
	reports.Get("/sales/export", reportHandler.ExportSales)
	reports.Get("/social/export", reportHandler.ExportSocial)

	// Redes sociales
	socialGroup := protected.Group("/social", RequireCapability(entity.CapUseSocial))
	socialHandler := NewSocialHandler(deps.SocialUC)
	socialGroup.Get("/accounts", socialHandler.Accounts)
	socialGroup.Get("/insights", socialHandler.Insights)
	socialGroup.Get("/media/:account", socialHandler.Media)
	socialGroup.Post("/posts", socialHandler.CreatePost)
}
