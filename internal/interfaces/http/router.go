package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/report"
	"github.com/itcguard/itc-api/internal/application/usecase"
	"github.com/itcguard/itc-api/internal/domain/repository"
	pkgjwt "github.com/itcguard/itc-api/pkg/jwt"
	"github.com/itcguard/itc-api/pkg/logger"
)

// RouterDeps are the dependencies of the router.
type RouterDeps struct {
	ServiceName  string
	Store        repository.TaxRecordRepository
	ComplianceUC *usecase.ComplianceUseCase
	ScanUC       *usecase.ScanUseCase
	AssistantUC  *usecase.AssistantUseCase
	GSTR3BUC     *report.GSTR3BUseCase
	// JWTSecret empty disables authentication.
	JWTSecret string
	JWTIssuer string
	Log       *logger.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("http")

	app.Get("/health", NewHealthHandler(deps.ServiceName, deps.Store).Health)

	api := app.Group("/api")
	read, write := pass, pass
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
		read = RequireRole(pkgjwt.RoleOwner, pkgjwt.RoleAccountant, pkgjwt.RoleViewer)
		write = RequireRole(pkgjwt.RoleOwner, pkgjwt.RoleAccountant)
	} else {
		log.Warn().Msg("JWT_SECRET not set; API is unauthenticated")
	}

	// ── Compliance ──
	compliance := api.Group("/compliance")
	ch := NewComplianceHandler(deps.ComplianceUC, log)
	compliance.Get("/", read, ch.List)
	compliance.Post("/", write, ch.Create)
	compliance.Get("/:id", read, ch.GetByID)
	compliance.Patch("/:id", write, ch.Update)
	compliance.Post("/:id/verify", write, ch.Verify)
	compliance.Post("/:id/settle", write, ch.Settle)
	compliance.Post("/:id/block", write, ch.Block)

	// ── Scan ──
	api.Post("/scan", write, NewScanHandler(deps.ScanUC, log).Scan)

	// ── Reports ──
	api.Get("/reports/gstr3b", read, NewReportHandler(deps.GSTR3BUC, log).GSTR3B)

	// ── Assistant ──
	api.Post("/chat", read, NewAssistantHandler(deps.AssistantUC, log).Chat)
}

func pass(c *fiber.Ctx) error { return c.Next() }
