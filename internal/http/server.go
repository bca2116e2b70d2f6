package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"scope-service/internal/auth"
	"scope-service/internal/config"
	"scope-service/internal/http/handler"
	"scope-service/internal/http/middleware"
	"scope-service/internal/service"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config          *config.Config
	AuthMiddleware  *auth.Middleware
	WebhookVerifier *auth.WebhookVerifier
	Projects        *service.ProjectService
	ScopeItems      *service.ScopeItemService
	Requests        *service.RequestService
	ChangeOrders    *service.ChangeOrderService
	ShareLinks      *service.ShareLinkService
	Dashboard       *service.DashboardService
	Wallets         *service.WalletService
	PaymentLinks    *service.PaymentLinkService
	Users           *service.UserService
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	// Request ID middleware first so all logs carry the request id.
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	rateLimiter := middleware.NewRateLimiter(deps.Config.Server.RateLimit, deps.Config.Server.RateBurst)
	e.Use(rateLimiter.Middleware())

	projectHandler := handler.NewProjectHandler(deps.Projects)
	scopeItemHandler := handler.NewScopeItemHandler(deps.ScopeItems)
	requestHandler := handler.NewRequestHandler(deps.Requests)
	changeOrderHandler := handler.NewChangeOrderHandler(deps.ChangeOrders)
	shareLinkHandler := handler.NewShareLinkHandler(deps.ShareLinks)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	walletHandler := handler.NewWalletHandler(deps.Wallets)
	paymentLinkHandler := handler.NewPaymentLinkHandler(deps.PaymentLinks)
	webhookHandler := handler.NewWebhookHandler(deps.WebhookVerifier, deps.Users)

	// Public surface: health, shared project views, payment pages and the
	// identity webhook. The share token and payment slug are the
	// capabilities; the webhook carries its own HMAC signature.
	e.GET("/health", healthCheck)
	e.GET("/p/:token", shareLinkHandler.Resolve)
	e.GET("/pay/:slug", paymentLinkHandler.GetBySlug)
	e.POST("/webhooks/identity", webhookHandler.HandleIdentityEvent)

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireJWT())

	api.POST("/projects", projectHandler.Create)
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", projectHandler.Get)
	api.PUT("/projects/:id", projectHandler.Update)
	api.DELETE("/projects/:id", projectHandler.Delete)
	api.PUT("/projects/:id/client", projectHandler.UpdateClient)

	api.POST("/projects/:project_id/scope-items", scopeItemHandler.Create)
	api.GET("/projects/:project_id/scope-items", scopeItemHandler.List)
	api.PUT("/projects/:project_id/scope-items/:id", scopeItemHandler.Update)
	api.DELETE("/projects/:project_id/scope-items/:id", scopeItemHandler.Delete)
	api.GET("/projects/:project_id/scope-items/export", scopeItemHandler.Export)

	api.POST("/projects/:project_id/requests", requestHandler.Create)
	api.GET("/projects/:project_id/requests", requestHandler.List)
	api.PUT("/requests/:id", requestHandler.Update)
	api.DELETE("/requests/:id", requestHandler.Delete)

	api.POST("/projects/:project_id/change-orders", changeOrderHandler.Create)
	api.GET("/projects/:project_id/change-orders", changeOrderHandler.List)
	api.GET("/projects/:project_id/change-orders/:id", changeOrderHandler.Get)
	api.PUT("/projects/:project_id/change-orders/:id", changeOrderHandler.Update)
	api.DELETE("/projects/:project_id/change-orders/:id", changeOrderHandler.Delete)
	api.GET("/projects/:project_id/change-orders/:id/export", changeOrderHandler.Export)

	api.POST("/projects/:project_id/share-links", shareLinkHandler.Create)
	api.GET("/projects/:project_id/share-links", shareLinkHandler.List)
	api.DELETE("/share-links/:id", shareLinkHandler.Revoke)

	api.GET("/dashboard", dashboardHandler.Overview)

	api.GET("/wallets", walletHandler.List)
	api.POST("/wallets", walletHandler.Create)
	api.PUT("/wallets/:id/primary", walletHandler.SetPrimary)
	api.DELETE("/wallets/:id", walletHandler.Delete)

	api.POST("/payment-links", paymentLinkHandler.Create)
	api.GET("/payment-links", paymentLinkHandler.List)
	api.DELETE("/payment-links/:id", paymentLinkHandler.Delete)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
