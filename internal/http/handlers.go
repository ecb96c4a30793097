package httpapi

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"skladpro/internal/domain"
	"skladpro/internal/logging"
	"skladpro/internal/metrics"
	"skladpro/internal/repository"
	"skladpro/internal/service"
)

// Services зависимости HTTP-слоя
type Services struct {
	Sessions  *service.SessionService
	Products  *service.ProductService
	Requests  *service.RequestService
	Cart      *service.CartService
	Orders    *service.OrderService
	Directory *service.DirectoryService
	Dashboard *service.DashboardService
	Reports   *service.ReportService
}

type Server struct {
	engine *gin.Engine
	svc    Services
}

func NewServer(svc Services, corsOrigins []string) *Server {
	r := gin.New()
	r.Use(logging.RequestID(), logging.JSONLogger(), gin.Recovery(), corsMiddleware(corsOrigins))
	s := &Server{engine: r, svc: svc}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", logging.RequestIDHeader},
		ExposeHeaders: []string{logging.RequestIDHeader, "Content-Disposition"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := s.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
	}

	private := v1.Group("")
	private.Use(s.sessionRequired())
	{
		private.POST("/auth/logout", s.logout)
		private.GET("/auth/me", s.me)
		private.GET("/navigation", s.navigation)
		private.GET("/dashboard", s.dashboard)

		products := private.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.POST("", requireRole(domain.RoleSupplier), s.submitProduct)
		products.POST(":id/approve", requireRole(domain.RoleOperator), s.approveProduct)
		products.POST(":id/reject", requireRole(domain.RoleOperator), s.rejectProduct)

		requests := private.Group("/requests", requireRole(domain.RoleOperator))
		requests.GET("", s.listRequests)
		requests.POST("", s.createRequest)
		requests.GET(":id", s.getRequest)
		requests.PUT(":id/status", s.updateRequestStatus)

		cart := private.Group("/cart", requireRole(domain.RoleClient))
		cart.GET("", s.getCart)
		cart.POST("/items", s.addCartItem)
		cart.PUT("/items/:product_id", s.setCartItem)
		cart.DELETE("/items/:product_id", s.removeCartItem)

		orders := private.Group("/orders")
		orders.GET("", s.listOrders)
		orders.POST("", requireRole(domain.RoleClient), s.createOrder)
		orders.GET(":id", s.getOrder)
		orders.PUT(":id/status", requireRole(domain.RoleOperator), s.updateOrderStatus)

		private.GET("/contractors", s.listContractors)
		private.POST("/contractors", s.createContractor)
		private.GET("/zones", requireRole(domain.RoleOperator), s.listZones)
		private.GET("/reports/:kind", requireRole(domain.RoleOperator), s.getReport)
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func respondError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
