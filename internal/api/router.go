package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/club-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/club-booking-backend/internal/bookingrule"
	bookingruleHttp "github.com/nekogravitycat/club-booking-backend/internal/bookingrule/http"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	courtHttp "github.com/nekogravitycat/club-booking-backend/internal/court/http"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
	courttypeHttp "github.com/nekogravitycat/club-booking-backend/internal/courttype/http"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/selection"
	selectionHttp "github.com/nekogravitycat/club-booking-backend/internal/selection/http"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/club-booking-backend/internal/user/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction         bool
	ProdOrigins          string
	PaymentWebhookSecret string
	Logger               *slog.Logger

	UserService        user.Service
	CourtTypeService   courttype.Service
	CourtService       court.Service
	BookingRuleService bookingrule.Service
	BookingService     booking.Service
	SelectionService   selection.Service
	JWTManager         *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (request id, logging, CORS, auth) and registering routes for various modules.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := request.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// Global Middleware:
	// - RequestID: Correlates log lines and error responses.
	// - StructuredLogger: One slog line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestID(), StructuredLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = splitOrigins(cfg.ProdOrigins)
		if len(config.AllowOrigins) == 0 {
			return nil, errors.New("PROD_ORIGINS is required in production")
		}
	} else {
		config.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// Role gates load the caller's current role and store the session.
	memberMiddleware := auth.RequireRole(cfg.UserService, auth.RoleUser)
	operatorMiddleware := auth.RequireRole(cfg.UserService, auth.RoleOperator)
	supervisorMiddleware := auth.RequireRole(cfg.UserService, auth.RoleSupervisor)
	adminMiddleware := auth.RequireRole(cfg.UserService, auth.RoleAdmin)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	courtTypeHandler := courttypeHttp.NewHandler(cfg.CourtTypeService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	ruleHandler := bookingruleHttp.NewHandler(cfg.BookingRuleService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	webhookHandler := bookingHttp.NewWebhookHandler(cfg.BookingService, cfg.PaymentWebhookSecret, cfg.Logger)
	selectionHandler := selectionHttp.NewHandler(cfg.SelectionService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, memberMiddleware, adminMiddleware)
		courttypeHttp.RegisterRoutes(v1, courtTypeHandler, authMiddleware, memberMiddleware, supervisorMiddleware, adminMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware, memberMiddleware, adminMiddleware)
		bookingruleHttp.RegisterRoutes(v1, ruleHandler, authMiddleware, memberMiddleware, supervisorMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, webhookHandler, authMiddleware, memberMiddleware, operatorMiddleware)
		selectionHttp.RegisterRoutes(v1, selectionHandler, authMiddleware, memberMiddleware)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
