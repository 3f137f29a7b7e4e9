package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/club-booking-backend/internal/api"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/bookingrule"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/mq"
	"github.com/nekogravitycat/club-booking-backend/internal/reaper"
	"github.com/nekogravitycat/club-booking-backend/internal/selection"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *slog.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	Location         *time.Location
	MinLead          time.Duration
	DefaultOpenTime  string
	DefaultCloseTime string
	HoldTTL          time.Duration
	SelectionIdleTTL time.Duration

	// InProcessReaper runs the hold reaper inside the API process.
	InProcessReaper bool
	ReaperInterval  time.Duration

	// Publisher receives booking events. Nil means events are dropped.
	Publisher            mq.Publisher
	PaymentWebhookSecret string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Reaper     *reaper.Reaper // nil unless the reaper runs in-process
	Selections *selection.Store

	logger           *slog.Logger
	selectionIdleTTL time.Duration
}

// BookingPolicy builds the club-wide booking policy from cfg.
func BookingPolicy(cfg Config) booking.Policy {
	slot := booking.DefaultSlotPolicy(cfg.Location).WithHours(cfg.DefaultOpenTime, cfg.DefaultCloseTime)
	slot.MinLead = cfg.MinLead
	return booking.Policy{Slot: slot, HoldTTL: cfg.HoldTTL}
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var publisher mq.Publisher = mq.NopPublisher{}
	if cfg.Publisher != nil {
		publisher = cfg.Publisher
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, logger)

	// Court Type Module
	courtTypeRepo := courttype.NewPgxRepository(cfg.DBPool)
	courtTypeService := courttype.NewService(courtTypeRepo)

	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo, courtTypeService)

	// Booking Rule Module
	ruleRepo := bookingrule.NewPgxRepository(cfg.DBPool)
	ruleService := bookingrule.NewService(ruleRepo, logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	var holdReaper *reaper.Reaper
	var notifier booking.ExpiryNotifier
	if cfg.InProcessReaper {
		holdReaper = reaper.New(bookingRepo, publisher, cfg.ReaperInterval, logger)
		notifier = holdReaper
	}

	bookingQuery := booking.NewQuery(bookingRepo, cfg.Location, notifier, logger)
	bookingService := booking.NewService(
		bookingRepo, bookingQuery, courtService, courtTypeService, ruleService,
		publisher, BookingPolicy(cfg), logger,
	)

	// Selection Module
	selections := selection.NewStore(cfg.SelectionIdleTTL)
	selectionService := selection.NewService(selections, bookingService, courtTypeService, courtService, cfg.Location, logger)

	// Router
	router, err := api.NewRouter(api.Config{
		IsProduction:         cfg.IsProduction,
		ProdOrigins:          cfg.ProdOrigins,
		PaymentWebhookSecret: cfg.PaymentWebhookSecret,
		Logger:               logger,
		UserService:          userService,
		CourtTypeService:     courtTypeService,
		CourtService:         courtService,
		BookingRuleService:   ruleService,
		BookingService:       bookingService,
		SelectionService:     selectionService,
		JWTManager:           jwtManager,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Router:           router,
		JWTManager:       jwtManager,
		Reaper:           holdReaper,
		Selections:       selections,
		logger:           logger,
		selectionIdleTTL: cfg.SelectionIdleTTL,
	}, nil
}

// Start runs the background loops until ctx is done.
func (c *Container) Start(ctx context.Context) {
	if c.Reaper != nil {
		go c.Reaper.Run(ctx)
	}
	if c.selectionIdleTTL > 0 {
		go c.Selections.Run(ctx, evictionInterval(c.selectionIdleTTL), c.logger)
	}
}

// minEvictionInterval bounds how often idle selections are swept.
const minEvictionInterval = time.Second

func evictionInterval(idleTTL time.Duration) time.Duration {
	return max(idleTTL/2, minEvictionInterval)
}
