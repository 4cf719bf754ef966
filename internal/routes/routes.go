package routes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stellar/go/clients/horizonclient"

	"github.com/arenapass/arenapass/internal/auth"
	"github.com/arenapass/arenapass/internal/config"
	"github.com/arenapass/arenapass/internal/jersey"
	"github.com/arenapass/arenapass/internal/middleware"
	"github.com/arenapass/arenapass/internal/mpesa"
	"github.com/arenapass/arenapass/internal/notification"
	"github.com/arenapass/arenapass/internal/player"
	"github.com/arenapass/arenapass/internal/secrets"
	"github.com/arenapass/arenapass/internal/stellar"
	"github.com/arenapass/arenapass/internal/team"
	"github.com/arenapass/arenapass/internal/ticket"
	"github.com/arenapass/arenapass/internal/user"
)

// Deps aggregates shared dependencies required to wire routes. Provisioner and
// Mpesa may be pre-set for tests; Setup builds the real clients otherwise.
type Deps struct {
	Cfg         config.Config
	DB          *pgxpool.Pool
	Cache       *redis.Client
	Logger      *slog.Logger
	Provisioner auth.Provisioner
	Mpesa       mpesa.Provider
}

const idempotencyTTL = 24 * time.Hour

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories
	var (
		userRepo   user.Repository
		teamRepo   team.Repository
		playerRepo player.Repository
		jerseyRepo jersey.Repository
		ticketRepo ticket.Repository
	)
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		teamRepo = team.NewPostgresRepository(d.DB)
		playerRepo = player.NewPostgresRepository(d.DB)
		jerseyRepo = jersey.NewPostgresRepository(d.DB)
		ticketRepo = ticket.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		teamRepo = team.NewMemoryRepository()
		playerRepo = player.NewMemoryRepository()
		jerseyRepo = jersey.NewMemoryRepository()
		ticketRepo = ticket.NewMemoryRepository()
	}

	var secretStore secrets.Store
	if d.Cache != nil {
		secretStore = secrets.NewRedisStore(d.Cache)
	} else {
		secretStore = secrets.NewMemoryStore()
	}

	provisioner := d.Provisioner
	if provisioner == nil {
		if d.Cfg.Stellar.SourceSecret == "" {
			provisioner = stellar.OfflineProvisioner{}
		} else {
			horizon := &horizonclient.Client{HorizonURL: d.Cfg.Stellar.HorizonURL}
			funder := stellar.NewFriendbotClient(d.Cfg.Stellar.FriendbotURL)
			p, err := stellar.NewProvisioner(d.Cfg.Stellar, horizon, funder, d.Logger)
			if err != nil {
				return err
			}
			provisioner = p
		}
	}

	darajaProvider := d.Mpesa
	if darajaProvider == nil {
		darajaProvider = mpesa.NewDarajaClient(d.Cfg.Mpesa.BaseURL, d.Cfg.Mpesa.ConsumerKey, d.Cfg.Mpesa.ConsumerSecret)
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	authSvc := auth.NewService(userRepo, secretStore, provisioner, []byte(d.Cfg.JWTSecret), d.Cfg.TokenTTL, d.Logger)
	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userRepo)
	teamHandler := team.NewHandler(teamRepo)
	playerHandler := player.NewHandler(playerRepo)
	jerseyHandler := jersey.NewHandler(jerseyRepo)
	ticketHandler := ticket.NewHandler(ticketRepo, teamRepo)
	mpesaSvc := mpesa.NewService(teamRepo, darajaProvider, d.Cfg.Mpesa, nil, d.Logger)
	mpesaHandler := mpesa.NewHandler(mpesaSvc, notifier, d.Logger)

	api := app.Group("/api")

	// Guards
	tokenGuard := middleware.TokenGuard([]byte(d.Cfg.JWTSecret))
	apiKeyGuard := middleware.APIKeyGuard(d.Cfg.APIKey)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)

	RegisterAuthRoutes(api, authHandler, rateLimiter)
	RegisterUserRoutes(api, userHandler, apiKeyGuard)
	RegisterTeamRoutes(api, teamHandler, tokenGuard)
	RegisterPlayerRoutes(api, playerHandler, tokenGuard)
	RegisterJerseyRoutes(api, jerseyHandler, tokenGuard)
	RegisterTicketRoutes(api, ticketHandler, tokenGuard)
	RegisterMpesaRoutes(api, mpesaHandler, tokenGuard, d)

	return nil
}
