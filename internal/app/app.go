package app

import (
	"nexus-backend/internal/auth"
	"nexus-backend/internal/config"
	"nexus-backend/internal/constants"
	"nexus-backend/internal/database"
	"nexus-backend/internal/emails"
	"nexus-backend/internal/health"
	"nexus-backend/internal/invitations"
	"nexus-backend/internal/middleware"
	"nexus-backend/internal/org"
	"nexus-backend/internal/tokens"
	"nexus-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, and returns the DB/Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigin: cfg.FrontendURL}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	healthHandlers := &health.Handlers{DB: db}
	app.Get("/health", healthHandlers.Health)

	if db == nil {
		return app, db, rdb, nil
	}

	tokenService := tokens.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var sender emails.Sender
	if cfg.EmailProvider == "brevo" {
		sender = &emails.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom}
	} else {
		sender = emails.ConsoleSender{}
	}

	userService := &user.Service{DB: db, Rdb: rdb}
	orgService := &org.Service{DB: db}
	invitationService := &invitations.Service{
		DB:          db,
		Sender:      sender,
		FrontendURL: cfg.FrontendURL,
		StrictEmail: cfg.InviteEmailStrict,
	}
	authService := &auth.Service{
		Tokens:      tokenService,
		Users:       userService,
		Orgs:        orgService,
		Invitations: invitationService,
		Provider: &auth.GoogleProvider{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURI:  cfg.GoogleRedirectURI,
		},
		Rdb: rdb,
	}

	requireAuth := middleware.RequireAuth(middleware.AuthConfig{Tokens: tokenService, DB: db, Rdb: rdb})

	// Auth (no auth middleware)
	authHandlers := &auth.Handlers{
		Service:     authService,
		FrontendURL: cfg.FrontendURL,
		RefreshTTL:  cfg.RefreshTokenTTL,
		Secure:      cfg.IsProduction(),
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Get("/google", authHandlers.GoogleAuth)
	authGroup.Get("/callback", authHandlers.GoogleCallback)
	authGroup.Post("/refresh", authHandlers.Refresh)
	authGroup.Post("/logout", authHandlers.Logout)

	// Invitations: public preview + protected routes
	invHandlers := &invitations.Handlers{Service: invitationService}
	app.Get("/api/v1/invitations/preview/:token", invHandlers.Preview)
	invGroup := app.Group("/api/v1/invitations", requireAuth)
	invGroup.Post("/", middleware.AuthorizePermission(constants.InvitationsCreate), invHandlers.CreateInvitation)
	invGroup.Get("/", middleware.AuthorizePermission(constants.InvitationsRead), invHandlers.ListPending)

	// Users
	userHandlers := &user.Handlers{Service: userService, Orgs: orgService}
	userGroup := app.Group("/api/v1/users", requireAuth)
	userGroup.Get("/", middleware.AuthorizePermission(constants.UsersRead), userHandlers.ListUsers)
	userGroup.Get("/me", userHandlers.Me)
	userGroup.Patch("/:user_id/role", middleware.AuthorizePermission(constants.UsersUpdateRole), userHandlers.UpdateRole)
	userGroup.Delete("/:user_id", middleware.AuthorizePermission(constants.UsersDelete), userHandlers.DeleteUser)

	// Organizations
	orgHandlers := &org.Handlers{Service: orgService}
	orgGroup := app.Group("/api/v1/organizations", requireAuth)
	orgGroup.Delete("/me", middleware.RequireMinimumRole(constants.Admin), orgHandlers.DeleteMyOrganization)

	return app, db, rdb, nil
}
