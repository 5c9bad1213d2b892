package http

import (
	"context"
	"log/slog"

	"github.com/geocoder89/enrollhub/internal/config"
	"github.com/geocoder89/enrollhub/internal/http/handlers"
	"github.com/geocoder89/enrollhub/internal/http/middlewares"
	"github.com/geocoder89/enrollhub/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "enrollhub"

// Deps are the collaborators the router wires into handlers. Prom and Ping may be nil.
type Deps struct {
	Accounts    handlers.AccountStore
	Enrollments handlers.EnrollmentCreator
	Hasher      handlers.PasswordHasher
	Tokens      TokenManager
	Prom        *observability.Prom
	Ping        func(ctx context.Context) error
}

type TokenManager interface {
	handlers.TokenIssuer
	middlewares.TokenVerifier
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())

	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Prom != nil {
		r.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
	}

	var logins handlers.LoginObserver
	if deps.Prom != nil {
		logins = deps.Prom
	}

	accountsHandler := handlers.NewAccountsHandler(deps.Accounts, deps.Hasher, deps.Tokens, logins)
	enrollmentsHandler := handlers.NewEnrollmentsHandler(deps.Enrollments)
	authMW := middlewares.NewAuthMiddleware(deps.Tokens)

	users := r.Group("/users")
	users.POST("/register", accountsHandler.Register)
	users.POST("/login", accountsHandler.Login)
	users.POST("/check-email", accountsHandler.CheckEmail)

	authed := users.Group("", authMW.RequireAuth())
	authed.GET("/details", accountsHandler.GetProfile)
	authed.POST("/enroll", enrollmentsHandler.Enroll)
	authed.PATCH("/:userId/update-password", accountsHandler.UpdatePassword)
	authed.PUT("/profile", accountsHandler.UpdateProfile)

	return r
}
