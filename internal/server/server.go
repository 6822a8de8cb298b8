package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/wanderhub/marketplace-chat/internal/config"
	pkgmdw "github.com/wanderhub/marketplace-chat/internal/server/middleware"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
	requirements RequirementController,
	messages MessageController,
) {
	e := echo.New()
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = errorHandler()

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
	}

	if conf.Server.CORSOrigins != "" {
		e.Use(pkgmdw.CORS(regexp.MustCompile(conf.Server.CORSOrigins)))
	}
	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))
	pkgmdw.PprofWrap(e)

	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")
	api.GET("/requirements/:id", requirements.GetRequirement)

	auth := api.Group("", pkgmdw.Auth(conf.Auth.JWTSecret))
	auth.POST("/requirements", requirements.CreateRequirement)
	auth.PUT("/requirements/:id", requirements.CloseRequirement)
	auth.GET("/requirements/user", requirements.GetOwnRequirements)
	auth.GET("/requirements/vendor", requirements.GetVendorRequirements)
	auth.GET("/messages", messages.GetMessages)
	auth.POST("/messages", messages.SendMessage)
	auth.GET("/messages/conversations", messages.GetConversations)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
