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

	"github.com/fluxofest/live-chat/internal/config"
	"github.com/fluxofest/live-chat/internal/hub"
	pkgmdw "github.com/fluxofest/live-chat/internal/server/middleware"
	"github.com/fluxofest/live-chat/internal/usecase"
)

func NewHandler(
	chatUsecase usecase.ChatUsecase,
	roomUsecase usecase.RoomUsecase,
	donationUsecase usecase.DonationUsecase,
	h *hub.Hub,
	registry *usecase.EngineRegistry,
) Controller {
	return NewController(chatUsecase, roomUsecase, donationUsecase, newWSHandler(h, registry))
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
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

	e.Pre(pkgmdw.AutoVersion())
	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(pkgmdw.CORS(regexp.MustCompile(`.*`)))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")
	auth := pkgmdw.JWTAuth(conf.Auth.JWTSecret)

	// Spectating is open; writing needs a session.
	api.GET("/rooms", handler.ListRooms)
	api.GET("/rooms/:id", handler.GetRoom)
	api.GET("/rooms/:id/messages", handler.ListMessages)
	api.GET("/rooms/:id/pins", handler.ListPins)
	api.GET("/rooms/:id/hype", handler.GetHype)

	api.POST("/rooms", handler.CreateRoom, auth)
	api.POST("/rooms/:id/join", handler.JoinRoom, auth)
	api.POST("/rooms/:id/messages", handler.SendMessage, auth)
	api.POST("/rooms/:id/donations", handler.CreateDonation, auth)

	e.GET("/ws/rooms/:id", handler.Subscribe)

	e.POST("/webhooks/payments", handler.PaymentWebhook)

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
