package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/fluxofest/live-chat/internal/config"
	"github.com/fluxofest/live-chat/internal/hub"
	"github.com/fluxofest/live-chat/internal/repo/mongodb"
	"github.com/fluxofest/live-chat/internal/repo/payments"
	"github.com/fluxofest/live-chat/internal/server"
	"github.com/fluxofest/live-chat/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,
			newModerationValidator,
			newSlowMode,

			hub.New,
			server.NewHandler,

			usecase.NewEngineRegistry,
			usecase.NewChatUsecase,
			usecase.NewRoomUsecase,
			usecase.NewDonationUsecase,

			mongodb.NewRoomRepository,
			mongodb.NewMessageRepository,
			mongodb.NewDonationRepository,

			payments.NewClient,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
