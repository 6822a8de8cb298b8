package app

import (
	"context"

	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/wanderhub/marketplace-chat/internal/config"
	"github.com/wanderhub/marketplace-chat/internal/kafka"
	"github.com/wanderhub/marketplace-chat/internal/repo/mongodb"
	"github.com/wanderhub/marketplace-chat/internal/server"
	"github.com/wanderhub/marketplace-chat/internal/usecase"
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

			server.NewController,
			server.NewRequirementController,
			server.NewMessageController,

			usecase.NewMessageUsecase,
			usecase.NewRequirementUsecase,

			mongodb.NewUserRepository,
			mongodb.NewRequirementRepository,
			mongodb.NewMessageRepository,

			kafka.NewPublisher,
		),
		fx.Supply(conf),
		fx.Invoke(InitializeIndexes),
		fx.Invoke(funcs...),
	)
}

// InitializeIndexes creates the query indexes on startup. Index creation is
// idempotent so restarts are safe.
func InitializeIndexes(
	lc fx.Lifecycle,
	requirementRepo mongodb.RequirementRepository,
	messageRepo mongodb.MessageRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := requirementRepo.EnsureIndexes(ctx); err != nil {
				return err
			}
			return messageRepo.EnsureIndexes(ctx)
		},
	})
}
