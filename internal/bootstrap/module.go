package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"prepmate/internal/bootstrap/config"
	"prepmate/internal/bootstrap/database"
	"prepmate/internal/bootstrap/logging"
	"prepmate/internal/errs"
	cacheinfra "prepmate/internal/infrastructure/cache"
	"prepmate/internal/infrastructure/completion"
	"prepmate/internal/infrastructure/dispatch"
	sqliterepo "prepmate/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "prepmate/internal/infrastructure/persistence/sqlite/uow"
	"prepmate/internal/ports"
	feedbackusecase "prepmate/internal/usecase/feedback"
	questionsusecase "prepmate/internal/usecase/questions"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewInterviewRepository,
			fx.As(new(ports.InterviewRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideCompleter),
	fx.Provide(provideFeedbackService),
	fx.Provide(questionsusecase.NewService),
	fx.Provide(provideDispatcher),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideCompleter(cfg config.Config) (ports.Completer, error) {
	return completion.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
}

func provideFeedbackService(repo ports.InterviewRepository, completer ports.Completer, cfg config.Config) *feedbackusecase.Service {
	return feedbackusecase.NewService(repo, completer, time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second)
}

// provideDispatcher picks the async path: NATS when a broker URL is set,
// otherwise in-process goroutines.
func provideDispatcher(lc fx.Lifecycle, ctx context.Context, cfg config.Config, svc *feedbackusecase.Service) (ports.Dispatcher, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	if cfg.NATS.URL == "" {
		local, err := dispatch.NewLocalDispatcher(svc)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				local.Wait()
				return nil
			},
		})
		logging.Info(logCtx, "using in-process feedback dispatcher")
		return local, nil
	}

	conn, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, errs.Wrap(err, "connect nats")
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return conn.Drain()
		},
	})

	logging.Info(logCtx, "using nats feedback dispatcher",
		slog.String("url", cfg.NATS.URL),
		slog.String("subject", cfg.NATS.Subject),
	)
	return dispatch.NewNATSDispatcher(conn, cfg.NATS.Subject)
}
