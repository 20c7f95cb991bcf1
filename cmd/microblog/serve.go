package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/sbilibin2017/gw-microblog/docs"
	"github.com/sbilibin2017/gw-microblog/internal/config"
	"github.com/sbilibin2017/gw-microblog/internal/facades"
	"github.com/sbilibin2017/gw-microblog/internal/handlers"
	"github.com/sbilibin2017/gw-microblog/internal/health"
	"github.com/sbilibin2017/gw-microblog/internal/jwt"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/mail"
	"github.com/sbilibin2017/gw-microblog/internal/metrics"
	"github.com/sbilibin2017/gw-microblog/internal/middlewares"
	"github.com/sbilibin2017/gw-microblog/internal/migrations"
	"github.com/sbilibin2017/gw-microblog/internal/repositories"
	"github.com/sbilibin2017/gw-microblog/internal/services"
	"github.com/sbilibin2017/gw-microblog/internal/tracing"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the gRPC health server and the mail worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBuildInfo(cmd.OutOrStdout())
			return run(cmd.Context(), c.cfg)
		},
	}
}

// components are the wired services shared by the router and the CLI commands.
type components struct {
	tokens      *jwt.JWT
	revocations *repositories.TokenRevocationRepository
	auth        *services.AuthService
	graph       *services.SocialGraphService
	posts       *services.PostService
	profile     *services.ProfileService
	translator  *facades.TranslatorFacade
	checker     *health.Checker
}

// buildComponents wires repositories into services. onCommit defers search
// indexing, reset mail and follow count invalidation until the request
// transaction commits; nil runs them immediately.
func buildComponents(
	cfg *config.Config,
	db *sqlx.DB,
	rdb *redis.Client,
	index services.SearchIndex,
	dispatcher mail.Dispatcher,
	onCommit services.CommitHook,
) *components {
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.SecretKey),
		jwt.WithExpiration(cfg.JWTExp()),
	)

	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	followReadRepo := repositories.NewFollowReadRepository(db, middlewares.GetTxFromContext)
	followWriteRepo := repositories.NewFollowWriteRepository(db, middlewares.GetTxFromContext)
	postReadRepo := repositories.NewPostReadRepository(db, middlewares.GetTxFromContext)
	postWriteRepo := repositories.NewPostWriteRepository(db, middlewares.GetTxFromContext)
	revocations := repositories.NewTokenRevocationRepository(rdb)
	countCache := repositories.NewFollowCountCacheRepository(rdb, cfg.CountCacheTTL())

	var sender string
	if admins := cfg.AdminList(); len(admins) > 0 {
		sender = admins[0]
	}
	resetMailer := mail.NewPasswordResetMailer(dispatcher, sender, cfg.BaseURL)

	graph := services.NewSocialGraphService(followWriteRepo, followReadRepo, countCache, onCommit)

	checker := health.NewChecker(healthCheckInterval)
	checker.Add("postgres", db.PingContext)
	checker.Add("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

	return &components{
		tokens:      tokens,
		revocations: revocations,
		auth:        services.NewAuthService(userReadRepo, userWriteRepo, tokens, revocations, resetMailer, onCommit, cfg.ResetTokenExp()),
		graph:       graph,
		posts:       services.NewPostService(postReadRepo, postWriteRepo, index, onCommit, cfg.PostsPerPage),
		profile:     services.NewProfileService(userReadRepo, userWriteRepo, graph),
		translator:  facades.NewTranslatorFacade(facades.DefaultTranslatorEndpoint, cfg.TranslatorKey, cfg.TranslatorRegion),
		checker:     checker,
	}
}

// newRouter mounts every route. Writes and authenticated reads run inside a
// request transaction.
func newRouter(cfg *config.Config, db *sqlx.DB, c *components) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.TracingMiddleware)
	r.Use(middlewares.MetricsMiddleware)

	r.Get("/metrics", metrics.Handler().ServeHTTP)
	r.Get("/healthz", c.checker.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("%s/swagger/doc.json", cfg.BaseURL)),
	))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.TxMiddleware(db))

		r.Post("/register", handlers.NewRegisterHandler(c.auth))
		r.Post("/login", handlers.NewLoginHandler(c.auth))
		r.Post("/reset_password_request", handlers.NewResetPasswordRequestHandler(c.auth))
		r.Post("/reset_password/{token}", handlers.NewResetPasswordHandler(c.auth))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(c.tokens, c.revocations, c.profile))

			r.Post("/logout", handlers.NewLogoutHandler(c.auth))
			r.Get("/feed", handlers.NewFeedHandler(c.posts))
			r.Get("/explore", handlers.NewExploreHandler(c.posts))
			r.Post("/posts", handlers.NewCreatePostHandler(c.posts))
			r.Get("/search", handlers.NewSearchHandler(c.posts))
			r.Post("/translate", handlers.NewTranslateHandler(c.translator))
			r.Put("/users/me", handlers.NewEditProfileHandler(c.profile))
			r.Get("/users/{username}", handlers.NewProfileHandler(c.profile))
			r.Get("/users/{username}/posts", handlers.NewUserPostsHandler(c.profile, c.posts))
			r.Post("/follow/{username}", handlers.NewFollowHandler(c.profile, c.graph))
			r.Post("/unfollow/{username}", handlers.NewUnfollowHandler(c.profile, c.graph))
		})
	})

	return r
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis connection error: %w", err)
	}
	return rdb, nil
}

// newSearchIndex returns the Elasticsearch index, or a no-op one when no
// cluster is configured.
func newSearchIndex(cfg *config.Config) (services.SearchIndex, error) {
	if cfg.ElasticsearchURL == "" {
		logger.Log.Infow("search disabled, no ELASTICSEARCH_URL configured")
		return facades.NoopSearchIndex{}, nil
	}
	return facades.NewElasticsearchFacade(cfg.ElasticsearchURL, facades.PostsIndex)
}

func newMailSender(cfg *config.Config) mail.Sender {
	if cfg.MailServer == "" {
		return mail.LogSender{}
	}
	return mail.NewSMTPSender(cfg.MailServer, cfg.MailPort, cfg.MailUseTLS, cfg.MailUsername, cfg.MailPassword)
}

// mailPipeline is the dispatcher handed to services plus the worker that
// delivers what it accepts.
type mailPipeline struct {
	dispatcher mail.Dispatcher
	worker     func(ctx context.Context) error
	close      func() error
}

func newMailPipeline(cfg *config.Config) mailPipeline {
	sender := newMailSender(cfg)

	brokers := cfg.KafkaBrokerList()
	if len(brokers) == 0 {
		queue := mail.NewQueueDispatcher(sender, cfg.MailQueueSize)
		return mailPipeline{
			dispatcher: queue,
			worker:     queue.Run,
			close:      func() error { return nil },
		}
	}

	writer := mail.NewKafkaWriter(brokers, cfg.KafkaMailTopic)
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: cfg.KafkaGroupID,
		Topic:   cfg.KafkaMailTopic,
	})
	consumer := mail.NewConsumer(reader, sender)

	return mailPipeline{
		dispatcher: mail.NewKafkaDispatcher(writer),
		worker:     consumer.Run,
		close: func() error {
			return errors.Join(writer.Close(), reader.Close())
		},
	}
}

// run connects the stores, starts the servers and the background workers,
// and blocks until a shutdown signal arrives or a server fails.
func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		ServiceName:    "microblog",
		ServiceVersion: buildVersion,
		Environment:    cfg.Env,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   1,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Log.Errorw("tracer shutdown error", "error", err)
		}
	}()

	db, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.CheckStatus(db.DB); err != nil {
		logger.Log.Warnw("database schema is not current, run the migrate command", "error", err)
	}

	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	index, err := newSearchIndex(cfg)
	if err != nil {
		return err
	}

	pipeline := newMailPipeline(cfg)
	defer func() {
		if err := pipeline.close(); err != nil {
			logger.Log.Errorw("mail pipeline close error", "error", err)
		}
	}()

	c := buildComponents(cfg, db, rdb, index, pipeline.dispatcher, middlewares.OnCommit)
	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           newRouter(cfg, db, c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	c.checker.Register(grpcServer)
	grpcLis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Log.Infof("gRPC health server listening on %s", grpcLis.Addr())
		if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		c.checker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return pipeline.worker(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutdown signal received, stopping servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Log.Info("servers stopped gracefully")
	return nil
}
