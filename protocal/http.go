package protocal

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"line-knowledge-bot/configs"
	httpAdapter "line-knowledge-bot/internal/adapters/input/http"
	"line-knowledge-bot/internal/adapters/output/converter"
	"line-knowledge-bot/internal/adapters/output/gemini"
	lineAdapter "line-knowledge-bot/internal/adapters/output/line"
	"line-knowledge-bot/internal/adapters/output/memory"
	"line-knowledge-bot/internal/adapters/output/postgres"
	"line-knowledge-bot/internal/adapters/output/staging"
	"line-knowledge-bot/internal/application"
	"line-knowledge-bot/internal/ports/output"
	"line-knowledge-bot/pkg/database_driver/gorm"
	"line-knowledge-bot/pkg/logger"
	"line-knowledge-bot/pkg/metrics"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	gormDB "gorm.io/gorm"
)

// Defaults applied when the matching config value is zero
const (
	defaultSessionTimeout = 60 * time.Minute
	defaultSweepInterval  = 10 * time.Minute
	defaultMaxStores      = 10000
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()
	if err := conf.Validate(); err != nil {
		return err
	}

	rotator := logger.Init(logger.Options{
		Level:      conf.Log.Level,
		Debug:      conf.App.Debug,
		File:       conf.Log.File,
		MaxSizeMB:  conf.Log.MaxSizeMB,
		MaxBackups: conf.Log.MaxBackups,
		MaxAgeDays: conf.Log.MaxAgeDays,
	})
	logrus.Info(conf.App.Env)

	metrics.Init(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Output adapters
	geminiClient, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:      conf.Gemini.APIKey,
		Model:       conf.Gemini.Model,
		Temperature: conf.Gemini.Temperature,
		MaxAttempts: conf.Gemini.MaxAttempts,
	})
	if err != nil {
		return err
	}
	documentStore := gemini.NewDocumentStore(geminiClient)
	conversations := gemini.NewConversationClient(geminiClient)

	lineClient, err := lineAdapter.NewLineClientAdapter(conf.Line.ChannelToken)
	if err != nil {
		logrus.Fatalf("Failed to create LINE client: %v", err)
	}

	stager, err := staging.NewDiskStager(conf.Upload.Dir)
	if err != nil {
		return err
	}

	docConverter := converter.NewLibreOfficeConverter(converter.Options{
		Commands:            conf.Conversion.Commands,
		DocumentTimeout:     seconds(conf.Conversion.DocumentTimeout),
		PresentationTimeout: seconds(conf.Conversion.PresentationTimeout),
	})

	sessionTimeout := minutesOr(conf.Session.Timeout, defaultSessionTimeout)
	maxStores := conf.Citation.MaxStores
	if maxStores == 0 {
		maxStores = defaultMaxStores
	}

	// The ingestion log is optional
	var (
		db      *gormDB.DB
		records output.IngestionRepository
	)
	if conf.Postgres.Enabled {
		dbConGorm, err := gorm.ConnectToPostgreSQL(
			conf.Postgres.Host,
			conf.Postgres.Port,
			conf.Postgres.Username,
			conf.Postgres.Password,
			conf.Postgres.DbName,
			conf.Postgres.SSLMode,
		)
		if err != nil {
			return err
		}
		db = dbConGorm.Postgres
		records = postgres.NewIngestionRepository(db)
	}

	// Application services
	resolver := application.NewStoreResolver(documentStore, memory.NewStoreHandleCache(), conf.Store.SingleFlight)
	sessions := application.NewSessionManager(
		memory.NewMemorySessionStore(sessionTimeout),
		conversations,
		conf.Session.SystemPrompt,
		sessionTimeout,
	)
	queries := application.NewQueryOrchestrator(
		resolver,
		documentStore,
		sessions,
		conversations,
		memory.NewCitationCache(maxStores, minutesOr(conf.Citation.TTL, 0)),
		conf.Query.UseSession,
	)
	catalog := application.NewDocumentCatalog(resolver, documentStore)
	ingestion := application.NewIngestionPipeline(
		resolver,
		documentStore,
		docConverter,
		stager,
		records,
		seconds(conf.Upload.PollInterval),
		seconds(conf.Upload.PollCeiling),
	)
	lineWebhookSrv := application.NewLineWebhookService(application.LineWebhookDeps{
		LineClient:    lineClient,
		Conversations: conversations,
		Stager:        stager,
		Queries:       queries,
		Catalog:       catalog,
		Ingestion:     ingestion,
		Sessions:      sessions,
	})
	ingestionLogSrv := application.NewIngestionLogService(records)

	go sweepSessions(ctx, sessions, minutesOr(conf.Session.SweepInterval, defaultSweepInterval))

	// Input adapters
	hdl := httpAdapter.New(ingestionLogSrv)
	lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, conf.Line.ChannelSecret)

	app := newApp(conf, hdl, lineWebhookHdl)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			logrus.Info("Gracefull shut down ...")
			cancel()
			if db != nil {
				gorm.DisconnectPostgres(db)
			}
			if err := app.Shutdown(); err != nil {
				logrus.Errorf("Error when shutdown server: %v", err)
			}
			if rotator != nil {
				_ = rotator.Close()
			}
		}
	}()

	logrus.Println("Listening on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}

// newApp func - Builds the fiber app. The ingestion log API is routed only when admin
// is enabled and CORS admits only the configured origins.
func newApp(conf *configs.Config, hdl *httpAdapter.HTTPHandler, lineWebhookHdl *httpAdapter.LineWebhookHandler) *fiber.App {
	app := fiber.New()
	if conf.App.CorsAllowedOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: conf.App.CorsAllowedOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if conf.Admin.Enabled {
		admin := app.Group("/v1/api")
		{
			admin.Get("/ingestions/:id", hdl.GetIngestions)
			admin.Get("/ingestions", hdl.GetIngestions)
		}
	} else {
		logrus.Info("Admin API disabled")
	}

	// LINE webhook endpoint
	webhook := app.Group("/webhook")
	{
		webhook.Post("/line", lineWebhookHdl.HandleWebhook)
	}

	return app
}

// sweepSessions removes expired sessions until ctx is done
func sweepSessions(ctx context.Context, sessions *application.SessionManager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.SweepExpired()
		}
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func minutesOr(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Minute
}
