package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/shopbot/internal/bot/biz"
	"github.com/kart-io/shopbot/internal/bot/handler"
	"github.com/kart-io/shopbot/internal/bot/router"
	"github.com/kart-io/shopbot/internal/bot/store"
	"github.com/kart-io/shopbot/internal/pkg/csvutil"
	"github.com/kart-io/shopbot/pkg/app"
	"github.com/kart-io/shopbot/pkg/component/milvus"
	"github.com/kart-io/shopbot/pkg/component/ollama"
	"github.com/kart-io/shopbot/pkg/component/sqlite"
)

const (
	appName        = "shopbot"
	appDescription = `E-Commerce Conversational Assistant

Shopbot answers customer queries over three pipelines:
  - FAQ retrieval grounded in the store knowledge base
  - Natural language product catalog search
  - Casual small talk`

	shutdownTimeout = 10 * time.Second
)

// NewApp creates a new application instance.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(appName),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run runs the shopbot service with the given options.
func Run(opts *Options) error {
	// 1. Logger
	opts.Log.AddInitialField("service.name", appName)
	opts.Log.AddInitialField("service.version", app.GetVersion())
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting shopbot service...")

	// 2. Milvus client and FAQ store
	milvusClient, err := milvus.New(opts.Milvus)
	if err != nil {
		return fmt.Errorf("failed to initialize milvus: %w", err)
	}
	defer milvusClient.Close(context.Background())
	faqStore := store.NewMilvusStore(milvusClient)
	logger.Info("FAQ store initialized")

	// 3. Ollama client
	ollamaClient := ollama.New(opts.Ollama)
	if err := ollamaClient.Ping(context.Background()); err != nil {
		logger.Warnw("ollama server not reachable at startup", "error", err.Error())
	}
	logger.Infow("Ollama client initialized",
		"chat_model", opts.Ollama.ChatModel,
		"embed_model", opts.Ollama.EmbedModel,
	)

	// 4. Product catalog database
	sqliteClient, err := sqlite.New(opts.SQLite)
	if err != nil {
		return fmt.Errorf("failed to open product database: %w", err)
	}
	defer sqliteClient.Close()
	productStore := store.NewSQLProductStore(sqliteClient.DB())
	logger.Infow("Product store initialized", "path", opts.SQLite.Path)

	// 5. Intent classifier. Without reference vectors nothing can be
	// routed, so encoding failure aborts startup.
	classifier, err := biz.NewClassifier(context.Background(), ollamaClient, biz.DefaultRoutes(), &biz.ClassifierConfig{
		Threshold: opts.Bot.RouteThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to build intent classifier: %w", err)
	}
	logger.Info("Intent classifier initialized")

	// 6. Pipelines and dispatcher
	faqPipeline := biz.NewFAQPipeline(faqStore, ollamaClient, ollamaClient, &biz.FAQPipelineConfig{
		Collection: opts.Bot.FAQCollection,
		Dimension:  opts.Bot.EmbeddingDim,
		TopK:       opts.Bot.TopK,
	})

	if opts.Bot.FAQDataPath != "" {
		entries, err := csvutil.LoadFAQ(opts.Bot.FAQDataPath)
		if err != nil {
			return fmt.Errorf("failed to load faq data: %w", err)
		}
		if err := faqPipeline.Ingest(context.Background(), entries); err != nil {
			return fmt.Errorf("failed to ingest faq data: %w", err)
		}
	}

	botService := biz.NewBotService(
		classifier,
		faqPipeline,
		biz.NewQuerySynthesizer(ollamaClient),
		biz.NewSummarizer(ollamaClient),
		biz.NewSmallTalk(ollamaClient),
		productStore,
		faqStore,
		opts.Bot.FAQCollection,
	)
	logger.Info("Bot service initialized")

	// 7. HTTP server
	if !opts.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	router.Register(engine, handler.NewChatHandler(botService))

	srv := &http.Server{
		Addr:         opts.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  opts.HTTP.ReadTimeout,
		WriteTimeout: opts.HTTP.WriteTimeout,
		IdleTimeout:  opts.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", opts.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down shopbot service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Shopbot service stopped")
	return nil
}
