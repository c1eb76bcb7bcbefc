package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/raushankrgupta/retailnext/api"
	"github.com/raushankrgupta/retailnext/catalog"
	"github.com/raushankrgupta/retailnext/config"
	"github.com/raushankrgupta/retailnext/generate"
	"github.com/raushankrgupta/retailnext/llm"
	"github.com/raushankrgupta/retailnext/media"
	"github.com/raushankrgupta/retailnext/recommend"
	"github.com/raushankrgupta/retailnext/scrapers"
	"github.com/raushankrgupta/retailnext/store"
	"github.com/raushankrgupta/retailnext/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	utils.SetupLogger(cfg.LogLevel, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	posts, closePosts, err := openPostStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePosts()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	var oa *llm.OpenAIClient
	if cfg.OpenAIAPIKey != "" {
		oa = llm.NewOpenAIClient(llm.OpenAIOptions{
			APIKey:         cfg.OpenAIAPIKey,
			BaseURL:        cfg.OpenAIBaseURL,
			ImageModel:     cfg.ImageModel,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
		})
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set, generation and chat are disabled")
	}

	deps := api.Deps{
		Posts:        posts,
		Catalog:      cat,
		Importer:     scrapers.NewRegistry(true),
		CatalogFile:  cfg.CatalogFile,
		JWTSecret:    cfg.JWTSecret,
		ShareBaseURL: cfg.ShareBaseURL,
		TopK:         cfg.TopK,
	}
	if oa != nil {
		deps.Chat = oa
	}

	var index *recommend.IndexRecommender
	switch cfg.Strategy {
	case "embedding":
		if oa == nil {
			return errors.New("RECOMMEND_STRATEGY=embedding needs OPENAI_API_KEY")
		}
		deps.Recommender = recommend.NewEmbeddingRecommender(cat, oa)
		deps.Embedder = oa
	case "flat":
		if oa == nil {
			return errors.New("RECOMMEND_STRATEGY=flat needs OPENAI_API_KEY")
		}
		deps.Recommender = recommend.NewFlatRecommender(cat, oa)
		deps.Embedder = oa
	case "color":
		deps.Recommender = recommend.NewColorRecommender(cat)
	case "index":
		if oa == nil {
			return errors.New("RECOMMEND_STRATEGY=index needs OPENAI_API_KEY")
		}
		index, err = openIndex(ctx, cfg, cat, oa)
		if err != nil {
			return err
		}
		deps.Recommender = index
		deps.Embedder = oa
		deps.Indexer = index
	}

	gen, err := imageGenerator(cfg, oa)
	if err != nil {
		return err
	}
	deps.Generator = gen

	switch cfg.MediaStore {
	case "local":
		deps.Archiver, err = media.NewLocalArchiver(cfg.MediaDir, "/generated/")
	case "s3":
		deps.Archiver, err = media.NewS3Archiver(ctx, cfg.AWSRegion, cfg.AWSBucketName)
	}
	if err != nil {
		return err
	}

	if cfg.SendGridAPIKey != "" {
		deps.Mailer = &utils.Mailer{APIKey: cfg.SendGridAPIKey, FromName: cfg.MailFromName, FromEmail: cfg.MailFromEmail}
	}

	router := api.NewHandler(deps).Routes()
	if cfg.MediaStore == "local" {
		router.Handle("/generated/*", http.StripPrefix("/generated/", http.FileServer(http.Dir(cfg.MediaDir))))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      6 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("strategy", cfg.Strategy).Int("catalog_items", cat.Len()).Msg("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if index != nil {
		if err := index.Persist(cfg.IndexDir); err != nil {
			log.Error().Err(err).Msg("Failed to persist catalog index")
		}
	}
	return nil
}

func openPostStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.PostStore == "mongo" {
		client, err := utils.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}
		return store.NewMongoStore(client.Database(cfg.DBName)), closeFn, nil
	}

	fs, err := store.OpenFileStore(cfg.PostsFile)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

// loadCatalog reads the embedded catalog and attaches the color features when present.
// Without a catalog file the color features alone make up the catalog.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogFile, cfg.CatalogImageBaseURL)
	if err != nil {
		return nil, err
	}

	features, err := catalog.LoadColorFeatures(cfg.ColorFeaturesFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info().Str("path", cfg.ColorFeaturesFile).Msg("No color features file")
	case err != nil:
		return nil, err
	case cat.Len() == 0:
		cat = catalog.New(catalog.FromColorFeatures(features), cfg.CatalogImageBaseURL)
	default:
		n := cat.AttachColors(features)
		log.Info().Int("items", n).Msg("Attached color features")
	}

	log.Info().Int("items", cat.Len()).Msg("Catalog loaded")
	return cat, nil
}

func openIndex(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, e recommend.Embedder) (*recommend.IndexRecommender, error) {
	index, err := recommend.NewIndexRecommender(cat, e)
	if err != nil {
		return nil, err
	}
	if err := index.Load(cfg.IndexDir); err != nil {
		return nil, err
	}
	if err := index.Sync(ctx); err != nil {
		return nil, err
	}
	if err := index.Persist(cfg.IndexDir); err != nil {
		log.Warn().Err(err).Msg("Failed to persist catalog index")
	}
	return index, nil
}

// imageGenerator returns nil when the configured provider has no key.
func imageGenerator(cfg *config.Config, oa *llm.OpenAIClient) (generate.ImageGenerator, error) {
	switch cfg.ImageProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("IMAGE_PROVIDER=gemini needs GEMINI_API_KEY")
		}
		return llm.NewGeminiImageGenerator(cfg.GeminiAPIKey, cfg.GeminiImageModel), nil
	default:
		if oa == nil {
			return nil, nil
		}
		return oa, nil
	}
}
