package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the coordinator reads from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	// Posts
	PostStore string `env:"POST_STORE" envDefault:"file"` // file | mongo
	PostsFile string `env:"POSTS_FILE" envDefault:"data/posts.json"`
	MongoURI  string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/"`
	DBName    string `env:"DB_NAME" envDefault:"retailnext"`

	// Catalog
	CatalogFile         string `env:"CATALOG_FILE" envDefault:"data/embedded_products.json"`
	ColorFeaturesFile   string `env:"COLOR_FEATURES_FILE" envDefault:"data/color_features.json"`
	IndexDir            string `env:"INDEX_DIR" envDefault:"data/index"`
	CatalogImageBaseURL string `env:"CATALOG_IMAGE_BASE_URL" envDefault:"https://raw.githubusercontent.com/openai/openai-cookbook/main/examples/data/sample_clothes/sample_images"`
	SampleImagesAPIURL  string `env:"SAMPLE_IMAGES_API_URL" envDefault:"https://api.github.com/repos/openai/openai-cookbook/contents/examples/data/sample_clothes/sample_images"`

	// Recommendation
	Strategy string `env:"RECOMMEND_STRATEGY" envDefault:"embedding"` // embedding | flat | color | index
	TopK     int    `env:"RECOMMEND_TOP_K" envDefault:"3"`

	// Generated image archive
	MediaStore    string `env:"MEDIA_STORE" envDefault:"local"` // local | s3
	MediaDir      string `env:"MEDIA_DIR" envDefault:"data/generated"`
	AWSRegion     string `env:"AWS_REGION" envDefault:"ap-south-1"`
	AWSBucketName string `env:"AWS_BUCKET_NAME"`

	// Providers
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	ImageProvider    string `env:"IMAGE_PROVIDER" envDefault:"openai"` // openai | gemini
	ImageModel       string `env:"IMAGE_MODEL" envDefault:"dall-e-3"`
	ChatModel        string `env:"CHAT_MODEL" envDefault:"gpt-4o"`
	EmbeddingModel   string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GeminiImageModel string `env:"GEMINI_IMAGE_MODEL" envDefault:"gemini-3-pro-image-preview"`

	// Sharing
	JWTSecret      string `env:"JWT_SECRET"`
	ShareBaseURL   string `env:"SHARE_BASE_URL" envDefault:"http://localhost:8080"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFromName   string `env:"MAIL_FROM_NAME" envDefault:"RetailNext Coordinator"`
	MailFromEmail  string `env:"MAIL_FROM_EMAIL" envDefault:"no-reply@retailnext.example"`
}

// LoadConfig loads environment variables from .env file and parses them into a Config
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using default values or system environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.PostStore {
	case "file", "mongo":
	default:
		return fmt.Errorf("unknown POST_STORE %q", c.PostStore)
	}

	switch c.Strategy {
	case "embedding", "flat", "color", "index":
	default:
		return fmt.Errorf("unknown RECOMMEND_STRATEGY %q", c.Strategy)
	}

	switch c.MediaStore {
	case "local":
	case "s3":
		if c.AWSBucketName == "" {
			return fmt.Errorf("AWS_BUCKET_NAME is required when MEDIA_STORE=s3")
		}
	default:
		return fmt.Errorf("unknown MEDIA_STORE %q", c.MediaStore)
	}

	switch c.ImageProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown IMAGE_PROVIDER %q", c.ImageProvider)
	}

	if c.TopK <= 0 {
		return fmt.Errorf("RECOMMEND_TOP_K must be positive, got %d", c.TopK)
	}
	return nil
}
