package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/ai"
	oai "github.com/OFFIS-RIT/paperkg/pkg/ai/ollama"
	gai "github.com/OFFIS-RIT/paperkg/pkg/ai/openai"
	"github.com/OFFIS-RIT/paperkg/pkg/loader"
	loaderio "github.com/OFFIS-RIT/paperkg/pkg/loader/io"
	"github.com/OFFIS-RIT/paperkg/pkg/loader/pdf"
	loaders3 "github.com/OFFIS-RIT/paperkg/pkg/loader/s3"
	"github.com/OFFIS-RIT/paperkg/pkg/store"
	"github.com/OFFIS-RIT/paperkg/pkg/store/pgx"
	"github.com/OFFIS-RIT/paperkg/pkg/store/sqlite"
)

// Config is the process configuration read from the environment.
type Config struct {
	DatabaseURL    string
	StoreAdapter   string
	SQLitePath     string
	MigrateOnStart bool

	PapersDir      string
	PapersS3Prefix string
	AWSRegion      string
	AWSEndpoint    string
	AWSAccessKey   string
	AWSSecretKey   string
	AWSBucket      string

	AIAdapter      string
	AIChatURL      string
	AIChatKey      string
	AIExtractModel string
	AIThinking     string
	AIMaxRetries   int

	TextLimit     int
	MinTextLength int
	ParallelFiles int
}

// LoadConfig reads the configuration from the environment, applying the
// documented defaults.
func LoadConfig() Config {
	return Config{
		DatabaseURL:    util.GetEnv("DATABASE_URL"),
		StoreAdapter:   strings.ToLower(util.GetEnvString("STORE_ADAPTER", "postgres")),
		SQLitePath:     util.GetEnvString("SQLITE_PATH", "./paperkg.db"),
		MigrateOnStart: util.GetEnvBool("MIGRATE_ON_START", true),

		PapersDir:      util.GetEnvString("PAPERS_DIR", "./papers"),
		PapersS3Prefix: util.GetEnv("PAPERS_S3_PREFIX"),
		AWSRegion:      util.GetEnv("AWS_REGION"),
		AWSEndpoint:    util.GetEnv("AWS_ENDPOINT"),
		AWSAccessKey:   util.GetEnv("AWS_ACCESS_KEY"),
		AWSSecretKey:   util.GetEnv("AWS_SECRET_KEY"),
		AWSBucket:      util.GetEnv("AWS_BUCKET"),

		AIAdapter:      strings.ToLower(util.GetEnvString("AI_ADAPTER", "openai")),
		AIChatURL:      util.GetEnv("AI_CHAT_URL"),
		AIChatKey:      util.GetEnv("AI_CHAT_KEY"),
		AIExtractModel: util.GetEnvString("AI_CHAT_EXTRACT_MODEL", "gpt-4o"),
		AIThinking:     util.GetEnv("AI_THINKING"),
		AIMaxRetries:   util.GetEnvInt("AI_MAX_RETRIES", 3),

		TextLimit:     util.GetEnvInt("TEXT_LIMIT", loader.DefaultTextLimit),
		MinTextLength: util.GetEnvInt("MIN_TEXT_LENGTH", loader.DefaultMinTextLength),
		ParallelFiles: util.GetEnvInt("PARALLEL_FILES", 1),
	}
}

// Validate checks the settings needed to open the configured store.
func (c Config) Validate() error {
	switch c.StoreAdapter {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown STORE_ADAPTER %q (want postgres or sqlite)", c.StoreAdapter)
	}
	return nil
}

func openStore(ctx context.Context, cfg Config) (store.GraphStorage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StoreAdapter == "sqlite" {
		return sqlite.New(cfg.SQLitePath)
	}
	return pgx.NewGraphDBStorage(ctx, cfg.DatabaseURL)
}

func newAIClient(cfg Config) (ai.GraphAIClient, error) {
	switch cfg.AIAdapter {
	case "ollama":
		return oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			ExtractionModel:       cfg.AIExtractModel,
			BaseURL:               cfg.AIChatURL,
			ApiKey:                cfg.AIChatKey,
			MaxConcurrentRequests: int64(max(cfg.ParallelFiles, 1)),
		})
	case "openai", "":
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			ExtractionModel: cfg.AIExtractModel,
			ChatURL:         cfg.AIChatURL,
			ChatKey:         cfg.AIChatKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown AI_ADAPTER %q (want openai or ollama)", cfg.AIAdapter)
	}
}

// discoverFiles lists the corpus from S3 when a prefix is configured and
// from the papers directory otherwise. Both sources decode PDFs through the
// same cached loader.
func discoverFiles(ctx context.Context, cfg Config) ([]loader.GraphFile, error) {
	if cfg.PapersS3Prefix != "" {
		s3Loader, err := loaders3.NewS3GraphFileLoader(ctx, loaders3.NewS3GraphFileLoaderParams{
			Bucket:    cfg.AWSBucket,
			Endpoint:  cfg.AWSEndpoint,
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 loader: %w", err)
		}
		return s3Loader.Discover(ctx, cfg.PapersS3Prefix, pdf.NewPDFGraphLoader(s3Loader))
	}

	return loader.DiscoverDirectory(cfg.PapersDir, pdf.NewPDFGraphLoader(loaderio.NewIOGraphFileLoader()))
}
