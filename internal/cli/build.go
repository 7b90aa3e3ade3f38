package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/paperkg/pkg/ai"
	"github.com/OFFIS-RIT/paperkg/pkg/graph"
	"github.com/OFFIS-RIT/paperkg/pkg/logger"
	"github.com/OFFIS-RIT/paperkg/pkg/store/migrations"

	"github.com/spf13/cobra"
)

var (
	buildDir      string
	buildS3Prefix string
	buildLimit    int
	buildParallel int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract the paper corpus into the knowledge graph",
	Long: `Build reads every PDF of the corpus, extracts entities and relationships
and merges them into the graph. Documents that cannot be read or extracted
are skipped and reported; an unreachable database stops the run.

Example:
  paperkg build --dir ./papers
  paperkg build --s3-prefix papers/2024/ --parallel 4`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildDir, "dir", "", "papers directory (default PAPERS_DIR or ./papers)")
	buildCmd.Flags().StringVar(&buildS3Prefix, "s3-prefix", "", "read papers from this S3 prefix (default PAPERS_S3_PREFIX)")
	buildCmd.Flags().IntVar(&buildLimit, "limit", 0, "text limit in characters (default TEXT_LIMIT or 40000)")
	buildCmd.Flags().IntVar(&buildParallel, "parallel", 0, "documents processed concurrently (default PARALLEL_FILES or 1)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := LoadConfig()
	if cmd.Flags().Changed("dir") {
		cfg.PapersDir = buildDir
		cfg.PapersS3Prefix = ""
	}
	if cmd.Flags().Changed("s3-prefix") {
		cfg.PapersS3Prefix = buildS3Prefix
	}
	if cmd.Flags().Changed("limit") {
		cfg.TextLimit = buildLimit
	}
	if cmd.Flags().Changed("parallel") {
		cfg.ParallelFiles = buildParallel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart && cfg.StoreAdapter == "postgres" {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			return err
		}
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	aiClient, err := newAIClient(cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(ctx, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("[Graph] No PDF files found", "dir", cfg.PapersDir, "s3_prefix", cfg.PapersS3Prefix)
		return nil
	}

	textLimit := cfg.TextLimit
	if textLimit == 0 {
		textLimit = -1
	}
	client, err := graph.NewGraphClient(graph.NewGraphClientParams{
		TextLimit:     textLimit,
		MinTextLength: cfg.MinTextLength,
		ParallelFiles: cfg.ParallelFiles,
		MaxRetries:    cfg.AIMaxRetries,
	})
	if err != nil {
		return err
	}

	var extractOpts []ai.GenerateOption
	if cfg.AIThinking != "" {
		extractOpts = append(extractOpts, ai.WithThinking(cfg.AIThinking))
	}
	extractor := graph.NewAIExtractor(aiClient, extractOpts...)

	report, err := client.ProcessCorpus(ctx, files, extractor, st)
	if report != nil {
		logMetrics(report)
	}
	if err != nil {
		return fmt.Errorf("graph build aborted: %w", err)
	}
	return nil
}

func logMetrics(report *graph.RunReport) {
	m := report.Metrics
	aiDuration := time.Duration(m.DurationMs) * time.Millisecond
	logger.Info(
		"AI Metrics",
		"requests", m.Requests,
		"input_tokens", m.InputTokens,
		"output_tokens", m.OutputTokens,
		"total_tokens", m.TotalTokens,
		"tokens_per_second", m.TokenPerSecond,
		"ai_duration", aiDuration.Round(time.Second),
	)
	for _, f := range report.Failures {
		logger.Info("Skipped document", "label", f.Label, "kind", f.Kind)
	}
}
