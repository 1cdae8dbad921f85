package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-coauthor/pkg/config"
	"github.com/dd0wney/cluso-coauthor/pkg/graphql"
	"github.com/dd0wney/cluso-coauthor/pkg/logging"
	"github.com/dd0wney/cluso-coauthor/pkg/metrics"
	"github.com/dd0wney/cluso-coauthor/pkg/pipeline"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
	"github.com/dd0wney/cluso-coauthor/pkg/tui"
)

// commonFlags are accepted by every command
type commonFlags struct {
	configPath string
	outputDir  string
	logLevel   string
	logFormat  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.outputDir, "out", "", "Output directory (overrides output.dir)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&c.logFormat, "log-format", "", "Log format: console or json")
}

// load reads the config file and environment, then applies the flags
func (c *commonFlags) load(apply func(*config.Config)) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.outputDir != "" {
		cfg.Output.Dir = c.outputDir
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Logging.Format = c.logFormat
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.New(os.Stderr, logging.Format(cfg.Logging.Format), logging.ParseLevel(cfg.Logging.Level))
	logging.SetDefaultLogger(logger)
	return cfg, logger, nil
}

func runCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	input := fs.String("input", "", "Citation CSV (overrides input.path)")
	source := fs.String("source", "", "Input source: csv or postgres")
	topic := fs.String("topic", "", "Topic used in chart titles")
	noRender := fs.Bool("no-render", false, "Skip chart rendering")
	noColor := fs.Bool("no-color", false, "Plain console report")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := common.load(func(cfg *config.Config) {
		if *input != "" {
			cfg.Input.Path = *input
		}
		if *source != "" {
			cfg.Input.Source = *source
		}
		if *topic != "" {
			cfg.Render.Topic = *topic
		}
		if *noRender {
			cfg.Render.Enabled = false
		}
		if *noColor {
			cfg.Render.ConsoleColor = false
		}
	})
	if err != nil {
		return err
	}

	res, err := pipeline.Run(ctx, cfg, logger, metrics.DefaultRegistry())
	if err != nil {
		return err
	}

	fmt.Println()
	for _, path := range res.Artifacts {
		fmt.Printf("wrote %s\n", path)
	}
	for _, obj := range res.Published {
		fmt.Printf("published s3://%s/%s\n", cfg.Publish.S3.Bucket, obj.Key)
	}
	return nil
}

func openSnapshot(common *commonFlags, path string) (*report.Snapshot, logging.Logger, error) {
	cfg, logger, err := common.load(nil)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		path = pipeline.SnapshotPath(cfg)
	}
	snap, err := report.ReadSnapshot(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (run \"coauthor run\" first)", err)
	}
	logger.Debug("snapshot loaded", logging.Path(path), logging.Count(len(snap.Authors)))
	return snap, logger, nil
}

func queryCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	snapshotPath := fs.String("snapshot", "", "Snapshot file (default <out>/snapshot.json)")
	vars := fs.String("vars", "", "Query variables as a JSON object")
	maxDepth := fs.Int("max-depth", graphql.DefaultMaxDepth, "Maximum query depth")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query, err := readQuery(fs.Args(), os.Stdin)
	if err != nil {
		return err
	}

	var variables map[string]any
	if *vars != "" {
		if err := json.Unmarshal([]byte(*vars), &variables); err != nil {
			return fmt.Errorf("invalid -vars: %w", err)
		}
	}

	snap, logger, err := openSnapshot(&common, *snapshotPath)
	if err != nil {
		return err
	}

	executor, err := graphql.NewExecutor(snap, graphql.Options{
		MaxDepth: *maxDepth,
		Metrics:  metrics.DefaultRegistry(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	result := executor.Execute(ctx, query, variables)
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if result.HasErrors() {
		return errors.New("query returned errors")
	}
	return nil
}

// readQuery takes the query from the first argument, or from r when the
// argument is "-" or missing
func readQuery(args []string, r io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read query: %w", err)
	}
	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", errors.New("no query given")
	}
	return query, nil
}

func browseCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	snapshotPath := fs.String("snapshot", "", "Snapshot file (default <out>/snapshot.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap, _, err := openSnapshot(&common, *snapshotPath)
	if err != nil {
		return err
	}

	// stderr output would draw over the alt screen; the console shows
	// query errors itself
	executor, err := graphql.NewExecutor(snap, graphql.Options{
		Metrics: metrics.DefaultRegistry(),
		Logger:  logging.NewNopLogger(),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(snap, executor), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
