package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"MarketBreadth/internal/collector"
	"MarketBreadth/internal/config"
	"MarketBreadth/internal/logger"
	"MarketBreadth/internal/narrative"
	"MarketBreadth/internal/pipeline"
	"MarketBreadth/internal/recorder"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const version = "0.3.0"

var (
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// newRootCmd creates the root command.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "breadth",
		Short:         "Market breadth report for an equity panel",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	rootCmd.PersistentFlags().String("config", cfgPath, "configuration file path")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// loadConfig loads and validates configuration, applying flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		cfg.Output.Path = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Log.Level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("tickers"); f != nil && f.Changed {
		cfg.DataSource.Tickers = config.ParseTickers(f.Value.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the panel, compute breadth and write the export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			lg, err := logger.Setup(logger.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				File:   cfg.Log.File,
			}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			mockDays, _ := cmd.Flags().GetInt("mock-days")

			var fetcher collector.Fetcher
			if mockDays > 0 {
				fetcher = &collector.MockFetcher{Days: mockDays}
			} else {
				fetcher = collector.NewData912Fetcher(cfg.DataSource.BaseURL, cfg.DataSource.RequestTimeout, lg)
			}

			var rec recorder.Recorder = recorder.NewJSONRecorder(cfg.Output.Path)
			if dryRun {
				rec = recorder.NewNoopRecorder()
			}

			p, err := pipeline.New(pipeline.Options{
				Fetcher:  fetcher,
				Recorder: rec,
				Collect: collector.Options{
					Tickers:           cfg.DataSource.Tickers,
					MaxRetries:        cfg.DataSource.MaxRetries,
					RetryBackoff:      cfg.DataSource.RetryBackoff,
					InterRequestDelay: cfg.DataSource.InterRequestDelay,
				},
				PanelTitle: cfg.Output.PanelTitle,
				Logger:     lg,
			})
			if err != nil {
				return err
			}
			lg.Info().Str("run_id", p.RunID).Str("source", fetcher.Name()).Str("recorder", rec.Name()).
				Str("output", cfg.Output.Path).Int("tickers", len(cfg.DataSource.Tickers)).Msg("starting run")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := p.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, confirmStyle.Render(
				narrative.ConfirmationLine(filepath.Base(cfg.Output.Path), res.Document.GeneratedAt)))
			if verbose, _ := cmd.Flags().GetBool("summary"); verbose {
				sentiment := lipgloss.NewStyle().Bold(true).
					Foreground(lipgloss.Color(res.Summary.Sentiment.Color)).
					Render(res.Summary.Sentiment.Label)
				fmt.Fprintln(out, sentiment)
				fmt.Fprintln(out, summaryStyle.Render(res.Summary.ExecutiveSummary))
			}
			return nil
		},
	}

	cmd.Flags().String("out", "", "output file path (default from config)")
	cmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().String("tickers", "", "comma-separated ticker list overriding the configured panel")
	cmd.Flags().Bool("dry-run", false, "compute everything but do not write the export")
	cmd.Flags().Bool("summary", false, "also print the sentiment and executive summary")
	cmd.Flags().Int("mock-days", 0, "use generated data with this many bars per ticker instead of the provider")
	return cmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "breadth v%s\n", version)
		},
	}
}
