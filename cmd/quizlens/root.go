package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/quizlens/internal/app"
	"github.com/hyperifyio/quizlens/internal/report"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizlens",
		Short:         "Detect, answer and highlight quiz questions on web pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	f := root.PersistentFlags()
	f.String("config", "", "Path to a YAML or JSON config file")
	f.StringSlice("env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	f.String("provider", "", "Oracle provider: gemini, openai or anthropic")
	f.String("api-key", "", "API key for the provider")
	f.String("model", "", "Model name (provider default when empty)")
	f.String("base-url", "", "Override the provider endpoint, e.g. an OpenAI-compatible server")
	f.String("language", "", "Prompt and message language: pl (default) or en")
	f.String("rules", "", "Detection rules: a built-in set (pl, en, default) or a rule file")
	f.Bool("auto-select", true, "Check or click the answer after highlighting it")
	f.Duration("delay", 0, "Wait between highlighting and selecting; 0 selects at once (default 300ms)")
	f.Duration("oracle-timeout", 0, "Bound each oracle call; 0 waits indefinitely")
	f.String("cache-dir", "", "Cache oracle answers and fetched pages in this directory")
	f.BoolP("verbose", "v", false, "Verbose logging")

	root.AddCommand(
		newSolveCmd(),
		newScreenshotCmd(),
		newDetectCmd(),
		newCheckCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig layers flags over env over the config file.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	flags := cmd.Flags()
	envFiles, _ := flags.GetStringSlice("env-file")
	if err := app.LoadEnvFiles(envFiles...); err != nil {
		return app.Config{}, fmt.Errorf("load env files: %w", err)
	}

	var cfg app.Config
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	dur := func(name string, dst *time.Duration) {
		if flags.Changed(name) {
			*dst, _ = flags.GetDuration(name)
		}
	}
	str("provider", &cfg.Provider)
	str("api-key", &cfg.APIKey)
	str("model", &cfg.Model)
	str("base-url", &cfg.BaseURL)
	str("language", &cfg.Language)
	str("rules", &cfg.Rules)
	str("cache-dir", &cfg.CacheDir)
	if flags.Changed("delay") {
		d, _ := flags.GetDuration("delay")
		cfg.SelectDelay = &d
	}
	dur("oracle-timeout", &cfg.OracleTimeout)
	if flags.Changed("auto-select") {
		v, _ := flags.GetBool("auto-select")
		cfg.AutoSelect = &v
	}
	cfg.Verbose, _ = flags.GetBool("verbose")
	if flags.Lookup("browser-url") != nil {
		str("browser-url", &cfg.BrowserURL)
	}
	if flags.Lookup("headful") != nil {
		cfg.Headful, _ = flags.GetBool("headful")
	}

	app.ApplyEnvToConfig(&cfg)
	if path, _ := flags.GetString("config"); path != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, app.ValidateConfig(cfg)
}

// notifier prints notices to the command's output, in color on a terminal.
func notifier(cmd *cobra.Command) report.Notifier {
	w := cmd.OutOrStdout()
	if f, ok := w.(*os.File); ok {
		return report.NewConsole(f)
	}
	return report.NewConsoleWriter(w, false)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quizlens %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		},
	}
}
