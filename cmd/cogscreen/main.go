package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cognitive_screen/internal/analysis"
	"cognitive_screen/internal/config"
	"cognitive_screen/internal/db"
	"cognitive_screen/internal/logging"
	"cognitive_screen/internal/longitudinal"
	"cognitive_screen/internal/summary"
	"cognitive_screen/internal/workspace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// app carries the resolved config and logger shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	workspace  string
	dbPath     string

	cfg    *config.Config
	log    *logrus.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "cogscreen",
		Short:         "Screen conversation transcripts for linguistic markers of cognitive decline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default config/$CONFIG_ENV/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.workspace, "workspace", "", "workspace directory (default ~/"+workspace.BaseDirName+")")
	flags.StringVar(&a.dbPath, "db", "", "history database path (default <workspace>/db/history.db)")

	root.AddCommand(
		newAnalyzeCmd(a),
		newLongitudinalCmd(a),
		newHistoryCmd(a),
		newInitCmd(a),
	)

	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.workspace != "" {
		cfg.Workspace = a.workspace
	}
	if a.dbPath != "" {
		cfg.DB = a.dbPath
	}
	logger, err := logging.New(cfg.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	return nil
}

func (a *app) analyzer() *analysis.Analyzer {
	return analysis.New(
		analysis.WithThresholds(a.cfg.Thresholds),
		analysis.WithLogger(logging.Stage(a.log)),
	)
}

func (a *app) longitudinal(an *analysis.Analyzer) *longitudinal.Analyzer {
	return longitudinal.New(an,
		longitudinal.WithWorkers(a.cfg.Workers),
		longitudinal.WithCrossSessionTimeout(a.cfg.CrossSessionTimeout),
		longitudinal.WithLogger(logging.Stage(a.log)),
	)
}

func (a *app) workspaceRoot() (string, error) {
	if a.cfg.Workspace != "" {
		return workspace.EnsureAt(a.cfg.Workspace)
	}
	return workspace.EnsureDefault()
}

// subject resolves the workspace, the subject directory and its history store.
// The caller closes the store.
func (a *app) subject(name string) (*workspace.SubjectInfo, *db.Store, error) {
	root, err := a.workspaceRoot()
	if err != nil {
		return nil, nil, err
	}
	info, err := workspace.CreateSubject(root, name)
	if err != nil {
		return nil, nil, err
	}
	path := a.cfg.DB
	if path == "" {
		path = workspace.DBPath(root)
	}
	store, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return info, store, nil
}

func (a *app) summarizer() (summary.Summarizer, error) {
	s := a.cfg.Summary
	return summary.NewOpenAI(s.APIKey,
		summary.WithModel(s.Model),
		summary.WithBaseURL(s.BaseURL),
		summary.WithMaxTokens(s.MaxTokens),
	)
}
