package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/listvision-mcp/internal/config"
	"github.com/ironsheep/listvision-mcp/internal/logging"
	"github.com/ironsheep/listvision-mcp/internal/rows"
	"github.com/ironsheep/listvision-mcp/internal/vision"
)

// BuildInfo is stamped into the binary by the linker.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	info     BuildInfo
	cfgPath  string
	logLevel string

	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
}

// Execute runs the CLI with os.Args.
func Execute(info BuildInfo) error {
	return newRootCmd(info).Execute()
}

func newRootCmd(info BuildInfo) *cobra.Command {
	a := &app{info: info, closeLog: func() error { return nil }}

	root := &cobra.Command{
		Use:           "listvision",
		Short:         "Ordered list editor and image detection over MCP",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default ~/.config/listvision/config.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(serveCmd(a), editCmd(a), detectCmd(a), rowsCmd(a), versionCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
		File:    cfg.Log.File,
		Journal: cfg.Log.Journal,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog
	logger.Debug("listvision starting",
		"version", a.info.Version,
		"command", cmd.Name())
	return nil
}

// newController builds the row list from the configured seed.
func (a *app) newController() *rows.Controller {
	c := rows.NewController(a.cfg.Rows.Seed)
	placeholder := a.cfg.Rows.Placeholder
	c.Placeholder = func(int) string { return placeholder }
	return c
}

// newDetector builds a detection service with the built-in backends and
// the configured policies.
func (a *app) newDetector() *vision.Service {
	opts := []vision.Option{vision.WithLogger(a.logger)}
	for kind, p := range a.cfg.Vision.Policies() {
		opts = append(opts, vision.WithPolicy(kind, p))
	}
	s := vision.New(opts...)
	vision.RegisterDefaults(s, a.cfg.Vision.BackendOptions())
	return s
}
