package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TFMV/dirwalk/internal/logging"
	dirwalk "github.com/TFMV/dirwalk/internal/walk"
)

var version = "0.1.0"

// Execute runs the dirwalk command line against the process arguments.
func Execute() error {
	// Writes to a closed pipe must come back as EPIPE rather than kill us.
	signal.Ignore(syscall.SIGPIPE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree writing paths to stdout.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "dirwalk [dir] [options]",
		Short: "List a directory tree by entry type",
		Long: `dirwalk recursively lists the entries beneath a directory, one path per line.

Symbolic links are reported but never followed. With no type options every
entry is listed; -l, -d and -f restrict the listing to links, directories and
regular files and may be combined. -s sorts the output using the collation
order of LC_ALL, LC_COLLATE or LANG.

With --watch, dirwalk keeps running after the listing and prints every new
entry that matches the type options. New directories are listed with their
contents and watched in turn. Sorting is not available in watch mode.

dirwalk has no subcommands: the first argument is always the directory, so
"dirwalk help" lists ./help.

Examples:
  dirwalk
  dirwalk /etc -d
  dirwalk src -fl -s
  dirwalk /var/spool -f --watch --watch-timeout=10m
  DIRWALK_SORT=true dirwalk ./docs`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	// The first argument is a directory, never a command name.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.dirwalk.yaml)")
	flags.BoolP("links", "l", false, "List symbolic links")
	flags.BoolP("dirs", "d", false, "List directories")
	flags.BoolP("files", "f", false, "List regular files")
	flags.BoolP("sort", "s", false, "Sort output by locale collation")
	flags.String("locale", "", "Collation locale (default from LC_ALL, LC_COLLATE, LANG)")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.Bool("silent", false, "Only log errors")
	flags.String("log-format", "console", "Log format (console|json)")
	flags.String("log-file", "", "Also write logs to this file, rotated by size")
	flags.Int("log-max-size", logging.DefaultRotation.MaxSize, "Megabytes before the log file is rotated")
	flags.Int("log-max-backups", logging.DefaultRotation.MaxBackups, "Rotated log files to keep")
	flags.Int("log-max-age", logging.DefaultRotation.MaxAge, "Days to keep rotated log files")
	flags.Bool("log-compress", false, "Gzip rotated log files")
	flags.BoolP("watch", "w", false, "Keep running and list entries as they are created")
	flags.Duration("watch-timeout", 0, "Stop watching after this long (0 means until interrupted)")

	v := newViper(flags)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, logger, err := setup(v, cfgFile, args)
		if err != nil {
			return err
		}
		defer logger.Sync()
		if cfg.Watch {
			return runWatch(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
		}
		return runWalk(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
	}
	return rootCmd
}

// setup reads the config file, resolves the configuration and builds the
// logger.
func setup(v *viper.Viper, cfgFile string, args []string) (Config, *zap.Logger, error) {
	if err := readConfigFile(v, cfgFile); err != nil {
		return Config{}, nil, err
	}
	cfg, err := resolveConfig(v, args, dirwalk.LocaleEnvFromOS())
	if err != nil {
		return Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return Config{}, nil, err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return cfg, logger, nil
}

// runWalk lists cfg.Root to out, streaming or sorted.
func runWalk(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	var sink dirwalk.Sink
	if cfg.Sort {
		compare, err := dirwalk.ResolveComparer(cfg.Locale)
		if err != nil {
			logger.Warn("falling back to byte order", zap.Error(err))
		}
		logger.Debug("collation resolved", zap.String("locale", cfg.Locale))
		sink = dirwalk.NewCollectSink(out, compare)
	} else {
		sink = dirwalk.NewStreamSink(out)
	}

	walker := dirwalk.New(cfg.Filter, sink, logger)
	res, err := walker.Walk(ctx, cfg.Root)
	if err != nil {
		// Whatever was streamed before a cancellation still goes out.
		if s, ok := sink.(*dirwalk.StreamSink); ok && !dirwalk.IsFatal(err) {
			_ = s.Flush()
		}
		return err
	}
	if f, ok := sink.(dirwalk.Flusher); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}

	logger.Debug("walk finished",
		zap.String("root", res.Root),
		zap.Int64("visited", res.Visited),
		zap.Int64("emitted", res.Emitted),
		zap.Int64("dirs", res.Dirs),
		zap.Duration("elapsed", res.Elapsed),
	)
	if res.Partial() {
		logger.Warn("walk completed with isolated errors", zap.Int("errors", len(res.Errors)))
	}
	return nil
}

// IsQuiet reports whether err should end the process without a message.
func IsQuiet(err error) bool {
	return errors.Is(err, dirwalk.ErrBrokenPipe)
}
