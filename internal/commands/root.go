package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/tally/internal/app"
	"github.com/balkashynov/tally/internal/config"
	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/logger"
	"github.com/balkashynov/tally/internal/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile     string
	options     *config.Options
	application *app.App
	closeApp    = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "A CLI todo list with subtasks and progress",
	Long: `tally keeps a todo list per user: primary tasks, subtasks you tick off,
and a progress bar per task. Admins can create users and read the audit log.
Use it from the command line, the interactive UI (tally ui) or over HTTP (tally serve).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// initApp resolves the configuration, opens the storage backend and builds the app
func initApp(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	opts, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, opts)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cmd.Context(), opts)
	if err != nil {
		_ = log.Sync()
		return err
	}
	log.Debug("storage ready", zap.String("backend", opts.Backend))

	options = opts
	application = app.New(store, log)
	closeApp = func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
		_ = log.Sync()
	}
	return nil
}

// newLogger logs to stderr, except under the TUI which owns the terminal
func newLogger(cmd *cobra.Command, opts *config.Options) (*zap.Logger, error) {
	if cmd.Name() != "ui" {
		return logger.New(opts.LogLevel)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".tally")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return logger.NewFile(opts.LogLevel, filepath.Join(dir, "tally.log"))
}

// openStore opens the configured backend and returns it with its closer
func openStore(ctx context.Context, opts *config.Options) (db.Store, func() error, error) {
	switch opts.Backend {
	case config.BackendRedis:
		client, err := db.OpenRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return db.NewRedisStore(client, opts.RedisPrefix), client.Close, nil
	case config.BackendMemory:
		return db.NewMemoryStore(), func() error { return nil }, nil
	default:
		path := opts.DBPath
		if path == "" {
			var err error
			if path, err = db.DefaultPath(); err != nil {
				return nil, nil, err
			}
		}
		gdb, err := db.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return db.NewSQLStore(gdb), func() error { return db.Close(gdb) }, nil
	}
}

// withApp wraps a command function to build the app first and release it after
func withApp(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := initApp(cmd); err != nil {
			return err
		}
		defer closeApp()
		return fn(cmd, args)
	}
}

// currentSession returns the persisted login, or an error saying there is none
func currentSession(cmd *cobra.Command) (models.Session, error) {
	return application.Sessions.Current(cmd.Context())
}

// adminSession is currentSession restricted to admins
func adminSession(cmd *cobra.Command) (models.Session, error) {
	session, err := currentSession(cmd)
	if err != nil {
		return models.Session{}, err
	}
	if err := app.RequireAdmin(session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tally %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command, printing any error
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ~/.tally/config.yaml)")
	flags.String("backend", config.BackendSQLite, "Storage backend: sqlite|redis|memory (memory keeps nothing between runs, use it with ui or serve)")
	flags.String("db", "", "SQLite database path (default ~/.tally/tally.db)")
	flags.String("redis-url", "", "Redis URL for the redis backend")
	flags.String("log-level", "warn", "Log level: debug|info|warn|error")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(subCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
