package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/preston-bernstein/scoreboard-service/internal/client/api"
	"github.com/preston-bernstein/scoreboard-service/internal/client/storage"
	"github.com/preston-bernstein/scoreboard-service/internal/client/view"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

// Config keys.
const (
	keyServerAddress = "server.address"
	keyServerTimeout = "server.timeout"
	keyStorage       = "storage.backend"
	keyStoragePath   = "storage.path"
	keyColor         = "output.color"
	keyLogLevel      = "logging.level"
	keyLogFile       = "logging.file"
)

// app carries per-invocation dependencies built in PersistentPreRunE.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	cfgFile string

	logger   *slog.Logger
	store    storage.Store
	client   *api.Client
	renderer *view.Renderer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "scorewatch",
		Short:         "Terminal client for the scoreboard service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	flags.StringP("server", "s", "", "service base URL")
	flags.Duration("timeout", 0, "request timeout")
	flags.String("storage", "", "local storage backend: memory, file or sqlite")
	flags.String("storage-path", "", "directory (file) or database path (sqlite)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-file", "", "write logs to a rotating file")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	_ = a.v.BindPFlag(keyServerAddress, flags.Lookup("server"))
	_ = a.v.BindPFlag(keyServerTimeout, flags.Lookup("timeout"))
	_ = a.v.BindPFlag(keyStorage, flags.Lookup("storage"))
	_ = a.v.BindPFlag(keyStoragePath, flags.Lookup("storage-path"))
	_ = a.v.BindPFlag(keyLogFile, flags.Lookup("log-file"))
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		newScoreboardCmd(a),
		newNewsCmd(a),
		newLeaguesCmd(a),
		newFavoritesCmd(a),
		newNotificationsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	a.logger = a.buildLogger()

	store, err := storage.Open(cmd.Context(), a.v.GetString(keyStorage), a.storagePath())
	if err != nil {
		logging.Warn(a.logger, "local storage unavailable, using memory", "error", err)
		store = storage.NewMemoryStore()
	}
	a.store = store

	a.client = api.NewClient(api.Config{
		BaseURL:   a.v.GetString(keyServerAddress),
		UserAgent: "scorewatch/" + version,
		Timeout:   a.v.GetDuration(keyServerTimeout),
	})

	color := a.v.GetBool(keyColor)
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color = false
	}
	a.renderer = view.NewRenderer(color, time.Local)
	return nil
}

func (a *app) loadConfig() error {
	a.v.SetDefault(keyServerAddress, "http://localhost:8080")
	a.v.SetDefault(keyServerTimeout, 15*time.Second)
	a.v.SetDefault(keyStorage, storage.BackendFile)
	a.v.SetDefault(keyColor, true)
	a.v.SetDefault(keyLogLevel, "warn")

	a.v.SetEnvPrefix("SCOREWATCH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
		return nil
	}

	dir, err := configDir()
	if err != nil {
		return nil
	}
	a.v.AddConfigPath(dir)
	a.v.SetConfigName("config")
	a.v.SetConfigType("yaml")
	if err := a.v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) buildLogger() *slog.Logger {
	cfg := logging.Config{
		Level:   a.v.GetString(keyLogLevel),
		Service: "scorewatch",
		Version: version,
		Output:  a.errOut,
		File:    expandHome(a.v.GetString(keyLogFile)),
	}
	if cfg.File != "" {
		// Keep the terminal for rendered output only.
		cfg.Output = io.Discard
	}
	return logging.NewLogger(cfg)
}

func (a *app) storagePath() string {
	if p := a.v.GetString(keyStoragePath); p != "" {
		return expandHome(p)
	}
	dir, err := configDir()
	if err != nil {
		dir = os.TempDir()
	}
	if strings.EqualFold(a.v.GetString(keyStorage), storage.BackendSQLite) {
		return filepath.Join(dir, "state.db")
	}
	return filepath.Join(dir, "state")
}

func (a *app) close() error {
	if closer, ok := a.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "scorewatch"), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
