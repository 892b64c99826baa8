package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("MEMEMASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "lobbyd",
		Short: "Lobby coordinator for local party games",
		Long: `lobbyd coordinates party-game lobbies: room codes, join handshakes
and roster management, relayed to browsers over HTTP, SSE and websockets.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfg.bind, "bind", "b", cfg.bind, "address to bind to (env: MEMEMASTER_BIND)")
	pf.IntVarP(&cfg.port, "port", "p", cfg.port, "port to listen on (env: MEMEMASTER_PORT)")
	pf.StringVar(&cfg.baseURL, "base-url", cfg.baseURL, "externally reachable URL for join links (env: MEMEMASTER_BASE_URL)")
	pf.StringVar(&cfg.storage, "storage", cfg.storage, "storage backend: memory or redis (env: MEMEMASTER_STORAGE)")
	pf.StringVar(&cfg.redisURL, "redis-url", cfg.redisURL, "redis connection URL (env: MEMEMASTER_REDIS_URL)")
	pf.StringVar(&cfg.imageURL, "image-url", cfg.imageURL, "random image source URL (env: MEMEMASTER_IMAGE_URL)")
	pf.IntVar(&cfg.minPlayers, "min-players", cfg.minPlayers, "players required to start a game (env: MEMEMASTER_MIN_PLAYERS)")
	pf.BoolVarP(&cfg.verbose, "verbose", "v", cfg.verbose, "enable debug logging (env: MEMEMASTER_VERBOSE)")

	// Flags take their value from the environment unless set explicitly
	pf.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = pf.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newDemoCmd(cfg))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger from config
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
