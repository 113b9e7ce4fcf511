// Package cli implements the recipe-match CLI commands.
package cli

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rcliao/recipe-match/internal/config"
	"github.com/rcliao/recipe-match/internal/logger"
	"github.com/rcliao/recipe-match/internal/sample"
	"github.com/rcliao/recipe-match/internal/store"
)

// memoryCorpusSize is how many sample recipes the memory backend starts with.
const memoryCorpusSize = 500

var (
	configPath string
	formatFlag string

	cfg *config.Config
	log *zap.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "recipe-match",
	Short: "Constraint-based recipe recommendations",
	Long: "Recommend one recipe per meal slot from a local recipe corpus. " +
		"Preferences become filters; when nothing matches, constraints are relaxed in a fixed order.",
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default: ./recipe-match.yaml or ~/.recipe-match/recipe-match.yaml)")
	flags.StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	flags.StringP("db", "d", "", "Store path (default: $RECIPE_MATCH_STORE_PATH or ~/.recipe-match/recipes.db)")
	flags.String("backend", "", "Store backend: sqlite, memory or badger")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"store.path":    "db",
		"store.backend": "backend",
		"log.level":     "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	var err error
	cfg, err = config.Load(v, configPath)
	if err != nil {
		return err
	}

	log, err = logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	return err
}

func openStore() (store.Store, error) {
	path := cfg.Store.ResolvedPath()
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(sample.New(cfg.Engine.Seed).Corpus(memoryCorpusSize)...), nil
	case "badger":
		return store.NewBadgerStore(path)
	default:
		return store.NewSQLiteStore(path)
	}
}

func newRand() *rand.Rand {
	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func textFormat() bool {
	return formatFlag == "text"
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func exitErr(msg string, err error) {
	if log != nil {
		log.Debug("command failed", zap.String("op", msg), zap.Error(err))
	}
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
