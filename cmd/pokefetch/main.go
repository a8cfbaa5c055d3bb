package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/avdejs/pokefetch/pkg/cache"
	"github.com/avdejs/pokefetch/pkg/client"
	"github.com/avdejs/pokefetch/pkg/logging"
	"github.com/avdejs/pokefetch/pkg/state"
)

func main() {
	// Configuration from environment (POKEFETCH_ prefix)
	viper.SetEnvPrefix("pokefetch")
	viper.AutomaticEnv()
	viper.SetDefault("user_agent", "pokefetch/0.1.0")
	viper.SetDefault("page_limit", client.DefaultLimit)
	viper.SetDefault("redis_addr", "")
	viper.SetDefault("cache_freshness", cache.DefaultFreshness)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_pretty", true)

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(viper.GetString("log_level")),
		Pretty: viper.GetBool("log_pretty"),
		Output: os.Stderr,
	})

	cfg := client.DefaultConfig(viper.GetString("user_agent"))
	cfg.Cache = setupCache()

	apiClient, err := client.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}

	listState := state.New(apiClient, viper.GetInt("page_limit"))

	program := tea.NewProgram(newModel(listState, viper.GetInt("page_limit")), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupCache connects the optional Redis page cache. An unreachable
// Redis only disables caching, it never blocks startup.
func setupCache() *cache.Manager {
	addr := viper.GetString("redis_addr")
	if addr == "" {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("Redis unreachable, page cache disabled")
		redisClient.Close()
		return nil
	}

	return cache.NewManager(redisClient, viper.GetDuration("cache_freshness"))
}
