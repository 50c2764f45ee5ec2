// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver              string        `mapstructure:"DB_DRIVER"`
	DBSource              string        `mapstructure:"DB_SOURCE"`
	MigrationsPath        string        `mapstructure:"MIGRATIONS_PATH"`
	ServerAddress         string        `mapstructure:"SERVER_ADDRESS"`
	TokenSymmetricKey     string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration   time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration  time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	StartingBalance       string        `mapstructure:"STARTING_BALANCE"`
	TiingoBaseURL         string        `mapstructure:"TIINGO_BASE_URL"`
	TiingoToken           string        `mapstructure:"TIINGO_TOKEN"`
	CoinCapBaseURL        string        `mapstructure:"COINCAP_BASE_URL"`
	QuoteTimeout          time.Duration `mapstructure:"QUOTE_TIMEOUT"`
	QuoteRateLimit        int           `mapstructure:"QUOTE_RATE_LIMIT"`
	QuoteCacheAddress     string        `mapstructure:"QUOTE_CACHE_ADDRESS"`
	QuoteCacheTTL         time.Duration `mapstructure:"QUOTE_CACHE_TTL"`
	CollabRequestExpiry   time.Duration `mapstructure:"COLLAB_REQUEST_EXPIRY"`
	CollabSplitSettlement bool          `mapstructure:"COLLAB_SPLIT_SETTLEMENT"`
	Environement          string        `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
