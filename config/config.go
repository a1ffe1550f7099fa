package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig carries every timing and sizing knob of a game.
// Seconds are plain ints so they can come straight from yaml/env.
type GameConfig struct {
	MaxPlayers        int `mapstructure:"max_players"`
	TotalRounds       int `mapstructure:"total_rounds"`
	TurnSeconds       int `mapstructure:"turn_seconds"`
	RoundStartDelay   int `mapstructure:"round_start_delay"`
	TurnEndDelay      int `mapstructure:"turn_end_delay"`
	RoundEndDelay     int `mapstructure:"round_end_delay"`
	EarlyEndDelay     int `mapstructure:"early_end_delay"`
	CandidatesPerTurn int `mapstructure:"candidates_per_turn"`
}

func setDefaults() {
	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9100")

	viper.SetDefault("game.max_players", 8)
	viper.SetDefault("game.total_rounds", 3)
	viper.SetDefault("game.turn_seconds", 90)
	viper.SetDefault("game.round_start_delay", 3)
	viper.SetDefault("game.turn_end_delay", 6)
	viper.SetDefault("game.round_end_delay", 8)
	viper.SetDefault("game.early_end_delay", 2)
	viper.SetDefault("game.candidates_per_turn", 3)
}

// LoadConfig reads config.yaml from path. A missing file is not an error;
// defaults plus environment variables apply.
func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	setDefaults()
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
