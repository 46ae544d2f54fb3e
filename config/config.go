package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type catalog struct {
	Size int    `mapstructure:"size"`
	Seed uint64 `mapstructure:"seed"`
}

type search struct {
	SearchingDelay time.Duration `mapstructure:"searching_delay"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	HistoryDBPath  string     `mapstructure:"history_db_path"`
	Catalog        catalog    `mapstructure:"catalog"`
	Search         search     `mapstructure:"search"`
}

func Load() Config {
	viper.SetDefault("http_server_addr", ":8080")
	viper.SetDefault("history_db_path", "./storefront-db")
	viper.SetDefault("catalog.size", 20)
	viper.SetDefault("catalog.seed", 0)
	viper.SetDefault("search.searching_delay", 500*time.Millisecond)

	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HistoryDBPath=%q

	Catalog:
	Size=%d
	Seed=%d

	Search:
	SearchingDelay=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HistoryDBPath,
		c.Catalog.Size,
		c.Catalog.Seed,
		c.Search.SearchingDelay,
	)
}
