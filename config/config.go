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

type cache struct {
	TTL          time.Duration `mapstructure:"ttl"`
	MaxRows      int           `mapstructure:"max_rows"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type topics struct {
	CatalogEvents string `mapstructure:"catalog_events"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type imageStore struct {
	BaseURL    string `mapstructure:"base_url"`
	Bucket     string `mapstructure:"bucket"`
	ServiceKey string `mapstructure:"service_key"`
}

type CategoryMeta struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Image       string `mapstructure:"image"`
}

type catalog struct {
	Categories   map[string]CategoryMeta `mapstructure:"categories"`
	DefaultImage string                  `mapstructure:"default_image"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	AdminToken     string     `mapstructure:"admin_token"`
	Cache          cache      `mapstructure:"cache"`
	Broker         broker     `mapstructure:"broker"`
	ImageStore     imageStore `mapstructure:"image_store"`
	Catalog        catalog    `mapstructure:"catalog"`
}

func Load() Config {
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
	SQLDB=%q

	Cache:
	TTL=%q
	MaxRows=%d
	FetchTimeout=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogEvents=%q

	ImageStore:
	BaseURL=%q
	Bucket=%q

	Catalog:
	Categories=%d mapped
	DefaultImage=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Cache.TTL,
		c.Cache.MaxRows,
		c.Cache.FetchTimeout,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogEvents,
		c.ImageStore.BaseURL,
		c.ImageStore.Bucket,
		len(c.Catalog.Categories),
		c.Catalog.DefaultImage,
	)
}
