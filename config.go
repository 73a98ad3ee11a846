package main

import (
	"fmt"
	"path"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the servers YAML configuration.
type Config struct {
	Listen      ConfigListen
	Appdir      string
	Cachedir    string
	Dbdir       string
	Logfile     string
	Database    ConfigDatabase
	Collections []ConfigCollection
	Jellyfin    ConfigJellyfin
}

type ConfigListen struct {
	// Address to bind to, "::" binds all interfaces.
	Address string
	Port    int
	// TlsCert and TlsKey enable HTTPS when both are set.
	TlsCert string
	TlsKey  string
}

// ConfigCollection describes one content directory to serve.
type ConfigCollection struct {
	// ID is optional, derived from the name when empty.
	ID   string
	Name string
	// Type is "movies" or "shows".
	Type      string
	Directory string
	// BaseUrl is a cosmetic URL prefix used in native API responses.
	BaseUrl string
	// HlsServer is the URL of an external HLS transcoder for this
	// collection, if any.
	HlsServer string
}

type ConfigDatabase struct {
	Sqlite ConfigSqlite
}

type ConfigSqlite struct {
	// Filename of the SQLite database, {dbdir}/tink-items.db when empty.
	Filename string
}

type ConfigJellyfin struct {
	// ServerID overrides the generated server ID.
	ServerID string
	// ServerName is name of server returned in info responses.
	ServerName string
	// AutoRegister creates unknown users at login.
	AutoRegister bool
	// ImageQualityPoster is the JPEG quality for resized posters.
	ImageQualityPoster int
}

// loadConfig reads the config file named by the --config flag.
func loadConfig() (*Config, error) {
	configFile := pflag.String("config", "jellofin-server.yaml", "Path of configuration file")
	pflag.Parse()
	return readConfig(*configFile)
}

func readConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetDefault("listen.address", "::")
	v.SetDefault("listen.port", 8096)
	v.SetDefault("cachedir", "./cache")
	v.SetDefault("jellyfin.imagequalityposter", 90)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", configFile, err)
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", configFile, err)
	}
	if config.Database.Sqlite.Filename == "" {
		config.Database.Sqlite.Filename = path.Join(config.Dbdir, "tink-items.db")
	}
	if len(config.Collections) == 0 {
		return nil, fmt.Errorf("%s defines no collections", configFile)
	}
	return &config, nil
}
