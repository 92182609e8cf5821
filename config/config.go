package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all client configuration. It is constructed once at startup
// and injected into each service; nothing mutates it afterwards, so a single
// instance is safe to share between concurrent calls.
type Config struct {
	Debug     bool
	File      FileConfig
	FTP       FTPConfig
	Endpoints EndpointConfig
	Log       LogConfig
}

// FileConfig holds settings for files fetched from the vendor.
type FileConfig struct {
	Encoding string // character encoding of the inventory feed
}

// FTPConfig holds FTP connection settings for the inventory drop.
type FTPConfig struct {
	Host           string
	Port           int
	Directory      string
	TimeoutSeconds int
}

// EndpointConfig holds the SOAP service endpoint URLs. The defaults point at
// the vendor's production services; overriding them is only useful for
// testing against a mock server.
type EndpointConfig struct {
	AddressURL string
	OrderURL   string
	ItemURL    string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Default endpoint URLs for the vendor's SOAP services.
const (
	DefaultAddressURL = "https://shop2.gzanders.com/webservice/shiptoaddresses?wsdl"
	DefaultOrderURL   = "https://shop2.gzanders.com/webservice/orders?wsdl"
	DefaultItemURL    = "https://shop2.gzanders.com/webservice/items?wsdl"
)

// Default FTP and file settings.
const (
	DefaultFTPHost      = "ftp2.gzanders.com"
	DefaultFTPPort      = 21
	DefaultFTPDirectory = "Inventory/AmmoReady"
	DefaultFileEncoding = "Windows-1252"
)

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with ZANDERS_ prefix (e.g. ZANDERS_FTP_HOST)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ZANDERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Debug: v.GetBool("debug"),
		File: FileConfig{
			Encoding: v.GetString("file.encoding"),
		},
		FTP: FTPConfig{
			Host:           v.GetString("ftp.host"),
			Port:           v.GetInt("ftp.port"),
			Directory:      v.GetString("ftp.directory"),
			TimeoutSeconds: v.GetInt("ftp.timeout_seconds"),
		},
		Endpoints: EndpointConfig{
			AddressURL: v.GetString("endpoints.address_url"),
			OrderURL:   v.GetString("endpoints.order_url"),
			ItemURL:    v.GetString("endpoints.item_url"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a configuration with all defaults applied and no file or
// environment lookups. Useful for embedding the client in a larger program
// that owns its own configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.File.Encoding == "" {
		cfg.File.Encoding = DefaultFileEncoding
	}
	if cfg.FTP.Host == "" {
		cfg.FTP.Host = DefaultFTPHost
	}
	if cfg.FTP.Port == 0 {
		cfg.FTP.Port = DefaultFTPPort
	}
	if cfg.FTP.Directory == "" {
		cfg.FTP.Directory = DefaultFTPDirectory
	}
	if cfg.FTP.TimeoutSeconds == 0 {
		cfg.FTP.TimeoutSeconds = 30
	}
	if cfg.Endpoints.AddressURL == "" {
		cfg.Endpoints.AddressURL = DefaultAddressURL
	}
	if cfg.Endpoints.OrderURL == "" {
		cfg.Endpoints.OrderURL = DefaultOrderURL
	}
	if cfg.Endpoints.ItemURL == "" {
		cfg.Endpoints.ItemURL = DefaultItemURL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.FTP.Port <= 0 || c.FTP.Port > 65535 {
		return fmt.Errorf("ftp.port must be between 1 and 65535, got %d", c.FTP.Port)
	}
	if c.FTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("ftp.timeout_seconds must be positive")
	}

	return nil
}

// FTPAddr returns the host:port address of the vendor FTP server.
func (f *FTPConfig) FTPAddr() string {
	return fmt.Sprintf("%s:%d", f.Host, f.Port)
}
