package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPort        = 5000
	DefaultServiceName = "hello-metrics"
	// DefaultAlertMaxBodyBytes sits far above what Alertmanager sends even
	// for large alert groups.
	DefaultAlertMaxBodyBytes int64 = 32 << 20
)

type Config struct {
	Port    int           `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	OTel    OTelConfig    `mapstructure:"otel"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Alert   AlertConfig   `mapstructure:"alert"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type OTelConfig struct {
	// Endpoint of an OTLP/gRPC collector. Empty disables span export.
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type MetricsConfig struct {
	RuntimeCollectors bool `mapstructure:"runtime_collectors"`
}

type AlertConfig struct {
	// MaxBodyBytes caps how much of a webhook body is read.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// Addr is the listen address; the server binds every interface.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from defaults, an optional config.yaml in the
// working directory, the environment and, when given, command line flags,
// in increasing order of precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service_name", DefaultServiceName)
	v.SetDefault("metrics.runtime_collectors", false)
	v.SetDefault("alert.max_body_bytes", DefaultAlertMaxBodyBytes)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("otel.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("otel.service_name", "OTEL_SERVICE_NAME")
	_ = v.BindEnv("metrics.runtime_collectors", "METRICS_RUNTIME_COLLECTORS")
	_ = v.BindEnv("alert.max_body_bytes", "ALERT_MAX_BODY_BYTES")

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err := v.BindPFlag("port", f); err != nil {
				return nil, fmt.Errorf("binding port flag: %w", err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.Alert.MaxBodyBytes <= 0 {
		return fmt.Errorf("alert max body bytes must be positive, got %d", c.Alert.MaxBodyBytes)
	}
	return nil
}
