package gardenaConfig

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaClient"
)

type Config struct {
	Gardena struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		BaseUrl  string `mapstructure:"baseurl"`
		Timeout  int    `mapstructure:"timeout"`
	} `mapstructure:"gardena"`
	Metrics struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Influxdb struct {
		Host   string `mapstructure:"host"`
		Token  string `mapstructure:"token"`
		Org    string `mapstructure:"org"`
		Bucket string `mapstructure:"bucket"`
	} `mapstructure:"influxdb"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gardena.username", "")
	v.SetDefault("gardena.password", "")
	v.SetDefault("gardena.baseurl", gardenaClient.DefaultBaseURL)
	v.SetDefault("gardena.timeout", 30)
	v.SetDefault("metrics.port", "9124")
	v.SetDefault("influxdb.host", "http://localhost:8086")
	v.SetDefault("influxdb.token", "")
	v.SetDefault("influxdb.org", "")
	v.SetDefault("influxdb.bucket", "gardena")
}

// Load reads the yaml file at path on top of the defaults. A missing file is
// not an error. Every key can be overridden from the environment, e.g.
// gardena.password by GARDENA_GARDENA_PASSWORD.
func Load(path string, sugar *zap.SugaredLogger) (Config, error) {
	var c Config
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetEnvPrefix("gardena")
	v.SetConfigType("yaml")

	cfg, err := os.ReadFile(path)
	if err != nil {
		sugar.Info("No configuration file found. Using Default config")
	}
	if err := v.ReadConfig(bytes.NewBuffer(cfg)); err != nil {
		return c, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	sugar.Infof("Configuration from %s: baseurl=%s user=%s metrics.port=%s", path, c.Gardena.BaseUrl, c.Gardena.Username, c.Metrics.Port)
	return c, nil
}

// HubOptions maps the gardena section onto client options.
func (c Config) HubOptions() []gardenaClient.Option {
	opts := []gardenaClient.Option{gardenaClient.WithBaseURL(c.Gardena.BaseUrl)}
	if c.Gardena.Timeout > 0 {
		opts = append(opts, gardenaClient.WithTimeout(time.Duration(c.Gardena.Timeout)*time.Second))
	}
	return opts
}

// NewLogger builds a production logger writing to stdout and, if set, to
// logFile.
func NewLogger(logFile string) (*zap.Logger, error) {
	paths := []string{"stdout"}
	if logFile != "" {
		paths = append(paths, logFile)
	}
	return LoggerConfig(paths...).Build()
}

// LoggerConfig is the production config writing to the given zap sink paths.
func LoggerConfig(paths ...string) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = paths
	return cfg
}
