package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds every per-deployment setting, read from the environment.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	AWSRegion  string `mapstructure:"aws_region"`
	AWSRoleArn string `mapstructure:"aws_role_arn"`

	ConfigBucket string            `mapstructure:"config_bucket"`
	ReportTypes  map[string]string `mapstructure:"report_types"`

	SlackAPIURL    string `mapstructure:"slack_api_url"`
	SlackAPIKey    string `mapstructure:"slack_api_key"`
	CentralChannel string `mapstructure:"central_channel"`

	PagerDutyAPIURL string `mapstructure:"pagerduty_api_url"`
	ClientName      string `mapstructure:"client_name"`
	ClientURL       string `mapstructure:"client_url"`

	EnforceGithubWikiDisabled bool     `mapstructure:"enforce_github_wiki_disabled"`
	KnownWebhookHosts         []string `mapstructure:"known_webhook_hosts"`

	ServerHost string `mapstructure:"server_host"`
	ServerPort string `mapstructure:"server_port"`
}

// Load reads configuration from ALERTING_* environment variables.
// Missing required settings and an unparseable log level are fatal.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("alerting")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("central_channel", "central")
	v.SetDefault("client_name", "compliance-alerting")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")

	// viper only unmarshals env-backed keys it has seen
	for _, key := range []string{
		"aws_region", "aws_role_arn", "config_bucket", "report_types",
		"slack_api_url", "slack_api_key", "pagerduty_api_url", "client_url",
		"enforce_github_wiki_disabled", "known_webhook_hosts",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	cfg.ReportTypes = v.GetStringMapString("report_types")
	cfg.KnownWebhookHosts = v.GetStringSlice("known_webhook_hosts")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"ALERTING_CONFIG_BUCKET", c.ConfigBucket},
		{"ALERTING_SLACK_API_URL", c.SlackAPIURL},
		{"ALERTING_SLACK_API_KEY", c.SlackAPIKey},
	}
	var missing []string
	for _, setting := range required {
		if setting.value == "" {
			missing = append(missing, setting.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed zerolog level. Load has already validated it.
func (c *Config) Level() zerolog.Level {
	level, _ := zerolog.ParseLevel(c.LogLevel)
	return level
}
