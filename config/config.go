// Package config loads the client-side settings: RPC endpoints, commitment,
// and the key paths used by the trading and graduation flows.
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	RPCURL       string `mapstructure:"rpc_url"`
	WebSocketURL string `mapstructure:"websocket_url"`
	Commitment   string `mapstructure:"commitment"`

	PayerKeyPath string `mapstructure:"payer_key_path"`
	AdminKeyPath string `mapstructure:"admin_key_path"`

	SlippageBps  uint16 `mapstructure:"slippage_bps"`
	SendRetries  int    `mapstructure:"send_retries"`
	DebugLogging bool   `mapstructure:"debug_logging"`
}

const (
	DefaultCommitment  = "confirmed"
	DefaultSlippageBps = 100
	DefaultSendRetries = 3

	envPrefix = "LAUNCHR"
)

// Load reads the config file at path, applies defaults and LAUNCHR_*
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"commitment":   DefaultCommitment,
		"slippage_bps": DefaultSlippageBps,
		"send_retries": DefaultSendRetries,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.RPCURL == "" {
		return errors.New("missing rpc_url in configuration")
	}
	if err := validateURL(cfg.RPCURL, "http"); err != nil {
		return err
	}
	if cfg.WebSocketURL != "" {
		if err := validateURL(cfg.WebSocketURL, "ws"); err != nil {
			return err
		}
	}
	switch cfg.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return errors.New("commitment must be processed, confirmed or finalized")
	}
	if cfg.SlippageBps > 10_000 {
		return errors.New("slippage_bps must not exceed 10000")
	}
	if cfg.SendRetries < 0 {
		return errors.New("invalid send_retries")
	}
	return nil
}

func validateURL(rawURL, protocol string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(u.Scheme, protocol) {
		return errors.New("invalid URL protocol: " + rawURL)
	}
	return nil
}
