package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/c9s/signalcore/pkg/service"
	"github.com/c9s/signalcore/pkg/types"
)

// SubscriptionConfig binds one symbol/interval to a strategy and a trigger
// policy.
type SubscriptionConfig struct {
	Exchange types.ExchangeName `yaml:"exchange" json:"exchange"`
	Symbol   string             `yaml:"symbol" json:"symbol"`
	Interval types.Interval     `yaml:"interval" json:"interval"`

	Strategy string `yaml:"strategy" json:"strategy"`
	Trigger  string `yaml:"trigger" json:"trigger"`

	// Params is passed to the strategy factory as-is.
	Params map[string]interface{} `yaml:"params,omitempty" json:"params,omitempty"`
}

// ParamsJSON re-encodes the strategy parameters for the strategy catalog.
func (c *SubscriptionConfig) ParamsJSON() (json.RawMessage, error) {
	if len(c.Params) == 0 {
		return nil, nil
	}

	return json.Marshal(c.Params)
}

type PersistenceConfig struct {
	// Type selects the snapshot store backend: memory, json or redis.
	Type string `yaml:"type" json:"type"`

	Redis *service.RedisPersistenceConfig `yaml:"redis,omitempty" json:"redis,omitempty"`
	Json  *service.JsonPersistenceConfig  `yaml:"json,omitempty" json:"json,omitempty"`
}

type SlackSinkConfig struct {
	Token   string `yaml:"token" json:"token"`
	Channel string `yaml:"channel" json:"channel"`
}

type DatabaseSinkConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	DSN    string `yaml:"dsn" json:"dsn"`
}

type SinkConfig struct {
	Log      bool                `yaml:"log" json:"log"`
	Slack    *SlackSinkConfig    `yaml:"slack,omitempty" json:"slack,omitempty"`
	Database *DatabaseSinkConfig `yaml:"database,omitempty" json:"database,omitempty"`
}

type Config struct {
	EvaluationTimeout types.Duration `yaml:"evaluationTimeout,omitempty" json:"evaluationTimeout,omitempty"`

	MetricsAddr string `yaml:"metricsAddr,omitempty" json:"metricsAddr,omitempty"`

	Persistence *PersistenceConfig `yaml:"persistence,omitempty" json:"persistence,omitempty"`

	Sinks SinkConfig `yaml:"sinks" json:"sinks"`

	Subscriptions []SubscriptionConfig `yaml:"subscriptions" json:"subscriptions"`
}

func (c *Config) Validate() error {
	for i, sub := range c.Subscriptions {
		if sub.Exchange == "" || sub.Symbol == "" {
			return errors.Errorf("subscription #%d: exchange and symbol are required", i)
		}

		if !sub.Interval.IsValid() {
			return errors.Errorf("subscription #%d: unsupported interval %q", i, sub.Interval)
		}

		if sub.Strategy == "" || sub.Trigger == "" {
			return errors.Errorf("subscription #%d: strategy and trigger are required", i)
		}
	}

	if c.Persistence != nil {
		switch c.Persistence.Type {
		case "memory":
		case "json":
			if c.Persistence.Json == nil {
				return errors.New("persistence: json backend requires a directory")
			}
		case "redis":
			if c.Persistence.Redis == nil {
				return errors.New("persistence: redis backend requires connection settings")
			}
		default:
			return errors.Errorf("persistence: unsupported type %q", c.Persistence.Type)
		}
	}

	return nil
}

// BuildPersistence constructs the snapshot store selected by the config,
// or nil when persistence is not configured.
func (c *Config) BuildPersistence() (service.PersistenceService, error) {
	if c.Persistence == nil {
		return nil, nil
	}

	switch c.Persistence.Type {
	case "memory":
		return service.NewMemoryService(), nil

	case "json":
		return &service.JsonPersistenceService{Directory: c.Persistence.Json.Directory}, nil

	case "redis":
		return service.NewRedisPersistenceService(c.Persistence.Redis), nil
	}

	return nil, errors.Errorf("unsupported persistence type %q", c.Persistence.Type)
}

func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, errors.Wrapf(err, "can not parse config file %s", configFile)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
