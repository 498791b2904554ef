package config

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Config holds the server settings.
type Config struct {
	// TriggerCharacters are advertised to the client as completion triggers.
	TriggerCharacters []string `json:"triggerCharacters"`
	// RejectMultipleChanges drops didChange notifications carrying more than
	// one content change instead of applying the first.
	RejectMultipleChanges bool `json:"rejectMultipleChanges"`
	// ParserPoolSize is read at startup only.
	ParserPoolSize int `json:"parserPoolSize"`
}

var defaultConfig = Config{
	TriggerCharacters:     []string{"-"},
	RejectMultipleChanges: false,
	ParserPoolSize:        4,
}

// Default returns a copy of the default configuration.
func Default() Config {
	cfg := defaultConfig
	cfg.TriggerCharacters = append([]string(nil), defaultConfig.TriggerCharacters...)
	return cfg
}

// startupOnly names the fields that only take effect when the process starts.
var startupOnly = []string{"parserPoolSize"}

// Load overlays v, typically a config section, on base.
// Only fields present in v overwrite.
func Load(base Config, v any) (Config, error) {
	if v == nil {
		return base, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal source: %w", err)
	}

	cfg, err := overlay(base, data)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadClientOptions overlays a client's initializationOptions on base.
// Startup-only fields keep their base value and are returned as ignored.
func LoadClientOptions(base Config, v any) (Config, []string, error) {
	if v == nil {
		return base, nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, nil, fmt.Errorf("failed to marshal source: %w", err)
	}

	var ignored []string
	for _, name := range startupOnly {
		if gjson.GetBytes(data, name).Exists() {
			ignored = append(ignored, name)
		}
	}

	cfg, err := overlay(base, data)
	if err != nil {
		return Config{}, nil, err
	}
	cfg.ParserPoolSize = base.ParserPoolSize
	return cfg, ignored, cfg.Validate()
}

func overlay(base Config, data []byte) (Config, error) {
	cfg := base
	cfg.TriggerCharacters = append([]string(nil), base.TriggerCharacters...)
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}
	return cfg, nil
}

// LoadFromJSON reads JSON from r on top of the defaults.
func LoadFromJSON(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate reports settings the server cannot run with.
func (c Config) Validate() error {
	if c.ParserPoolSize < 1 {
		return fmt.Errorf("parserPoolSize must be positive, got %d", c.ParserPoolSize)
	}
	return nil
}
