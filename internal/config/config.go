package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"accessnav/internal/eventbus"
)

// FileName is the per-directory configuration file
const FileName = ".accessnav.toml"

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	LogFile string         `toml:"log_file"`
	Speech  SpeechSettings `toml:"speech"`
	Input   InputSettings  `toml:"input"`
	Map     MapSettings    `toml:"map"`
	Items   []ItemConfig   `toml:"items"`
}

// SpeechSettings controls announcement wording and the transcript
type SpeechSettings struct {
	AnnounceBoundaries bool `toml:"announce_boundaries"`
	AnnouncePositions  bool `toml:"announce_positions"` // append "N of M" to list announcements
	HistorySize        int  `toml:"history_size"`
}

// InputSettings controls the dispatcher
type InputSettings struct {
	DeliveryGuard bool `toml:"delivery_guard"` // drop re-delivered key events
	CatchAll      bool `toml:"catch_all"`
}

// MapSettings is the size of the roaming cursor's map
type MapSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ItemConfig describes one entry of the demo catalog
type ItemConfig struct {
	ID      string   `toml:"id"`
	Label   string   `toml:"label"`
	Lines   []string `toml:"lines,omitempty"`
	Buttons []string `toml:"buttons,omitempty"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "accessnav", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the default location
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded("")
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publishLoaded(cs.filePath)
	return cfg, nil
}

// Save saves the configuration to the default location
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their DefaultConfig values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Items = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Items) == 0 {
		cfg.Items = DefaultItems()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publishLoaded(path string) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}
}

// Validate rejects values the input core cannot work with
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("map size must be positive, got %dx%d", c.Map.Width, c.Map.Height)
	}
	if c.Speech.HistorySize < 0 {
		return fmt.Errorf("speech.history_size must not be negative")
	}
	seen := make(map[string]bool, len(c.Items))
	for i, item := range c.Items {
		if item.Label == "" {
			return fmt.Errorf("item %d has no label", i)
		}
		if item.ID != "" && seen[item.ID] {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		LogFile: "accessnav.log",
		Speech: SpeechSettings{
			AnnounceBoundaries: true,
			AnnouncePositions:  true,
			HistorySize:        200,
		},
		Input: InputSettings{
			DeliveryGuard: true,
			CatchAll:      true,
		},
		Map: MapSettings{
			Width:  20,
			Height: 12,
		},
		Items: DefaultItems(),
	}
}

// DefaultItems is the catalog used when the config file names none
func DefaultItems() []ItemConfig {
	return []ItemConfig{
		{ID: "cat", Label: "Cat", Lines: []string{"Animal, tame", "Health 100%"}, Buttons: []string{"Rename", "Release"}},
		{ID: "car", Label: "Car", Lines: []string{"Vehicle", "Fuel 40%"}, Buttons: []string{"Refuel"}},
		{ID: "dog", Label: "Dog", Lines: []string{"Animal, tame"}, Buttons: []string{"Rename", "Train", "Release"}},
		{ID: "rice", Label: "Rice", Lines: []string{"Food, raw", "Stack of 35"}},
		{ID: "steel", Label: "Steel", Buttons: []string{"Forbid"}},
	}
}
