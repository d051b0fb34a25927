package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Provider   ProviderConfig   `json:"provider"`
	Storage    StorageConfig    `json:"storage"`
	Classifier ClassifierConfig `json:"classifier"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type ProviderConfig struct {
	APIKey     string `json:"api_key"`
	BaseURL    string `json:"base_url"`
	Model      string `json:"model"`
	TimeoutSec int    `json:"timeout_sec"`
}

type StorageConfig struct {
	Driver   string `json:"driver"`
	DataDir  string `json:"data_dir"`
	MaxConns int    `json:"max_conns"`
}

type ClassifierConfig struct {
	CooldownSec int `json:"cooldown_sec"`
}

type Manager struct {
	path string
	mu   sync.RWMutex
	cfg  Config
}

func DefaultPath() string {
	return filepath.Join("config", "config.json")
}

func NewManager(path string) (*Manager, error) {
	cfg := defaultConfig()
	mgr := &Manager{
		path: path,
		cfg:  cfg,
	}
	if err := mgr.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if err := mgr.save(); err != nil {
		return nil, err
	}
	return mgr, nil
}

func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

func (m *Manager) Update(apply func(*Config)) (Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	apply(&m.cfg)
	applyDefaults(&m.cfg)
	if err := m.saveLocked(); err != nil {
		return Config{}, err
	}
	return m.cfg, nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}
	var fileCfg Config
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return err
	}
	m.cfg = fileCfg
	applyDefaults(&m.cfg)
	return nil
}

func (m *Manager) save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0644)
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Provider: ProviderConfig{
			BaseURL:    "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:      "gemini-2.0-flash",
			TimeoutSec: 15,
		},
		Storage: StorageConfig{
			Driver:   "memory",
			DataDir:  filepath.Join("output", "data"),
			MaxConns: 4,
		},
		Classifier: ClassifierConfig{
			CooldownSec: 60,
		},
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Host) == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		cfg.Server.Port = 5000
	}
	if strings.TrimSpace(cfg.Provider.BaseURL) == "" {
		cfg.Provider.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	}
	if strings.TrimSpace(cfg.Provider.Model) == "" {
		cfg.Provider.Model = "gemini-2.0-flash"
	}
	if cfg.Provider.TimeoutSec <= 0 {
		cfg.Provider.TimeoutSec = 15
	}
	switch cfg.Storage.Driver {
	case "memory", "sqlite":
	default:
		cfg.Storage.Driver = "memory"
	}
	if strings.TrimSpace(cfg.Storage.DataDir) == "" {
		cfg.Storage.DataDir = filepath.Join("output", "data")
	}
	if cfg.Storage.MaxConns <= 0 {
		cfg.Storage.MaxConns = 4
	}
	if cfg.Classifier.CooldownSec <= 0 {
		cfg.Classifier.CooldownSec = 60
	}
}

// ResolvedAPIKey resolves the provider credential, preferring the environment over
// the config file so the key never has to live on disk.
func (c ProviderConfig) ResolvedAPIKey() string {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		return key
	}
	return strings.TrimSpace(c.APIKey)
}
