// Package config loads the daemon configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/ups-trap-monitor/internal/panel"
)

// Config represents the overall daemon configuration.
type Config struct {
	SNMP      SNMPConfig     `yaml:"snmp"`
	Panel     PanelConfig    `yaml:"panel"`
	Email     EmailConfig    `yaml:"email"`
	MQTT      MQTTConfig     `yaml:"mqtt"`
	HTTP      HTTPConfig     `yaml:"http"`
	Database  DatabaseConfig `yaml:"database"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
}

// SNMPConfig holds the trap listener configuration.
type SNMPConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	Community  string `yaml:"community"`
}

// PanelConfig holds the GPIO pin assignment for the alarm panel.
type PanelConfig struct {
	Enabled        bool          `yaml:"enabled"`
	CriticalLedPin int           `yaml:"critical_led_pin"`
	WarningLedPin  int           `yaml:"warning_led_pin"`
	InfoLedPin     int           `yaml:"info_led_pin"`
	BuzzerPin      int           `yaml:"buzzer_pin"`
	MuteButtonPin  int           `yaml:"mute_button_pin"`
	ResetButtonPin int           `yaml:"reset_button_pin"`
	DebounceMs     int           `yaml:"debounce_ms"`
	Debounce       time.Duration `yaml:"-"` // Derived from DebounceMs
}

// OutputPins converts the panel config to the driver's pin set.
func (p PanelConfig) OutputPins() panel.OutputPins {
	return panel.OutputPins{
		Critical: p.CriticalLedPin,
		Warning:  p.WarningLedPin,
		Info:     p.InfoLedPin,
		Buzzer:   p.BuzzerPin,
	}
}

// EmailConfig holds SMTP settings for alert mail.
type EmailConfig struct {
	Enabled         bool     `yaml:"enabled"`
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	Username        string   `yaml:"username"`
	Password        string   `yaml:"password"`
	From            string   `yaml:"from"`
	To              []string `yaml:"to"`
	UseSSL          bool     `yaml:"use_ssl"`
	CooldownSeconds int      `yaml:"cooldown_seconds"`
	Cooldown        time.Duration `yaml:"-"` // Derived from CooldownSeconds
}

// MQTTConfig holds the broker connection settings.
type MQTTConfig struct {
	Enabled bool   `yaml:"enabled"`
	Broker  string `yaml:"broker"`
}

// HTTPConfig holds the status server settings.
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DatabaseConfig holds the sqlite persistence settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// HeartbeatConfig controls the periodic MQTT status event.
type HeartbeatConfig struct {
	Minutes  int           `yaml:"minutes"` // 0 disables the heartbeat
	Interval time.Duration `yaml:"-"`       // Derived from Minutes
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Email.Enabled {
		if cfg.Email.Host == "" {
			return nil, fmt.Errorf("email enabled but host is empty")
		}
		if len(cfg.Email.To) == 0 {
			return nil, fmt.Errorf("email enabled but no recipients configured")
		}
	}
	if cfg.MQTT.Enabled && cfg.MQTT.Broker == "" {
		return nil, fmt.Errorf("mqtt enabled but broker is empty")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.SNMP.ListenAddr == "" {
		cfg.SNMP.ListenAddr = "0.0.0.0:162"
	}
	if cfg.SNMP.Community == "" {
		cfg.SNMP.Community = "public"
	}

	if cfg.Panel.CriticalLedPin == 0 {
		cfg.Panel.CriticalLedPin = panel.DefaultPinCritical
	}
	if cfg.Panel.WarningLedPin == 0 {
		cfg.Panel.WarningLedPin = panel.DefaultPinWarning
	}
	if cfg.Panel.InfoLedPin == 0 {
		cfg.Panel.InfoLedPin = panel.DefaultPinInfo
	}
	if cfg.Panel.BuzzerPin == 0 {
		cfg.Panel.BuzzerPin = panel.DefaultPinBuzzer
	}
	if cfg.Panel.MuteButtonPin == 0 {
		cfg.Panel.MuteButtonPin = panel.DefaultPinMute
	}
	if cfg.Panel.ResetButtonPin == 0 {
		cfg.Panel.ResetButtonPin = panel.DefaultPinReset
	}
	if cfg.Panel.DebounceMs <= 0 {
		cfg.Panel.DebounceMs = 50
	}
	cfg.Panel.Debounce = time.Duration(cfg.Panel.DebounceMs) * time.Millisecond

	if cfg.Email.Port <= 0 {
		cfg.Email.Port = 587
	}
	if cfg.Email.CooldownSeconds <= 0 {
		cfg.Email.CooldownSeconds = 300
	}
	cfg.Email.Cooldown = time.Duration(cfg.Email.CooldownSeconds) * time.Second

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "ups-trap-monitor.db"
	}

	if cfg.Heartbeat.Minutes < 0 {
		cfg.Heartbeat.Minutes = 0
	}
	cfg.Heartbeat.Interval = time.Duration(cfg.Heartbeat.Minutes) * time.Minute
}
