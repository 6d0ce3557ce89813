package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default locations used when no config file is present.
const (
	DefaultLookupTablePath = "input/lookup_table.csv"
	DefaultFlowLogPath     = "input/flow_logs.txt"
	DefaultReportPath      = "output/output_report.txt"
)

// InputConfig points at the two input resources of a run.
type InputConfig struct {
	LookupTable string `yaml:"lookup_table"`
	FlowLogs    string `yaml:"flow_logs"`
}

// TextConfig configures the plain-text report writer.
type TextConfig struct {
	Path string `yaml:"path"`
}

// GobConfig configures the gob snapshot writer.
type GobConfig struct {
	RootPath string `yaml:"root_path"`
}

// ClickHouseConfig holds connection settings for ClickHouse.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// NATSConfig holds settings for publishing run summaries.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// WriterDef defines a single output sink from the config file.
type WriterDef struct {
	Type       string           `yaml:"type"`
	Enabled    bool             `yaml:"enabled"`
	Text       TextConfig       `yaml:"text"`
	Gob        GobConfig        `yaml:"gob"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	NATS       NATSConfig       `yaml:"nats"`
}

// APIConfig holds listen addresses for cmd/flow-api.
type APIConfig struct {
	HttpListenAddr string `yaml:"http_listen_addr"`
	GrpcListenAddr string `yaml:"grpc_listen_addr"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Input   InputConfig `yaml:"input"`
	Writers []WriterDef `yaml:"writers"`
	API     APIConfig   `yaml:"api"`
}

// Default returns the configuration used when no config file exists: the
// fixed input paths and a single text report.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault behaves like LoadConfig but falls back to Default when the
// file does not exist.
func LoadOrDefault(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadConfig(filePath)
}

func (c *Config) applyDefaults() {
	if c.Input.LookupTable == "" {
		c.Input.LookupTable = DefaultLookupTablePath
	}
	if c.Input.FlowLogs == "" {
		c.Input.FlowLogs = DefaultFlowLogPath
	}
	if len(c.Writers) == 0 {
		c.Writers = []WriterDef{{
			Type:    "text",
			Enabled: true,
			Text:    TextConfig{Path: DefaultReportPath},
		}}
	}
	for i := range c.Writers {
		w := &c.Writers[i]
		switch w.Type {
		case "text":
			if w.Text.Path == "" {
				w.Text.Path = DefaultReportPath
			}
		case "gob":
			if w.Gob.RootPath == "" {
				w.Gob.RootPath = "output/snapshots"
			}
		case "nats":
			if w.NATS.Subject == "" {
				w.NATS.Subject = "flowtag.reports"
			}
		}
	}
	if c.API.HttpListenAddr == "" {
		c.API.HttpListenAddr = ":8080"
	}
	if c.API.GrpcListenAddr == "" {
		c.API.GrpcListenAddr = ":9090"
	}
}

// ReportPath returns the path of the first enabled text writer, or "" when
// none is configured.
func (c *Config) ReportPath() string {
	for _, w := range c.Writers {
		if w.Enabled && w.Type == "text" {
			return w.Text.Path
		}
	}
	return ""
}
