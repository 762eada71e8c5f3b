package server

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration. Values are resolved once at
// startup and passed into New; handlers never read ambient state.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string `toml:"listen"`

	// Model identifier, e.g. "gemini-2.0-flash-001"
	Model string `toml:"model"`

	// Credential bundle. APIKey selects the hosted endpoint; Project plus
	// AccessToken select the Vertex regional endpoint.
	APIKey      string `toml:"api_key"`
	AccessToken string `toml:"access_token"`
	Project     string `toml:"project"`
	Location    string `toml:"location"`

	// Endpoint overrides the model URL entirely (tests, local gateways).
	Endpoint string `toml:"endpoint"`

	// Instruction replaces the built-in interviewer instruction when set.
	// InstructionFile loads it from disk instead; Instruction wins.
	Instruction     string `toml:"instruction"`
	InstructionFile string `toml:"instruction_file"`

	// DBPath is the SQLite file for the exchange log. Empty keeps the log
	// in memory.
	DBPath string `toml:"db"`
}

// LoadConfig reads a TOML config file. An empty path returns a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto the config. Env values win
// over the file; CLI flags are applied after this and win over both.
func (c *Config) ApplyEnv() {
	overlay(&c.ListenAddr, "VIVAPREP_LISTEN")
	overlay(&c.Model, "VIVAPREP_MODEL")
	overlay(&c.DBPath, "VIVAPREP_DB")
	overlay(&c.Endpoint, "VIVAPREP_ENDPOINT")
	overlay(&c.InstructionFile, "VIVAPREP_INSTRUCTION_FILE")
	overlay(&c.APIKey, "GEMINI_API_KEY")
	overlay(&c.AccessToken, "GOOGLE_ACCESS_TOKEN")
	overlay(&c.Project, "GOOGLE_CLOUD_PROJECT")
	overlay(&c.Location, "GOOGLE_CLOUD_LOCATION")
}

// ResolveInstruction returns the system instruction to use: the inline
// value, then the file, then the built-in default.
func (c *Config) ResolveInstruction() (string, error) {
	if c.Instruction != "" {
		return c.Instruction, nil
	}
	if c.InstructionFile != "" {
		data, err := os.ReadFile(c.InstructionFile)
		if err != nil {
			return "", fmt.Errorf("read instruction file: %w", err)
		}
		return string(data), nil
	}
	return defaultInstruction, nil
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
