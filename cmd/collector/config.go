// Config loading for the collector CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Karatekid05/monadians-wallet-collector/internal/paths"
	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyToken       = "discord_token"
	cfgKeyGuild       = "guild_id"
	cfgKeySpreadsheet = "spreadsheet_id"
	cfgKeyCredentials = "credentials_file"
	cfgKeyMappings    = "mappings"
	cfgKeyWorkers     = "workers"
	cfgKeyLogLevel    = "log_level"
)

// defaultConfigYAML is the content written to config.yaml on first run.
// Secrets are expected from the environment, not this file.
const defaultConfigYAML = `# Wallet collector configuration.
# discord_token and credentials_file are usually supplied via the
# DISCORD_TOKEN and GOOGLE_CREDENTIALS_FILE environment variables.

guild_id: ""
spreadsheet_id: ""

# Qualifying roles, highest priority first. Each maps to one sheet tab.
mappings:
  - role: "OG"
    partition: "OG Wallets"
  - role: "Monadian"
    partition: "Monadian Wallets"
  - role: "Community"
    partition: "Community Wallets"

# Role-lookup worker pool size for scheduled refreshes.
workers: 5

log_level: info
`

// defaultConfig returns the built-in configuration used before loading.
func defaultConfig() types.Config {
	return types.Config{Workers: types.DefaultWorkers, LogLevel: "info"}
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default config.yaml on first run.
// Environment variables override file values for secrets.
func loadConfig(configDirFlag string) (types.Config, error) {
	var cfg types.Config

	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return cfg, fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return cfg, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return cfg, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyWorkers, types.DefaultWorkers)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	// Secrets come from the environment when present.
	_ = v.BindEnv(cfgKeyToken, "DISCORD_TOKEN")
	_ = v.BindEnv(cfgKeyGuild, "GUILD_ID")
	_ = v.BindEnv(cfgKeySpreadsheet, "SPREADSHEET_ID")
	_ = v.BindEnv(cfgKeyCredentials, paths.EnvCredentialsFile)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
