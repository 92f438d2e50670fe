package types

import "errors"

// RoleMapping binds one qualifying role label to the partition that stores
// its members. Order matters: mappings are listed highest priority first.
type RoleMapping struct {
	Role      string `json:"role" yaml:"role" mapstructure:"role"`
	Partition string `json:"partition" yaml:"partition" mapstructure:"partition"`
}

// Config holds everything the collector needs to reach Discord and the
// spreadsheet. Secrets (token, credentials path) are usually injected via
// environment overrides rather than config.yaml.
type Config struct {
	DiscordToken    string        `json:"discord_token" yaml:"discord_token" mapstructure:"discord_token"`
	GuildID         string        `json:"guild_id" yaml:"guild_id" mapstructure:"guild_id"`
	SpreadsheetID   string        `json:"spreadsheet_id" yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	CredentialsFile string        `json:"credentials_file" yaml:"credentials_file" mapstructure:"credentials_file"`
	Mappings        []RoleMapping `json:"mappings" yaml:"mappings" mapstructure:"mappings"`
	Workers         int           `json:"workers" yaml:"workers" mapstructure:"workers"`
	LogLevel        string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// MappingCount is the number of role mappings a valid config carries.
const MappingCount = 3

// DefaultWorkers is the role-lookup pool size used when Workers is zero.
const DefaultWorkers = 5

// Config validation errors.
var (
	ErrTokenEmpty        = errors.New("discord token must not be empty")
	ErrGuildEmpty        = errors.New("guild id must not be empty")
	ErrSpreadsheetEmpty  = errors.New("spreadsheet id must not be empty")
	ErrMappingCount      = errors.New("exactly three role mappings are required")
	ErrMappingIncomplete = errors.New("role mapping has an empty role or partition")
	ErrMappingDuplicate  = errors.New("role mappings contain a duplicate role or partition")
	ErrWorkersInvalid    = errors.New("workers must not be negative")
)

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DiscordToken == "" {
		return ErrTokenEmpty
	}
	if c.GuildID == "" {
		return ErrGuildEmpty
	}
	if c.SpreadsheetID == "" {
		return ErrSpreadsheetEmpty
	}
	if len(c.Mappings) != MappingCount {
		return ErrMappingCount
	}
	roles := make(map[string]bool, len(c.Mappings))
	parts := make(map[string]bool, len(c.Mappings))
	for _, m := range c.Mappings {
		if m.Role == "" || m.Partition == "" {
			return ErrMappingIncomplete
		}
		if roles[m.Role] || parts[m.Partition] {
			return ErrMappingDuplicate
		}
		roles[m.Role] = true
		parts[m.Partition] = true
	}
	if c.Workers < 0 {
		return ErrWorkersInvalid
	}
	return nil
}

// PoolSize returns the effective worker-pool size.
func (c Config) PoolSize() int {
	if c.Workers == 0 {
		return DefaultWorkers
	}
	return c.Workers
}
