/*
Package config manages TOML config for uniserve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/dictionary"
	"github.com/bastiangx/uniserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked up in the user settings dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Data   DataConfig   `toml:"data"`
	Match  MatchConfig  `toml:"match"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// DataConfig names the dataset files. An empty CustomFiles list means the
// custom.json/custom.toml files of every settings dir are used.
type DataConfig struct {
	UnicodeData string   `toml:"unicode_data"`
	EmojiData   string   `toml:"emoji_data"`
	CustomFiles []string `toml:"custom_files"`
}

// MatchConfig holds ranking and load heuristics.
type MatchConfig struct {
	Limit                   int    `toml:"limit"`
	ScanLimit               int    `toml:"scan_limit"`
	KeywordGenericThreshold int    `toml:"keyword_generic_threshold"`
	FlagCategory            string `toml:"flag_category"`
	CacheSize               int    `toml:"cache_size"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxQuery int  `toml:"max_query"`
	Watch    bool `toml:"watch"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	PageSize     int `toml:"page_size"`
	DefaultLimit int `toml:"default_limit"`
}

// Locator finds dataset and override files on disk.
type Locator interface {
	ResolveDataFile(name string) string
	CustomFiles() []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			UnicodeData: filepath.Join("data", "UnicodeData.txt"),
			EmojiData:   filepath.Join("data", "emoji.json"),
			CustomFiles: []string{},
		},
		Match: MatchConfig{
			Limit:                   suggest.DefaultLimit,
			ScanLimit:               0,
			KeywordGenericThreshold: dictionary.DefaultKeywordGenericThreshold,
			FlagCategory:            dictionary.DefaultFlagCategory,
			CacheSize:               256,
		},
		Server: ServerConfig{
			MaxQuery: 60,
			Watch:    false,
		},
		CLI: CliConfig{
			PageSize:     9,
			DefaultLimit: 24,
		},
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [settings dir]/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, pr *utils.PathResolver) (*Config, string) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}
	if pr == nil {
		return DefaultConfig(), ""
	}

	defaultPath := pr.GetConfigPath(FileName)
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Unparseable files fall back to a
// section-by-section recovery.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath), nil
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find; anything else
// stays at its default
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}
	if section, ok := utils.ExtractSection(raw, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(raw, "match"); ok {
		extractMatchConfig(section, &config.Match)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	if val, ok := utils.ExtractString(data, "unicode_data"); ok {
		d.UnicodeData = val
	}
	if val, ok := utils.ExtractString(data, "emoji_data"); ok {
		d.EmojiData = val
	}
	if val, ok := utils.ExtractStrings(data, "custom_files"); ok {
		d.CustomFiles = val
	}
}

func extractMatchConfig(data map[string]any, m *MatchConfig) {
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		m.Limit = val
	}
	if val, ok := utils.ExtractInt64(data, "scan_limit"); ok {
		m.ScanLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "keyword_generic_threshold"); ok {
		m.KeywordGenericThreshold = val
	}
	if val, ok := utils.ExtractString(data, "flag_category"); ok {
		m.FlagCategory = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		m.CacheSize = val
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		s.MaxQuery = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		s.Watch = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "page_size"); ok {
		cli.PageSize = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// sanitize resets values no component can work with.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Match.Limit <= 0 {
		log.Warnf("match.limit %d out of range, using %d", c.Match.Limit, def.Match.Limit)
		c.Match.Limit = def.Match.Limit
	}
	if c.Match.ScanLimit < 0 {
		c.Match.ScanLimit = 0
	}
	if c.Match.CacheSize < 0 {
		c.Match.CacheSize = 0
	}
	if c.Server.MaxQuery <= 0 {
		log.Warnf("server.max_query %d out of range, using %d", c.Server.MaxQuery, def.Server.MaxQuery)
		c.Server.MaxQuery = def.Server.MaxQuery
	}
	if c.CLI.PageSize <= 0 || c.CLI.PageSize > 9 {
		// digit selection only reaches nine candidates
		c.CLI.PageSize = 9
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Sources resolves the dataset files named by the config.
func (c *Config) Sources(loc Locator) dictionary.Sources {
	src := dictionary.Sources{
		UnicodeData: c.Data.UnicodeData,
		EmojiData:   c.Data.EmojiData,
		Custom:      c.Data.CustomFiles,
	}
	if loc == nil {
		return src
	}
	src.UnicodeData = loc.ResolveDataFile(src.UnicodeData)
	src.EmojiData = loc.ResolveDataFile(src.EmojiData)
	if len(src.Custom) == 0 {
		src.Custom = loc.CustomFiles()
	}
	return src
}

// LoaderOptions returns the load heuristics.
func (c *Config) LoaderOptions() dictionary.Options {
	opts := dictionary.DefaultOptions()
	opts.KeywordGenericThreshold = c.Match.KeywordGenericThreshold
	if c.Match.FlagCategory != "" {
		opts.FlagCategory = c.Match.FlagCategory
	}
	return opts
}

// ResolverOptions returns the query side options.
func (c *Config) ResolverOptions() suggest.Options {
	return suggest.Options{
		Match: suggest.MatchOptions{
			Limit:     c.Match.Limit,
			ScanLimit: c.Match.ScanLimit,
		},
		CacheSize: c.Match.CacheSize,
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	return utils.GetAbsolutePath(configPath)
}
