package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/floataudit"
	"github.com/agentstation/floataudit/pkg/constants"
	"github.com/agentstation/floataudit/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and command-line flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file actually read, empty when none was found
	ConfigFile string

	// Audit configuration
	Root      string
	Report    string
	Threshold int
	Limit     int
	Prefixes  []string
	Encoding  string
	Strategy  string

	// Logging configuration. LogLevel comes from --log-level only;
	// EnvLogLevel is the LOG_LEVEL fallback below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// Config keys, shared by the config file, FLOATAUDIT_* environment variables and flags.
const (
	keyRoot      = "root"
	keyReport    = "report"
	keyThreshold = "threshold"
	keyLimit     = "limit"
	keyPrefixes  = "prefixes"
	keyEncoding  = "encoding"
	keyStrategy  = "strategy"
	keyFormat    = "format"
	keyNoColor   = "no-color"
)

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. FLOATAUDIT_* environment variables
// 3. .env and .env.local files
// 4. Config file (configFile, or .floataudit.yaml in the working directory or $HOME)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyRoot, constants.DefaultRootFile)
	v.SetDefault(keyReport, constants.DefaultReportPath)
	v.SetDefault(keyThreshold, constants.OutlierThreshold)
	v.SetDefault(keyLimit, constants.OutlierDisplayLimit)
	v.SetDefault(keyPrefixes, constants.DefaultFloatPrefixes())
	v.SetDefault(keyEncoding, constants.DefaultEncoding)
	v.SetDefault(keyStrategy, "last")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, readConfigError(configFile, err)
		}
	} else {
		v.SetConfigName(constants.ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, readConfigError(v.ConfigFileUsed(), err)
			}
		}
	}

	prefixes, err := prefixList(v.Get(keyPrefixes))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Format:  v.GetString(keyFormat),
		NoColor: v.GetBool(keyNoColor),

		ConfigFile: v.ConfigFileUsed(),

		Root:      v.GetString(keyRoot),
		Report:    v.GetString(keyReport),
		Threshold: v.GetInt(keyThreshold),
		Limit:     v.GetInt(keyLimit),
		Prefixes:  prefixes,
		Encoding:  v.GetString(keyEncoding),
		Strategy:  v.GetString(keyStrategy),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the audit settings.
func (c *Config) Validate() error {
	switch {
	case c.Root == "":
		return errors.NewConfigError(keyRoot, "root file must not be empty", nil)
	case c.Report == "":
		return errors.NewConfigError(keyReport, "report path must not be empty", nil)
	case c.Threshold < 0:
		return errors.NewConfigError(keyThreshold, "threshold must not be negative", nil)
	case c.Limit < 0:
		return errors.NewConfigError(keyLimit, "limit must not be negative", nil)
	case len(c.Prefixes) == 0:
		return errors.NewConfigError(keyPrefixes, "at least one float prefix is required", nil)
	}
	return nil
}

// AuditOptions translates the audit settings into floataudit options.
func (c *Config) AuditOptions() []floataudit.Option {
	return []floataudit.Option{
		floataudit.WithRoot(c.Root),
		floataudit.WithThreshold(c.Threshold),
		floataudit.WithLimit(c.Limit),
		floataudit.WithPrefixes(c.Prefixes...),
		floataudit.WithEncoding(c.Encoding),
		floataudit.WithStrategy(c.Strategy),
	}
}

// UpdateFromFlags overrides config values with the flags set on the command line.
// Flags left at their defaults do not override config file or environment values.
func (c *Config) UpdateFromFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	c.Verbose, _ = flags.GetBool("verbose")
	c.Quiet, _ = flags.GetBool("quiet")
	if flags.Changed("no-color") {
		c.NoColor, _ = flags.GetBool("no-color")
	}
	if format, _ := flags.GetString("output"); format != "" {
		c.Format = format
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		c.LogLevel = level
	}

	if flags.Changed(keyRoot) {
		c.Root, _ = flags.GetString(keyRoot)
	}
	if flags.Changed(keyReport) {
		c.Report, _ = flags.GetString(keyReport)
	}
	if flags.Changed(keyThreshold) {
		c.Threshold, _ = flags.GetInt(keyThreshold)
	}
	if flags.Changed(keyLimit) {
		c.Limit, _ = flags.GetInt(keyLimit)
	}
	if flags.Changed("prefix") {
		prefixes, _ := flags.GetStringSlice("prefix")
		c.Prefixes = splitList(prefixes)
	}
	if flags.Changed(keyEncoding) {
		c.Encoding, _ = flags.GetString(keyEncoding)
	}
	if flags.Changed(keyStrategy) {
		c.Strategy, _ = flags.GetString(keyStrategy)
	}

	return c.Validate()
}

// readConfigError reports a config file that could not be read or parsed.
func readConfigError(path string, err error) error {
	var parseErr viper.ConfigParseError
	if errors.As(err, &parseErr) {
		return errors.NewConfigError("config", "parsing "+path, errors.WrapParse("yaml", path, err))
	}
	return errors.NewConfigError("config", "reading "+path, err)
}

// prefixList normalizes the prefixes setting. An unquoted YAML list item
// such as "- fig:" decodes as a single-key mapping with a nil value and is
// read back as "fig:".
func prefixList(value any) ([]string, error) {
	switch value := value.(type) {
	case nil:
		return nil, nil
	case string:
		return splitList([]string{value}), nil
	case []string:
		return splitList(value), nil
	case []any:
		values := make([]string, 0, len(value))
		for _, item := range value {
			s, err := prefixItem(item)
			if err != nil {
				return nil, err
			}
			values = append(values, s)
		}
		return splitList(values), nil
	}
	return nil, errors.NewConfigError(keyPrefixes, fmt.Sprintf("expected a list of prefixes, got %T", value), nil)
}

func prefixItem(item any) (string, error) {
	switch item := item.(type) {
	case string:
		return item, nil
	case map[string]any:
		if len(item) == 1 {
			for k, v := range item {
				if v == nil {
					return k + ":", nil
				}
			}
		}
	}
	return "", errors.NewConfigError(keyPrefixes,
		fmt.Sprintf("prefix %v is not a string; quote prefixes such as \"fig:\"", item), nil)
}

// splitList accepts both list values and comma or space separated strings,
// as FLOATAUDIT_PREFIXES="fig:,tab:" arrives as a single element.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })...)
	}
	return out
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
