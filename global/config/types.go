package config

import (
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
)

type yamlSchemaConfig struct {
	Keyspace      string            `yaml:"keyspace"`
	TypeCacheSize int               `yaml:"typeCacheSize"`
	LoggerConfig  *yamlLoggerConfig `yaml:"loggerConfig"`
}

type yamlLoggerConfig struct {
	OutputType string `yaml:"outputType"`
	Filename   string `yaml:"fileName"`
	MaxSize    int    `yaml:"maxSize"`    // megabytes
	MaxBackups int    `yaml:"maxBackups"` // rotated files kept
	MaxAge     int    `yaml:"maxAge"`     // days
	Compress   bool   `yaml:"compress"`
}

type rawCliArgs struct {
	Version  bool     `help:"Show current version" short:"v" default:"false" env:"CQLSCHEMA_VERSION"`
	Keyspace string   `help:"Keyspace applied to unqualified table and type names. Overrides the config file." short:"k" env:"CQLSCHEMA_KEYSPACE"`
	Config   string   `help:"YAML configuration file" short:"f" env:"CQLSCHEMA_CONFIG_FILE"`
	LogLevel string   `help:"Log level configuration." default:"info" env:"LOG_LEVEL"`
	Format   string   `help:"Output format: describe, yaml or system." default:"describe" env:"CQLSCHEMA_FORMAT"`
	Type     string   `help:"Describe a single type expression, e.g. 'map<text, int>', instead of reading scripts." short:"t"`
	Files    []string `arg:"" optional:"" help:"CQL scripts to read. Reads stdin when none are given."`
}

type OutputFormat string

const (
	FormatDescribe OutputFormat = "describe"
	FormatYaml     OutputFormat = "yaml"
	FormatSystem   OutputFormat = "system"
)

type CliArgs struct {
	Version        bool
	Keyspace       string
	ConfigFilePath string
	LogLevel       string
	Format         OutputFormat
	Type           string
	Files          []string
}

type LoggerConfig struct {
	OutputType string
	Filename   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// SchemaConfig is the effective configuration: config file values with the
// command line applied on top.
type SchemaConfig struct {
	CliArgs *CliArgs
	// Keyspace is nil when no ambient keyspace is configured.
	Keyspace      *types.Identifier
	TypeCacheSize int
	LoggerConfig  *LoggerConfig
}
