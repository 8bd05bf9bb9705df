package config

import (
	"fmt"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/constants"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/parser"
	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func ParseCliArgs(args []string) (*CliArgs, error) {
	var parsed rawCliArgs

	cli, err := kong.New(&parsed,
		kong.Name(constants.AppName),
		kong.Description("Parses CQL CREATE TABLE and CREATE TYPE scripts and prints the resolved schema."))
	if err != nil {
		return nil, err
	}

	if _, err = cli.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %v", err)
	}

	if err = validateCliArgs(&parsed); err != nil {
		return nil, err
	}

	return &CliArgs{
		Version:        parsed.Version,
		Keyspace:       parsed.Keyspace,
		ConfigFilePath: parsed.Config,
		LogLevel:       parsed.LogLevel,
		Format:         OutputFormat(parsed.Format),
		Type:           parsed.Type,
		Files:          parsed.Files,
	}, nil
}

// LoadSchemaConfig reads the optional config file and applies the command
// line on top of it.
func LoadSchemaConfig(args *CliArgs) (*SchemaConfig, error) {
	cfg := &yamlSchemaConfig{}
	if args.ConfigFilePath != "" {
		loaded, err := readSchemaConfig(args.ConfigFilePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := validateAndApplyDefaults(cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", args.ConfigFilePath, err)
	}

	keyspace := cfg.Keyspace
	if args.Keyspace != "" {
		keyspace = args.Keyspace
	}

	result := &SchemaConfig{
		CliArgs:       args,
		TypeCacheSize: cfg.TypeCacheSize,
		LoggerConfig: &LoggerConfig{
			OutputType: cfg.LoggerConfig.OutputType,
			Filename:   cfg.LoggerConfig.Filename,
			MaxSize:    cfg.LoggerConfig.MaxSize,
			MaxBackups: cfg.LoggerConfig.MaxBackups,
			MaxAge:     cfg.LoggerConfig.MaxAge,
			Compress:   cfg.LoggerConfig.Compress,
		},
	}
	if keyspace != "" {
		id, err := parser.ParseIdentifier(keyspace)
		if err != nil {
			return nil, fmt.Errorf("invalid keyspace '%s': %w", keyspace, err)
		}
		result.Keyspace = &id
	}
	return result, nil
}

func ParseLoggerConfig(cfg *SchemaConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	err := level.UnmarshalText([]byte(cfg.CliArgs.LogLevel))
	if err != nil {
		return nil, err
	}

	if cfg.LoggerConfig != nil && cfg.LoggerConfig.OutputType == loggerOutputFile {
		return setupFileLogger(level, cfg.LoggerConfig)
	}

	return setupConsoleLogger(level)
}

// setupConsoleLogger() configures a zap.Logger for console output. Logs go
// to stderr so they never mix with the schema printed on stdout.
func setupConsoleLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	config := zap.Config{
		Encoding:         "json",
		Level:            level,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			CallerKey:      "caller",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}

	return config.Build()
}
