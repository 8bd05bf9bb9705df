/*
 * Copyright (C) 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not
 * use this file except in compliance with the License. You may obtain a copy of
 * the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations under
 * the License.
 */
package config

import (
	"fmt"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/utilities"
)

var (
	DefaultTypeCacheSize = utilities.DefaultTypeCacheSize
	DefaultLogFile       = "/var/log/cqlschema/output.log"
	DefaultLogMaxAge     = 3
	DefaultLogMaxBackups = 10
	loggerOutputConsole  = "console"
	loggerOutputFile     = "file"
)

func validateCliArgs(args *rawCliArgs) error {
	switch OutputFormat(args.Format) {
	case FormatDescribe, FormatYaml, FormatSystem:
	default:
		return fmt.Errorf("unsupported output format: %s (options: describe, yaml, system)", args.Format)
	}
	if args.Type != "" && len(args.Files) > 0 {
		return fmt.Errorf("--type cannot be combined with script files")
	}
	return nil
}

// validateAndApplyDefaults applies default values to the configuration after it is loaded
func validateAndApplyDefaults(cfg *yamlSchemaConfig) error {
	if cfg.TypeCacheSize < 0 {
		return fmt.Errorf("typeCacheSize must not be negative (provided: %d)", cfg.TypeCacheSize)
	}
	if cfg.TypeCacheSize == 0 {
		cfg.TypeCacheSize = DefaultTypeCacheSize
	}

	if cfg.LoggerConfig == nil {
		cfg.LoggerConfig = &yamlLoggerConfig{OutputType: loggerOutputConsole}
	}
	switch cfg.LoggerConfig.OutputType {
	case "":
		cfg.LoggerConfig.OutputType = loggerOutputConsole
	case loggerOutputConsole, loggerOutputFile:
	default:
		return fmt.Errorf("unsupported logger output type: %s (options: console, file)", cfg.LoggerConfig.OutputType)
	}
	if cfg.LoggerConfig.OutputType == loggerOutputFile {
		if cfg.LoggerConfig.Filename == "" {
			cfg.LoggerConfig.Filename = DefaultLogFile
		}
		if cfg.LoggerConfig.MaxAge == 0 {
			cfg.LoggerConfig.MaxAge = DefaultLogMaxAge
		}
		if cfg.LoggerConfig.MaxBackups == 0 {
			cfg.LoggerConfig.MaxBackups = DefaultLogMaxBackups
		}
	}
	return nil
}
