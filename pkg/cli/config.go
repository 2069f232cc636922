// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"
	"strings"

	"github.com/cockroachdb/anchors/pkg/cli/cliflags"
	"github.com/cockroachdb/anchors/pkg/cli/clierror"
	"github.com/cockroachdb/anchors/pkg/cli/exit"
	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

// fileConfig is the layout of the YAML configuration file:
//
//	max_children: 32
//	drop_empty: true
//	log:
//	  verbosity: 2
//	  format: json
//	  level: WARNING
//	  redactable: true
type fileConfig struct {
	interval.Config `yaml:",inline"`
	Log             struct {
		Verbosity  int    `yaml:"verbosity"`
		Format     string `yaml:"format"`
		Level      string `yaml:"level"`
		Redactable bool   `yaml:"redactable"`
	} `yaml:"log"`
}

// logFormatters maps the accepted log formats to their constructors.
var logFormatters = map[string]func() logrus.Formatter{
	"text": func() logrus.Formatter {
		return &logrus.TextFormatter{
			FullTimestamp:    true,
			DisableColors:    true,
			QuoteEmptyFields: true,
		}
	},
	"json": func() logrus.Formatter { return &logrus.JSONFormatter{} },
}

// storeCfg is the store configuration resolved by setupConfig.
var storeCfg interval.Config

func defaultFileConfig() fileConfig {
	cfg := fileConfig{Config: interval.DefaultConfig()}
	cfg.Log.Format = "text"
	cfg.Log.Level = log.SeverityInfo.String()
	return cfg
}

// readConfigFile parses the configuration file at path. Unknown keys are
// an error.
func readConfigFile(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading configuration")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing configuration %s", path)
	}
	return cfg, nil
}

// setupConfig resolves the store configuration from the configuration
// file and the command line, flags taking precedence, and applies the
// log verbosity.
func setupConfig(cmd *cobra.Command) error {
	cfg := defaultFileConfig()
	if cliCtx.configPath != "" {
		var err error
		if cfg, err = readConfigFile(cliCtx.configPath); err != nil {
			return clierror.NewError(err, exit.CommandLineFlagError())
		}
	}
	flags := cmd.Flags()
	if flags.Changed(cliflags.MaxChildren.Name) {
		cfg.MaxChildren = cliCtx.maxChildren
	}
	if flags.Changed(cliflags.DropEmpty.Name) {
		cfg.DropEmpty = cliCtx.dropEmpty
	}
	if flags.Changed(cliflags.Verbosity.Name) {
		cfg.Log.Verbosity = cliCtx.verbosity
	}
	if flags.Changed(cliflags.LogFormat.Name) {
		cfg.Log.Format = cliCtx.logFormat
	}
	if flags.Changed(cliflags.LogLevel.Name) {
		cfg.Log.Level = cliCtx.logLevel
	}
	if flags.Changed(cliflags.RedactableLogs.Name) {
		cfg.Log.Redactable = cliCtx.redactableLogs
	}
	if err := cfg.Config.Validate(); err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	if err := setupLogging(cfg); err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	storeCfg = cfg.Config
	return nil
}

// setupLogging applies the log section of cfg to the log package.
func setupLogging(cfg fileConfig) error {
	newFormatter, ok := logFormatters[strings.ToLower(cfg.Log.Format)]
	if !ok {
		return errors.Newf("invalid log format: %s (possible values: text, json)", cfg.Log.Format)
	}
	sev, ok := log.SeverityByName(strings.ToUpper(cfg.Log.Level))
	if !ok || sev == log.SeverityFatal {
		return errors.Newf("invalid log level: %s (possible values: INFO, WARNING, ERROR)", cfg.Log.Level)
	}
	log.SetFormatter(newFormatter())
	log.SetThreshold(sev)
	log.SetRedactable(cfg.Log.Redactable)
	log.SetVerbosity(int32(cfg.Log.Verbosity))
	return nil
}
