package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the run configuration: the three required paths plus
// formatting and logging options.
type Config struct {
	ExcelPath   string // source .xlsx workbook
	TemplateDir string // directory holding the .docx templates
	OutputDir   string // root for the per-customer output folders
	DateFormat  string // Go layout for rendered dates
	Env         string // development -> readable console logs; anything else -> JSON
	LogLevel    string
}

// Error reports a missing or invalid configuration value. Configuration
// errors are fatal and abort the run before any output is written.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load reads configuration from an optional docx-merger.yaml file, from
// MERGE_* environment variables, and finally from flags, in increasing
// priority. The three paths are required.
func Load(args []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("docx-merger")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // the file is optional

	v.SetEnvPrefix("MERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("date-format", "02/01/2006")
	v.SetDefault("env", "development")
	v.SetDefault("log-level", "info")

	cfg := &Config{}
	fs := flag.NewFlagSet("docx-merger", flag.ContinueOnError)
	fs.StringVar(&cfg.ExcelPath, "excel", v.GetString("excel"), "path to the source .xlsx workbook")
	fs.StringVar(&cfg.TemplateDir, "templates", v.GetString("templates"), "directory with the .docx templates")
	fs.StringVar(&cfg.OutputDir, "out", v.GetString("out"), "output root directory")
	fs.StringVar(&cfg.DateFormat, "date-format", v.GetString("date-format"), "Go layout for rendered dates")
	fs.StringVar(&cfg.Env, "env", v.GetString("env"), "development or production")
	fs.StringVar(&cfg.LogLevel, "log-level", v.GetString("log-level"), "trace, debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ExcelPath == "" {
		return nil, &Error{Field: "excel", Reason: "source workbook is required (-excel)"}
	}
	if cfg.TemplateDir == "" {
		return nil, &Error{Field: "templates", Reason: "template directory is required (-templates)"}
	}
	if cfg.OutputDir == "" {
		return nil, &Error{Field: "out", Reason: "output directory is required (-out)"}
	}

	cfg.ExcelPath = filepath.Clean(cfg.ExcelPath)
	cfg.TemplateDir = filepath.Clean(cfg.TemplateDir)
	cfg.OutputDir = filepath.Clean(cfg.OutputDir)

	return cfg, nil
}
