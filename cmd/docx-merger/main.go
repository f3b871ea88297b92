package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hqtran/docx-merger/internal/config"
	"github.com/hqtran/docx-merger/internal/merge"
	"github.com/hqtran/docx-merger/pkg/logger"
)

// Output is the machine-readable run summary printed to stdout; logs go to
// stderr.
type Output struct {
	Success      bool   `json:"success"`
	Customers    int    `json:"customers,omitempty"`
	Templates    int    `json:"templates,omitempty"`
	FilesWritten int    `json:"files_written,omitempty"`
	RenderErrors int    `json:"render_errors,omitempty"`
	OutputRoot   string `json:"output_root,omitempty"`
	Error        string `json:"error,omitempty"`
	Duration     string `json:"duration"`
}

func main() {

	start := time.Now()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fail(start, fmt.Sprintf("configuration: %v", err))
	}

	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})
	log.Info().
		Str("excel", cfg.ExcelPath).
		Str("templates", cfg.TemplateDir).
		Str("out", cfg.OutputDir).
		Msg("starting mail merge")

	m := merge.New(cfg, log)
	sum, err := m.Run()
	if err != nil {
		fail(start, err.Error())
	}

	emitJSON(Output{
		Success:      true,
		Customers:    sum.Customers,
		Templates:    sum.Templates,
		FilesWritten: sum.FilesWritten,
		RenderErrors: sum.RenderErrors,
		OutputRoot:   sum.OutputRoot,
		Duration:     time.Since(start).String(),
	})
}

func fail(start time.Time, msg string) {
	emitJSON(Output{
		Success:  false,
		Error:    msg,
		Duration: time.Since(start).String(),
	})
	os.Exit(1)
}

func emitJSON(out Output) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "emit summary: %v\n", err)
		os.Exit(1)
	}
}
