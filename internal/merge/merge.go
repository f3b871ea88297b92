// Package merge drives the mail-merge batch: one workbook of customers and
// goods rendered through every template into per-customer folders.
package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hqtran/docx-merger/internal/config"
	"github.com/hqtran/docx-merger/internal/dataset"
	"github.com/hqtran/docx-merger/pkg/logger"
)

// Merger runs one mail-merge batch.
type Merger interface {
	Run() (*Summary, error)
}

// Summary is the terminal report of a completed run.
type Summary struct {
	Customers    int
	Templates    int
	FilesWritten int
	RenderErrors int
	OutputRoot   string
}

// Batch is the sequential Merger: customers in sheet order, templates in
// alphabetical order, no parallelism.
type Batch struct {
	cfg *config.Config
	log *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) Merger {
	return &Batch{cfg: cfg, log: log}
}

// Run performs the pre-flight checks, loads the workbook and renders every
// customer. Pre-flight failures (missing paths, zero templates, unresolved
// sheets or required columns) abort before anything is written; after that
// only per-template errors can occur, and those are recovered per template.
func (b *Batch) Run() (*Summary, error) {
	if _, err := os.Stat(b.cfg.ExcelPath); err != nil {
		return nil, &config.Error{Field: "excel", Reason: fmt.Sprintf("workbook not found: %s", b.cfg.ExcelPath)}
	}

	templates, err := discoverTemplates(b.cfg.TemplateDir)
	if err != nil {
		return nil, err
	}
	b.log.Info().Int("count", len(templates)).Msg("templates discovered")

	wb, err := dataset.Load(b.cfg.ExcelPath)
	if err != nil {
		return nil, err
	}
	b.log.Info().
		Str("profile", wb.Profile.Name).
		Str("goods", wb.Goods.Name).
		Int("customers", wb.Profile.Len()).
		Int("goods_rows", wb.Goods.Len()).
		Msg("workbook loaded")

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return nil, &config.Error{Field: "out", Reason: err.Error()}
	}

	sum := &Summary{Templates: len(templates), OutputRoot: b.cfg.OutputDir}
	for i := 0; i < wb.Profile.Len(); i++ {
		b.renderCustomer(wb.Profile.Record(i), wb, templates, sum)
		sum.Customers++
	}

	b.log.Info().
		Int("customers", sum.Customers).
		Int("files", sum.FilesWritten).
		Int("errors", sum.RenderErrors).
		Msg("merge finished")
	return sum, nil
}

// discoverTemplates lists the .docx regular files in dir, sorted
// alphabetically. Zero templates is a configuration error: the run would
// silently produce nothing.
func discoverTemplates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &config.Error{Field: "templates", Reason: fmt.Sprintf("template directory not readable: %v", err)}
	}
	var templates []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".docx") {
			continue
		}
		templates = append(templates, filepath.Join(dir, e.Name()))
	}
	if len(templates) == 0 {
		return nil, &config.Error{Field: "templates", Reason: fmt.Sprintf("no .docx templates in %s", dir)}
	}
	sort.Strings(templates)
	return templates, nil
}
