package underwrite

import (
	"bytes"
	"fmt"
	"io"

	"github.com/flanksource/commons/logger"

	"github.com/propintel/underwrite/pdf"
	"github.com/propintel/underwrite/underwriting"
)

// Renderer turns underwriting records into PDF reports
type Renderer struct {
	assembler *underwriting.Assembler
	opts      pdf.Options
	log       logger.Logger
}

func NewRenderer(cfg Config) (*Renderer, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if _, err := pdf.NewComposer(opts); err != nil {
		return nil, err
	}
	return &Renderer{
		assembler: underwriting.NewAssembler(cfg.Branding),
		opts:      opts,
		log:       logger.GetLogger("render"),
	}, nil
}

// Render validates record and writes its report to w. Nothing is written
// when the record is invalid or the layout fails.
func (r *Renderer) Render(w io.Writer, record underwriting.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := pdf.Render(w, r.assembler.ToBlocks(record), r.opts); err != nil {
		return fmt.Errorf("failed to render report for %s: %w", record.Address, err)
	}
	r.log.Debugf("rendered report for %s (%s)", record.Address, record.Risk())
	return nil
}

func (r *Renderer) RenderBytes(record underwriting.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, record); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render renders a single report with cfg
func Render(w io.Writer, record underwriting.Record, cfg Config) error {
	r, err := NewRenderer(cfg)
	if err != nil {
		return err
	}
	return r.Render(w, record)
}
