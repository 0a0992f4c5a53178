package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/flanksource/commons/logger"
)

// Options configures document composition
type Options struct {
	Page  PageSize    `json:"page" yaml:"page"`
	Table TableLayout `json:"table" yaml:"table"`
	Theme Theme       `json:"theme" yaml:"theme"`
	// TitleHeight is the vertical space reserved for a TitleText block
	TitleHeight float64 `json:"title_height,omitempty" yaml:"title_height,omitempty"`
	// FooterOffset is the distance from the bottom edge of the page to the
	// first footer line
	FooterOffset     float64      `json:"footer_offset,omitempty" yaml:"footer_offset,omitempty"`
	FooterLineHeight float64      `json:"footer_line_height,omitempty" yaml:"footer_line_height,omitempty"`
	Info             DocumentInfo `json:"-" yaml:"-"`
}

func DefaultOptions() Options {
	return Options{
		Page:             Letter,
		Table:            DefaultTableLayout(),
		Theme:            DefaultTheme(),
		TitleHeight:      48,
		FooterOffset:     40,
		FooterLineHeight: 12,
	}
}

// Composer lays out a sequence of blocks onto a sink
type Composer struct {
	opts   Options
	theme  ResolvedTheme
	tables *TableRenderer
	log    logger.Logger
}

func NewComposer(opts Options) (*Composer, error) {
	if err := opts.Page.Validate(); err != nil {
		return nil, err
	}
	if opts.TitleHeight <= 0 || opts.TitleHeight > opts.Page.UsableHeight() {
		return nil, fmt.Errorf("title height %v must be within (0, %v]", opts.TitleHeight, opts.Page.UsableHeight())
	}
	if opts.FooterOffset <= 0 || opts.FooterOffset > opts.Page.Height {
		return nil, fmt.Errorf("footer offset %v must be within (0, %v]", opts.FooterOffset, opts.Page.Height)
	}
	if opts.FooterLineHeight <= 0 {
		return nil, fmt.Errorf("footer line height %v must be positive", opts.FooterLineHeight)
	}
	theme := opts.Theme.Resolve()
	return &Composer{
		opts:   opts,
		theme:  theme,
		tables: NewTableRenderer(opts.Table, theme),
		log:    logger.GetLogger("pdf"),
	}, nil
}

// Compose draws blocks in order onto an open sink. Each call uses its own
// tracker. On any error the sink is aborted and the error returned; the caller
// still owns closing the sink.
func (c *Composer) Compose(blocks []Block, sink Sink) error {
	if err := c.compose(blocks, sink); err != nil {
		sink.Abort()
		return err
	}
	return nil
}

func (c *Composer) compose(blocks []Block, sink Sink) error {
	blocks = normalize(blocks)
	if err := c.validate(blocks); err != nil {
		return err
	}

	tracker := NewTracker(c.opts.Page, func(page int) error {
		return sink.Emit(Op{Kind: OpNewPage, Page: page})
	})
	if err := sink.Emit(Op{Kind: OpNewPage, Page: 0}); err != nil {
		return err
	}

	for _, block := range blocks {
		switch b := block.(type) {
		case TitleText:
			if err := c.drawTitle(b, tracker, sink); err != nil {
				return err
			}
		case Table:
			next, err := c.tables.Draw(b.Title, b.Grid, b.Columns, tracker, sink)
			if err != nil {
				return err
			}
			tracker.Advance(next - tracker.Cursor().Y)
		case FooterText:
			if err := c.drawFooter(b, tracker.Cursor().Page, sink); err != nil {
				return err
			}
		}
	}

	c.log.Debugf("composed %d blocks onto %d pages", len(blocks), tracker.Cursor().Page+1)
	return nil
}

// validate rejects everything that can be known to fail before the first op
func (c *Composer) validate(blocks []Block) error {
	if err := validateBlocks(blocks); err != nil {
		return err
	}
	for _, block := range blocks {
		if f, ok := block.(FooterText); ok {
			if need := float64(len(f.Lines)) * c.opts.FooterLineHeight; need > c.opts.FooterOffset {
				return layoutErrorf(ErrBlockTooLarge, "footer", "%d lines need %v below the footer offset, have %v", len(f.Lines), need, c.opts.FooterOffset)
			}
			continue
		}
		t, ok := block.(Table)
		if !ok {
			continue
		}
		if err := t.Columns.Validate(c.opts.Page.UsableWidth()); err != nil {
			return withBlock(err, t.Title)
		}
		if err := t.Grid.Validate(len(t.Columns.Widths)); err != nil {
			return withBlock(err, t.Title)
		}
		if head := c.opts.Table.TitleHeight + t.Columns.RowHeight; head > c.opts.Page.UsableHeight() {
			return layoutErrorf(ErrBlockTooLarge, t.Title, "title and header need %v, page holds %v", head, c.opts.Page.UsableHeight())
		}
	}
	return nil
}

func (c *Composer) drawTitle(b TitleText, tracker *Tracker, sink Sink) error {
	y, err := tracker.Reserve(c.opts.TitleHeight)
	if err != nil {
		return withBlock(err, "title")
	}
	return sink.Emit(Op{
		Kind: OpText, Page: tracker.Cursor().Page,
		X: c.opts.Page.Left(), Y: y,
		W: c.opts.Page.UsableWidth(), H: c.theme.Title.Size * 1.2,
		Text: b.Text, Font: c.theme.Title,
	})
}

// drawFooter pins footer lines to the bottom of the page, independent of the
// cursor.
func (c *Composer) drawFooter(b FooterText, page int, sink Sink) error {
	y := c.opts.Page.Height - c.opts.FooterOffset
	for i, line := range b.Lines {
		style := c.theme.Footer
		if i > 0 {
			style = c.theme.FooterMuted
		}
		if err := sink.Emit(Op{
			Kind: OpText, Page: page,
			X: c.opts.Page.Left(), Y: y,
			W: c.opts.Page.UsableWidth(), H: c.opts.FooterLineHeight,
			Text: line, Font: style,
		}); err != nil {
			return err
		}
		y += c.opts.FooterLineHeight
	}
	return nil
}

func normalize(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		switch v := b.(type) {
		case *TitleText:
			if v == nil {
				b = nil
			} else {
				b = *v
			}
		case *Table:
			if v == nil {
				b = nil
			} else {
				b = *v
			}
		case *FooterText:
			if v == nil {
				b = nil
			} else {
				b = *v
			}
		}
		out[i] = b
	}
	return out
}

// Render composes blocks into a PDF written to w. The sink is closed on every
// path; when composition fails nothing is written to w.
func Render(w io.Writer, blocks []Block, opts Options) (err error) {
	c, err := NewComposer(opts)
	if err != nil {
		return err
	}

	sink := NewFPDFSink(opts.Page, opts.Info)
	if err := sink.Open(w); err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()

	return c.Compose(blocks, sink)
}

// RenderBytes is Render into a buffer
func RenderBytes(blocks []Block, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, blocks, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
