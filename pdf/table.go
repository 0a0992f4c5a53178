package pdf

import (
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"
)

// CellGrid is an ordered list of rows, row 0 is the header row. Cells are
// strings or numbers and are rendered with %v.
type CellGrid [][]any

// ColumnSpec declares the column widths and the row height shared by every
// row of a table.
type ColumnSpec struct {
	Widths    []float64 `json:"widths" yaml:"widths"`
	RowHeight float64   `json:"row_height" yaml:"row_height"`
}

func (c ColumnSpec) TotalWidth() float64 {
	return lo.Sum(c.Widths)
}

// Validate checks the spec against the usable width of the page
func (c ColumnSpec) Validate(usableWidth float64) error {
	if len(c.Widths) == 0 {
		return &LayoutError{Kind: ErrInvalidColumnSpec, Detail: "no columns"}
	}
	for i, w := range c.Widths {
		if w <= 0 {
			return layoutErrorf(ErrInvalidColumnSpec, "", "column %d has width %v", i, w)
		}
	}
	if c.RowHeight <= 0 {
		return layoutErrorf(ErrInvalidColumnSpec, "", "row height %v", c.RowHeight)
	}
	if total := c.TotalWidth(); total > usableWidth {
		return layoutErrorf(ErrTooWide, "", "columns total %v, page allows %v", total, usableWidth)
	}
	return nil
}

// Validate checks that every row has exactly columns cells
func (g CellGrid) Validate(columns int) error {
	if len(g) == 0 {
		return &LayoutError{Kind: ErrEmptyGrid, Detail: "a table needs at least a header row"}
	}
	for i, row := range g {
		if len(row) != columns {
			return layoutErrorf(ErrColumnMismatch, "", "row %d has %d cells, expected %d", i, len(row), columns)
		}
	}
	return nil
}

// TableLayout holds the fixed measurements of table rendering
type TableLayout struct {
	// TitleHeight is the vertical space of the section heading above the header row
	TitleHeight float64 `json:"title_height,omitempty" yaml:"title_height,omitempty"`
	// CellPadding is the horizontal inset of text inside each cell
	CellPadding float64 `json:"cell_padding,omitempty" yaml:"cell_padding,omitempty"`
	// Gap is added below the last row of a table
	Gap float64 `json:"gap,omitempty" yaml:"gap,omitempty"`
}

func DefaultTableLayout() TableLayout {
	return TableLayout{TitleHeight: 28, CellPadding: 8, Gap: 10}
}

// TableRenderer draws titled tables. It is stateless apart from its layout and
// theme, so one renderer can serve many documents.
type TableRenderer struct {
	Layout TableLayout
	Theme  ResolvedTheme
	log    logger.Logger
}

func NewTableRenderer(layout TableLayout, theme ResolvedTheme) *TableRenderer {
	return &TableRenderer{Layout: layout, Theme: theme, log: logger.GetLogger("pdf")}
}

// Draw draws title, the header row and the data rows of grid and returns the y
// at which the next block should start: just below the last row plus the
// table gap. The gap is not reserved on the tracker.
//
// All validation happens before the first op is emitted, so a failed Draw has
// no drawing side effects.
func (r *TableRenderer) Draw(title string, grid CellGrid, spec ColumnSpec, tracker *Tracker, sink Sink) (float64, error) {
	size := tracker.Page()
	if err := spec.Validate(size.UsableWidth()); err != nil {
		return 0, withBlock(err, title)
	}
	if err := grid.Validate(len(spec.Widths)); err != nil {
		return 0, withBlock(err, title)
	}
	if head := r.Layout.TitleHeight + spec.RowHeight; head > size.UsableHeight() {
		return 0, layoutErrorf(ErrBlockTooLarge, title, "title and header need %v, page holds %v", head, size.UsableHeight())
	}

	x := size.Left()
	totalWidth := spec.TotalWidth()

	// The heading is kept on the same page as the header row.
	y, err := tracker.Reserve(r.Layout.TitleHeight + spec.RowHeight)
	if err != nil {
		return 0, withBlock(err, title)
	}
	pageIdx := tracker.Cursor().Page

	if err := sink.Emit(Op{
		Kind: OpText, Page: pageIdx,
		X: x, Y: y, W: size.UsableWidth(), H: r.Theme.Heading.Size * 1.2,
		Text: title, Font: r.Theme.Heading,
	}); err != nil {
		return 0, err
	}

	headerY := y + r.Layout.TitleHeight
	if err := sink.Emit(Op{
		Kind: OpRect, Page: pageIdx,
		X: x, Y: headerY, W: totalWidth, H: spec.RowHeight,
		Shape: r.Theme.HeaderFill,
	}); err != nil {
		return 0, err
	}
	if err := r.emitCells(sink, pageIdx, x, headerY, grid[0], spec, r.Theme.Header, false); err != nil {
		return 0, err
	}

	for _, row := range grid[1:] {
		rowY, err := tracker.Reserve(spec.RowHeight)
		if err != nil {
			return 0, withBlock(err, title)
		}
		if err := r.emitCells(sink, tracker.Cursor().Page, x, rowY, row, spec, r.Theme.Cell, true); err != nil {
			return 0, err
		}
	}

	r.log.Debugf("table %q: %d rows, ends at y=%.1f page %d", title, len(grid), tracker.Cursor().Y, tracker.Cursor().Page)
	return tracker.Cursor().Y + r.Layout.Gap, nil
}

func (r *TableRenderer) emitCells(sink Sink, page int, x, y float64, row []any, spec ColumnSpec, style TextStyle, bordered bool) error {
	cx := x
	for i, cell := range row {
		w := spec.Widths[i]
		if bordered {
			if err := sink.Emit(Op{
				Kind: OpRect, Page: page,
				X: cx, Y: y, W: w, H: spec.RowHeight,
				Shape: r.Theme.CellBorder,
			}); err != nil {
				return err
			}
		}
		if err := sink.Emit(Op{
			Kind: OpText, Page: page,
			X: cx + r.Layout.CellPadding, Y: y,
			W: max(w-2*r.Layout.CellPadding, 0), H: spec.RowHeight,
			Text: cellText(cell), Font: style,
		}); err != nil {
			return err
		}
		cx += w
	}
	return nil
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprintf("%v", v)
}

// withBlock names the block in a LayoutError that has no block name yet
func withBlock(err error, block string) error {
	if le, ok := err.(*LayoutError); ok && le.Block == "" {
		copied := *le
		copied.Block = block
		return &copied
	}
	return err
}
