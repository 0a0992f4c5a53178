package pdf

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoColumns = ColumnSpec{Widths: []float64{170, 230}, RowHeight: 24}

func newTestRenderer() *TableRenderer {
	return NewTableRenderer(DefaultTableLayout(), DefaultTheme().Resolve())
}

func openRecorder(t *testing.T) *Recorder {
	t.Helper()
	rec := NewRecorder()
	require.NoError(t, rec.Open(nil))
	return rec
}

func opsOfKind(ops []Op, kind OpKind) []Op {
	return lo.Filter(ops, func(op Op, _ int) bool { return op.Kind == kind })
}

func TestTableDraw(t *testing.T) {
	rec := openRecorder(t)
	tracker := NewTracker(Letter, nil)

	grid := CellGrid{
		{"Field", "Value"},
		{"Address", "123 Main St"},
		{"Units", 4},
	}
	next, err := newTestRenderer().Draw("Property Details", grid, twoColumns, tracker, rec)
	require.NoError(t, err)

	ops := rec.Ops()
	// heading, header fill, 2 header texts, 2 rows of 2 borders + 2 texts
	require.Len(t, ops, 12)

	heading := ops[0]
	assert.Equal(t, OpText, heading.Kind)
	assert.Equal(t, "Property Details", heading.Text)
	assert.Equal(t, 40.0, heading.Y)

	fill := ops[1]
	assert.Equal(t, OpRect, fill.Kind)
	assert.True(t, fill.Shape.Fill)
	assert.Equal(t, RGB{0x1e, 0x3a, 0x8a}, fill.Shape.FillColor)
	assert.Equal(t, 400.0, fill.W)
	assert.Equal(t, 68.0, fill.Y)

	assert.Equal(t, "Field", ops[2].Text)
	assert.Equal(t, White, ops[2].Font.Color)
	assert.True(t, ops[2].Font.Bold)
	assert.Equal(t, 48.0, ops[2].X)
	assert.Equal(t, "Value", ops[3].Text)
	assert.Equal(t, 218.0, ops[3].X)

	texts := opsOfKind(ops[4:], OpText)
	assert.Equal(t, []string{"Address", "123 Main St", "Units", "4"}, lo.Map(texts, func(op Op, _ int) string { return op.Text }))
	assert.Equal(t, Black, texts[0].Font.Color)

	borders := opsOfKind(ops[4:], OpRect)
	require.Len(t, borders, 4)
	for _, b := range borders {
		assert.True(t, b.Shape.Stroke)
		assert.False(t, b.Shape.Fill)
	}
	assert.Equal(t, 92.0, borders[0].Y)
	assert.Equal(t, 116.0, borders[2].Y)

	// title 28 + header 24 + 2 rows of 24
	assert.Equal(t, 140.0, tracker.Cursor().Y)
	assert.Equal(t, 150.0, next)
}

func TestTableHeaderOnly(t *testing.T) {
	rec := openRecorder(t)
	tracker := NewTracker(Letter, nil)
	layout := DefaultTableLayout()

	start := tracker.Cursor().Y
	next, err := newTestRenderer().Draw("Empty", CellGrid{{"Field", "Value"}}, twoColumns, tracker, rec)
	require.NoError(t, err)

	assert.Equal(t, layout.TitleHeight+twoColumns.RowHeight, tracker.Cursor().Y-start)
	assert.Equal(t, tracker.Cursor().Y+layout.Gap, next)
	assert.Len(t, rec.Ops(), 4)
}

func TestTableColumnMismatchHasNoSideEffects(t *testing.T) {
	grids := []CellGrid{
		{{"Field"}},
		{{"Field", "Value", "Extra"}},
		{{"Field", "Value"}, {"only one"}},
		{{"Field", "Value"}, {"a", "b"}, {"a", "b", "c"}},
	}

	for _, grid := range grids {
		rec := openRecorder(t)
		tracker := NewTracker(Letter, nil)

		_, err := newTestRenderer().Draw("Broken", grid, twoColumns, tracker, rec)
		require.ErrorIs(t, err, ErrColumnMismatch)
		assert.Contains(t, err.Error(), "Broken")
		assert.Empty(t, rec.Ops())
		assert.Equal(t, Letter.Top(), tracker.Cursor().Y)
	}
}

func TestTableValidation(t *testing.T) {
	tests := []struct {
		name string
		grid CellGrid
		spec ColumnSpec
		want error
	}{
		{"empty grid", CellGrid{}, twoColumns, ErrEmptyGrid},
		{"no columns", CellGrid{{}}, ColumnSpec{RowHeight: 24}, ErrInvalidColumnSpec},
		{"zero width", CellGrid{{"a", "b"}}, ColumnSpec{Widths: []float64{0, 10}, RowHeight: 24}, ErrInvalidColumnSpec},
		{"zero row height", CellGrid{{"a", "b"}}, ColumnSpec{Widths: []float64{10, 10}}, ErrInvalidColumnSpec},
		{"too wide", CellGrid{{"a", "b"}}, ColumnSpec{Widths: []float64{300, 300}, RowHeight: 24}, ErrTooWide},
		{"row taller than page", CellGrid{{"a", "b"}}, ColumnSpec{Widths: []float64{10, 10}, RowHeight: 700}, ErrBlockTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := openRecorder(t)
			_, err := newTestRenderer().Draw(tt.name, tt.grid, tt.spec, NewTracker(Letter, nil), rec)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, rec.Ops())
		})
	}
}

func TestTableLongTextIsClipped(t *testing.T) {
	rec := openRecorder(t)
	long := "A very long street address that will never fit in a 230pt column of 12pt text"

	_, err := newTestRenderer().Draw("Clip", CellGrid{{"Field", "Value"}, {"Address", long}}, twoColumns, NewTracker(Letter, nil), rec)
	require.NoError(t, err)

	cell, ok := lo.Find(rec.Ops(), func(op Op) bool { return op.Text == long })
	require.True(t, ok)
	assert.Equal(t, 230.0-16, cell.W, "text box is the column minus the inset on both sides")
	assert.Equal(t, 40+170+8.0, cell.X)
	assert.Equal(t, twoColumns.RowHeight, cell.H)
}

func TestTableBreaksAcrossPages(t *testing.T) {
	rec := openRecorder(t)
	tracker := NewTracker(Letter, func(page int) error {
		return rec.Emit(Op{Kind: OpNewPage, Page: page})
	})

	grid := CellGrid{{"#", "Value"}}
	for i := 1; i <= 40; i++ {
		grid = append(grid, []any{i, "row"})
	}
	_, err := newTestRenderer().Draw("Long", grid, twoColumns, tracker, rec)
	require.NoError(t, err)

	// 52 for heading+header, then 27 rows fit on page 0 (52 + 27*24 = 700)
	assert.Equal(t, 1, tracker.Breaks())
	pages := opsOfKind(rec.Ops(), OpNewPage)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Page)

	row28, ok := lo.Find(rec.Ops(), func(op Op) bool { return op.Kind == OpText && op.Text == "28" })
	require.True(t, ok)
	assert.Equal(t, 1, row28.Page)
	assert.Equal(t, Letter.Top(), row28.Y)

	row27, ok := lo.Find(rec.Ops(), func(op Op) bool { return op.Kind == OpText && op.Text == "27" })
	require.True(t, ok)
	assert.Equal(t, 0, row27.Page)
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", cellText(nil))
	assert.Equal(t, "1.4", cellText(1.4))
	assert.Equal(t, "1995", cellText(1995))
	assert.Equal(t, "page", cellText(OpNewPage))
}
