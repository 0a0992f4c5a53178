package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlocks() []Block {
	return []Block{
		TitleText{Text: "PropIntel AI – Underwriting Report"},
		Table{
			Title:   "Property Details",
			Grid:    CellGrid{{"Field", "Value"}, {"Address", "123 Main St"}, {"Units", 4}},
			Columns: twoColumns,
		},
		Table{
			Title:   "Financial Estimates",
			Grid:    CellGrid{{"Field", "Value"}, {"NOI", "$37,000"}, {"DSCR", 1.4}},
			Columns: twoColumns,
		},
		FooterText{Lines: []string{"PropIntel AI", "Generated: 1/2/2025"}},
	}
}

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer(DefaultOptions())
	require.NoError(t, err)
	return c
}

func composeTrace(t *testing.T, blocks []Block) []byte {
	t.Helper()
	var buf bytes.Buffer
	rec := NewRecorder()
	require.NoError(t, rec.Open(&buf))
	require.NoError(t, newTestComposer(t).Compose(blocks, rec))
	require.NoError(t, rec.Close())
	return buf.Bytes()
}

func TestComposeIsIdempotent(t *testing.T) {
	first := composeTrace(t, sampleBlocks())
	second := composeTrace(t, sampleBlocks())

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestComposeSequence(t *testing.T) {
	rec := openRecorder(t)
	require.NoError(t, newTestComposer(t).Compose(sampleBlocks(), rec))

	ops := rec.Ops()
	assert.Equal(t, Op{Kind: OpNewPage, Page: 0}, ops[0])

	title := ops[1]
	assert.Equal(t, "PropIntel AI – Underwriting Report", title.Text)
	assert.Equal(t, AlignCenter, title.Font.Align)
	assert.True(t, title.Font.Underline)
	assert.Equal(t, 24.0, title.Font.Size)
	assert.Equal(t, 40.0, title.Y)

	headings := lo.Filter(ops, func(op Op, _ int) bool {
		return op.Kind == OpText && (op.Text == "Property Details" || op.Text == "Financial Estimates")
	})
	require.Len(t, headings, 2)
	// title 48, then table 1 occupies 28+24+2*24 = 100, then gap 10
	assert.Equal(t, 88.0, headings[0].Y)
	assert.Equal(t, 198.0, headings[1].Y)
}

func TestComposeFooterIsPinnedToPageBottom(t *testing.T) {
	rec := openRecorder(t)
	require.NoError(t, newTestComposer(t).Compose(sampleBlocks(), rec))

	ops := rec.Ops()
	footer := ops[len(ops)-2:]
	assert.Equal(t, "PropIntel AI", footer[0].Text)
	assert.Equal(t, 752.0, footer[0].Y)
	assert.Equal(t, 10.0, footer[0].Font.Size)
	assert.Equal(t, "Generated: 1/2/2025", footer[1].Text)
	assert.Equal(t, 764.0, footer[1].Y)
	assert.Equal(t, 9.0, footer[1].Font.Size)
	assert.Equal(t, AlignCenter, footer[1].Font.Align)
}

func TestComposeFooterMustBeLast(t *testing.T) {
	blocks := []Block{
		FooterText{Lines: []string{"too early"}},
		TitleText{Text: "Report"},
	}

	rec := openRecorder(t)
	err := newTestComposer(t).Compose(blocks, rec)
	require.ErrorIs(t, err, ErrMisplacedFooter)
	assert.Empty(t, rec.Ops())
	assert.True(t, rec.Aborted())
}

func TestComposeRejectsBadTableBeforeDrawing(t *testing.T) {
	blocks := sampleBlocks()
	blocks[2] = Table{Title: "Broken", Grid: CellGrid{{"a"}}, Columns: twoColumns}

	rec := openRecorder(t)
	err := newTestComposer(t).Compose(blocks, rec)
	require.ErrorIs(t, err, ErrColumnMismatch)
	assert.Empty(t, rec.Ops())
	assert.True(t, rec.Aborted())

	assert.ErrorIs(t, rec.Emit(Op{Kind: OpNewPage}), ErrSinkClosed)
}

func TestComposeFooterMustFitBelowOffset(t *testing.T) {
	opts := DefaultOptions()
	opts.FooterOffset = 5
	composer, err := NewComposer(opts)
	require.NoError(t, err)

	rec := openRecorder(t)
	err = composer.Compose([]Block{
		TitleText{Text: "Report"},
		FooterText{Lines: []string{"one", "two", "three"}},
	}, rec)
	require.ErrorIs(t, err, ErrBlockTooLarge)
	assert.Empty(t, rec.Ops())

	// three default lines take 36 of the default 40
	rec = openRecorder(t)
	require.NoError(t, newTestComposer(t).Compose([]Block{
		FooterText{Lines: []string{"one", "two", "three"}},
	}, rec))
	last := rec.Ops()[len(rec.Ops())-1]
	assert.LessOrEqual(t, last.Y+last.H, Letter.Height)
}

func TestComposeNilBlock(t *testing.T) {
	var table *Table
	err := newTestComposer(t).Compose([]Block{table}, openRecorder(t))
	assert.ErrorIs(t, err, ErrInvalidBlock)
}

func TestComposeAcceptsPointerBlocks(t *testing.T) {
	rec := openRecorder(t)
	require.NoError(t, newTestComposer(t).Compose([]Block{&TitleText{Text: "Report"}}, rec))
	assert.Len(t, rec.Ops(), 2)
}

func TestComposeOverflowBreaksOncePerOverflow(t *testing.T) {
	var blocks []Block
	for i := 0; i < 12; i++ {
		blocks = append(blocks, Table{
			Title:   fmt.Sprintf("Table %d", i),
			Grid:    CellGrid{{"Field", "Value"}, {"a", 1}, {"b", 2}, {"c", 3}},
			Columns: twoColumns,
		})
	}

	rec := openRecorder(t)
	require.NoError(t, newTestComposer(t).Compose(blocks, rec))

	// Each table is 28+24+3*24 = 124 tall plus a 10 gap: five fit in 712
	pages := opsOfKind(rec.Ops(), OpNewPage)
	assert.Len(t, pages, 3)

	for _, name := range []string{"Table 5", "Table 10"} {
		heading, ok := lo.Find(rec.Ops(), func(op Op) bool { return op.Text == name })
		require.True(t, ok)
		assert.Equal(t, Letter.Top(), heading.Y, "%s starts a new page", name)
	}
}

func TestNewComposerValidatesOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.TitleHeight = 0
	_, err := NewComposer(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.FooterOffset = -1
	_, err = NewComposer(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.FooterLineHeight = 0
	_, err = NewComposer(opts)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Info = DocumentInfo{Title: "Underwriting Report", CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}

	data, err := RenderBytes(sampleBlocks(), opts)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	info, err := Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Pages)
	assert.Equal(t, len(data), info.Size)

	text, err := ExtractText(data)
	require.NoError(t, err)
	for _, want := range []string{"Property Details", "Financial Estimates", "123 Main St", "$37,000", "Generated: 1/2/2025"} {
		assert.Contains(t, text, want)
	}
	assert.Less(t, strings.Index(text, "Property Details"), strings.Index(text, "Financial Estimates"))

	again, err := RenderBytes(sampleBlocks(), opts)
	require.NoError(t, err)
	assert.Equal(t, data, again, "fixed creation date gives byte-identical documents")
}

func TestRenderLatin1Text(t *testing.T) {
	data, err := RenderBytes([]Block{TitleText{Text: "北京市 Straße"}}, DefaultOptions())
	require.NoError(t, err)

	text, err := ExtractText(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Straße")
	assert.NotContains(t, text, "北京市", "core fonts only cover cp1252")
}

func TestRenderFailureWritesNothing(t *testing.T) {
	blocks := sampleBlocks()
	blocks[1] = Table{Title: "Broken", Grid: CellGrid{{"a", "b", "c"}}, Columns: twoColumns}

	var buf bytes.Buffer
	err := Render(&buf, blocks, DefaultOptions())
	require.ErrorIs(t, err, ErrColumnMismatch)
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestRenderWriteFailure(t *testing.T) {
	err := Render(failingWriter{}, sampleBlocks(), DefaultOptions())
	var writeErr *SinkWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRenderMultiplePages(t *testing.T) {
	grid := CellGrid{{"#", "Value"}}
	for i := 0; i < 60; i++ {
		grid = append(grid, []any{i, "value"})
	}

	data, err := RenderBytes([]Block{Table{Title: "Long", Grid: grid, Columns: twoColumns}}, DefaultOptions())
	require.NoError(t, err)

	info, err := Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Pages)
}
