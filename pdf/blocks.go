package pdf

type BlockKind int

const (
	KindTitle BlockKind = iota
	KindTable
	KindFooter
)

func (k BlockKind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindTable:
		return "table"
	case KindFooter:
		return "footer"
	}
	return "unknown"
}

// Block is one structural unit of a report. The set of blocks is closed:
// TitleText, Table and FooterText.
type Block interface {
	blockKind() BlockKind
}

// TitleText is the document title, centered across the usable width
type TitleText struct {
	Text string `json:"text" yaml:"text"`
}

// Table is a titled table
type Table struct {
	Title   string     `json:"title" yaml:"title"`
	Grid    CellGrid   `json:"grid" yaml:"grid"`
	Columns ColumnSpec `json:"columns" yaml:"columns"`
}

// FooterText is pinned to the bottom of the last page, it must be the final
// block. The first line uses the footer style, the rest the muted style.
type FooterText struct {
	Lines []string `json:"lines" yaml:"lines"`
}

func (TitleText) blockKind() BlockKind  { return KindTitle }
func (Table) blockKind() BlockKind      { return KindTable }
func (FooterText) blockKind() BlockKind { return KindFooter }

// KindOf returns the kind of a block
func KindOf(b Block) BlockKind {
	return b.blockKind()
}

// validateBlocks checks the block sequence shape before anything is drawn
func validateBlocks(blocks []Block) error {
	for i, b := range blocks {
		if b == nil {
			return layoutErrorf(ErrInvalidBlock, "", "block %d is nil", i)
		}
		if KindOf(b) == KindFooter && i != len(blocks)-1 {
			return layoutErrorf(ErrMisplacedFooter, "footer", "found at position %d of %d", i, len(blocks))
		}
	}
	return nil
}
