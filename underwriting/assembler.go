package underwriting

import (
	"fmt"
	"time"

	"github.com/propintel/underwrite/pdf"
)

const (
	// ReportFilename names downloaded and rendered reports
	ReportFilename = "underwriting-report.pdf"

	DefaultTitle   = "PropIntel AI – Underwriting Report"
	DefaultTagline = "PropIntel AI – Intelligent Real Estate Underwriting Platform"
)

// DefaultColumns are the label and value columns of every report table
var DefaultColumns = pdf.ColumnSpec{Widths: []float64{170, 230}, RowHeight: 24}

var header = []any{"Field", "Value"}

type AssemblerOptions struct {
	Title   string         `json:"title,omitempty" yaml:"title,omitempty"`
	Tagline string         `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Columns pdf.ColumnSpec `json:"columns,omitempty" yaml:"columns,omitempty"`
	// GeneratedAt is printed in the footer, time.Now when zero
	GeneratedAt time.Time `json:"-" yaml:"-"`
}

// Assembler maps a Record onto report blocks
type Assembler struct {
	AssemblerOptions
}

func NewAssembler(opts AssemblerOptions) *Assembler {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Tagline == "" {
		opts.Tagline = DefaultTagline
	}
	if len(opts.Columns.Widths) == 0 {
		opts.Columns = DefaultColumns
	}
	return &Assembler{AssemblerOptions: opts}
}

// ToBlocks returns the title, the three report tables and the footer
func (a *Assembler) ToBlocks(r Record) []pdf.Block {
	generated := a.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	return []pdf.Block{
		pdf.TitleText{Text: a.Title},
		a.table("Property Details", r.propertyRows()),
		a.table("Financial Estimates", r.financialRows()),
		a.table("Demographics & Risk", r.demographicRows()),
		pdf.FooterText{Lines: []string{
			a.Tagline,
			fmt.Sprintf("Risk assessment: %s", r.Risk()),
			fmt.Sprintf("Generated: %s", generated.Format("1/2/2006")),
		}},
	}
}

func (a *Assembler) table(title string, rows [][]any) pdf.Table {
	grid := make(pdf.CellGrid, 0, len(rows)+1)
	grid = append(grid, header)
	grid = append(grid, rows...)
	return pdf.Table{Title: title, Grid: grid, Columns: a.Columns}
}

func (r Record) propertyRows() [][]any {
	return [][]any{
		{"Address", r.Address},
		{"Type", string(r.Type)},
		{"Year Built", r.YearBuilt},
		{"Sq. Ft.", r.SqFt},
		{"Units", r.Units},
		{"Estimated Value", Currency(r.Value)},
	}
}

func (r Record) financialRows() [][]any {
	return [][]any{
		{"Gross Rent", Currency(r.GrossRent)},
		{"Vacancy", Percent(r.Vacancy)},
		{"Operating Expenses", Currency(r.Expenses)},
		{"NOI", Currency(r.NOI)},
		{"Cap Rate", Percent(r.CapRate)},
		{"DSCR", Decimal(r.DSCR)},
	}
}

func (r Record) demographicRows() [][]any {
	return [][]any{
		{"Crime Score", OutOf(r.CrimeScore, 10)},
		{"Walk Score", OutOf(r.WalkScore, 100)},
		{"Median Income", Currency(r.MedianIncome)},
		{"Population Density", fmt.Sprintf("%d /sq mi", r.PopulationDensity)},
		{"School Rating", OutOf(r.SchoolRating, 10)},
	}
}
