package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// DocumentInfo is written into the PDF info dictionary
type DocumentInfo struct {
	Title     string
	Author    string
	Creator   string
	CreatedAt time.Time
}

// FPDFSink renders ops onto a gofpdf document. Ops are applied in emission
// order; the finished document is written to the output on Close.
type FPDFSink struct {
	page  PageSize
	info  DocumentInfo
	state sinkState
	w     io.Writer
	doc   *gofpdf.Fpdf
	tr    func(string) string
}

func NewFPDFSink(page PageSize, info DocumentInfo) *FPDFSink {
	return &FPDFSink{page: page, info: info}
}

func (s *FPDFSink) Open(w io.Writer) error {
	if s.state != stateNew {
		return ErrSinkAlreadyOpen
	}
	if w == nil {
		return fmt.Errorf("pdf sink needs an output writer")
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: s.page.Width, Ht: s.page.Height},
	})
	// Layout is owned by the tracker, gofpdf must never break pages itself.
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCellMargin(0)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	if s.info.Title != "" {
		doc.SetTitle(s.info.Title, true)
	}
	if s.info.Author != "" {
		doc.SetAuthor(s.info.Author, true)
	}
	if s.info.Creator != "" {
		doc.SetCreator(s.info.Creator, true)
	}
	if !s.info.CreatedAt.IsZero() {
		doc.SetCreationDate(s.info.CreatedAt)
	}

	s.doc = doc
	s.tr = tr
	s.w = w
	s.state = stateOpen
	return nil
}

func (s *FPDFSink) Emit(op Op) error {
	if err := s.state.checkEmit(); err != nil {
		return err
	}

	switch op.Kind {
	case OpNewPage:
		s.doc.AddPage()
	case OpRect:
		s.drawRect(op)
	case OpText:
		s.drawText(op)
	default:
		return fmt.Errorf("unsupported op %s", op.Kind)
	}

	if err := s.doc.Error(); err != nil {
		return &SinkWriteError{Err: fmt.Errorf("%s: %w", op.Kind, err)}
	}
	return nil
}

func (s *FPDFSink) drawRect(op Op) {
	style := ""
	if op.Shape.Fill {
		s.doc.SetFillColor(op.Shape.FillColor.R, op.Shape.FillColor.G, op.Shape.FillColor.B)
		style += "F"
	}
	if op.Shape.Stroke {
		s.doc.SetDrawColor(op.Shape.LineColor.R, op.Shape.LineColor.G, op.Shape.LineColor.B)
		s.doc.SetLineWidth(op.Shape.LineWidth)
		style += "D"
	}
	if style == "" {
		return
	}
	s.doc.Rect(op.X, op.Y, op.W, op.H, style)
}

func (s *FPDFSink) drawText(op Op) {
	if op.Text == "" || op.W <= 0 || op.H <= 0 {
		return
	}

	s.doc.SetFont(op.Font.Family, fontStyle(op.Font), op.Font.Size)
	s.doc.SetTextColor(op.Font.Color.R, op.Font.Color.G, op.Font.Color.B)

	s.doc.ClipRect(op.X, op.Y, op.W, op.H, false)
	s.doc.SetXY(op.X, op.Y)
	s.doc.CellFormat(op.W, op.H, s.tr(op.Text), "", 0, alignStr(op.Font.Align)+"M", false, 0, "")
	s.doc.ClipEnd()
}

// Abort discards the document, a following Close writes nothing
func (s *FPDFSink) Abort() {
	if s.state == stateOpen {
		s.state = stateAborted
	}
}

func (s *FPDFSink) Close() error {
	switch s.state {
	case stateClosed:
		return nil
	case stateNew, stateAborted:
		s.state = stateClosed
		s.doc = nil
		return nil
	}

	s.state = stateClosed
	doc := s.doc
	s.doc = nil
	if err := doc.Output(s.w); err != nil {
		return &SinkWriteError{Err: err}
	}
	return nil
}

// PageCount returns the number of pages added so far
func (s *FPDFSink) PageCount() int {
	if s.doc == nil {
		return 0
	}
	return s.doc.PageCount()
}

func fontStyle(t TextStyle) string {
	style := ""
	if t.Bold {
		style += "B"
	}
	if t.Italic {
		style += "I"
	}
	if t.Underline {
		style += "U"
	}
	return style
}

func alignStr(a Align) string {
	switch a {
	case AlignCenter:
		return "C"
	case AlignRight:
		return "R"
	}
	return "L"
}
