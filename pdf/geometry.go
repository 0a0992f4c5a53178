package pdf

import (
	"fmt"

	"github.com/flanksource/commons/logger"

	"github.com/propintel/underwrite/api"
)

// PageSize represents the page configuration, in points
type PageSize struct {
	api.Rectangle `json:",inline" yaml:",inline"`
	Margins       api.Padding `json:"margins,omitempty" yaml:"margins,omitempty"`
}

var (
	Letter = PageSize{Rectangle: api.Rectangle{Width: 612, Height: 792}, Margins: api.Uniform(40)}
	A4     = PageSize{Rectangle: api.Rectangle{Width: 595.28, Height: 841.89}, Margins: api.Uniform(40)}
)

// PageSizeByName returns a known page size, margins default to 40pt
func PageSizeByName(name string) (PageSize, error) {
	switch name {
	case "", "letter", "Letter":
		return Letter, nil
	case "a4", "A4":
		return A4, nil
	}
	return PageSize{}, fmt.Errorf("unknown page size %q", name)
}

func (p PageSize) Top() float64    { return p.Margins.Top }
func (p PageSize) Bottom() float64 { return p.Height - p.Margins.Bottom }
func (p PageSize) Left() float64   { return p.Margins.Left }

func (p PageSize) UsableHeight() float64 {
	return p.Bottom() - p.Top()
}

func (p PageSize) UsableWidth() float64 {
	return p.Width - p.Margins.Left - p.Margins.Right
}

func (p PageSize) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("page size must be positive, got %vx%v", p.Width, p.Height)
	}
	if p.UsableHeight() <= 0 || p.UsableWidth() <= 0 {
		return fmt.Errorf("margins %+v leave no usable area on a %vx%v page", p.Margins, p.Width, p.Height)
	}
	return nil
}

// Cursor is the current drawing position. Only the Tracker mutates it.
type Cursor struct {
	X    float64
	Y    float64
	Page int
}

// PageBreakFunc is called when the tracker starts a new page, with the index
// of the new page.
type PageBreakFunc func(page int) error

// Tracker allocates vertical space on the page and owns every page break
// decision. It never draws. A tracker serves exactly one document render and
// is not safe for concurrent use.
type Tracker struct {
	page    PageSize
	cursor  Cursor
	onBreak PageBreakFunc
	breaks  int
	log     logger.Logger
}

// NewTracker returns a tracker positioned at the top-left margin of page 0.
// onBreak may be nil.
func NewTracker(page PageSize, onBreak PageBreakFunc) *Tracker {
	return &Tracker{
		page:    page,
		cursor:  Cursor{X: page.Left(), Y: page.Top()},
		onBreak: onBreak,
		log:     logger.GetLogger("pdf"),
	}
}

// Reserve allocates height on the current page, or on a new page when the
// remaining space is insufficient, and returns the top y of the allocation.
func (t *Tracker) Reserve(height float64) (float64, error) {
	if height <= 0 {
		return 0, layoutErrorf(ErrInvalidHeight, "", "requested %v", height)
	}
	if height > t.page.UsableHeight() {
		return 0, layoutErrorf(ErrBlockTooLarge, "", "requested %v, page holds %v", height, t.page.UsableHeight())
	}

	if t.cursor.Y+height > t.page.Bottom() {
		next := t.cursor.Page + 1
		if t.onBreak != nil {
			if err := t.onBreak(next); err != nil {
				return 0, err
			}
		}
		t.log.Debugf("page break at y=%.1f for %.1f, starting page %d", t.cursor.Y, height, next)
		t.cursor.Page = next
		t.cursor.Y = t.page.Top()
		t.breaks++
	}

	y := t.cursor.Y
	t.cursor.Y += height
	return y, nil
}

// Advance moves the cursor down without breaking the page. The cursor stops at
// the bottom edge so the next Reserve starts a new page.
func (t *Tracker) Advance(delta float64) {
	if delta <= 0 {
		return
	}
	t.cursor.Y = min(t.cursor.Y+delta, t.page.Bottom())
}

// Fits reports whether height fits on the current page without a break
func (t *Tracker) Fits(height float64) bool {
	return t.cursor.Y+height <= t.page.Bottom()
}

func (t *Tracker) Remaining() float64 {
	return t.page.Bottom() - t.cursor.Y
}

func (t *Tracker) Cursor() Cursor {
	return t.cursor
}

func (t *Tracker) Page() PageSize {
	return t.page
}

// Breaks returns the number of page breaks inserted so far
func (t *Tracker) Breaks() int {
	return t.breaks
}
