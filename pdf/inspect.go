package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	pdfreader "github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ContentType is the media type of rendered documents
const ContentType = "application/pdf"

// Info is basic structural information about a PDF
type Info struct {
	Pages int
	Size  int
}

var disableConfigDir sync.Once

func pdfcpuConfig() *model.Configuration {
	// pdfcpu would otherwise create a config directory under the user's home
	disableConfigDir.Do(pdfcpu.DisableConfigDir)
	return model.NewDefaultConfiguration()
}

// Inspect validates data with pdfcpu and returns its page count
func Inspect(data []byte) (Info, error) {
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return Info{}, fmt.Errorf("missing %%PDF header")
	}

	conf := pdfcpuConfig()
	if err := pdfcpu.Validate(bytes.NewReader(data), conf); err != nil {
		return Info{}, fmt.Errorf("invalid PDF: %w", err)
	}

	// ReadContext alone leaves the page count unset, PageCount validates first
	pages, err := pdfcpu.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return Info{}, fmt.Errorf("failed to count pages: %w", err)
	}
	return Info{Pages: pages, Size: len(data)}, nil
}

// ExtractText returns the plain text of every page, in content stream order
func ExtractText(data []byte) (string, error) {
	r, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return sb.String(), nil
}
