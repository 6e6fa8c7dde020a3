package pagedoc

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// pointsPerMM converts PDF user space units (1/72 inch) to millimeters.
const pointsPerMM = 72 / 25.4

// PageBox is the size of one PDF page in millimeters.
type PageBox struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PDFInfo describes the pages of a PDF.
type PDFInfo struct {
	Pages []PageBox `json:"pages"`
}

// PageCount returns the number of pages.
func (i *PDFInfo) PageCount() int {
	return len(i.Pages)
}

// InspectPDF reads back page count and page sizes from a PDF.
func InspectPDF(data []byte) (info *PDFInfo, err error) {
	// The reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			info, err = nil, fmt.Errorf("%w: %v", ErrPDFRead, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFRead, err)
	}

	n := r.NumPage()
	info = &PDFInfo{Pages: make([]PageBox, 0, n)}
	for i := 1; i <= n; i++ {
		box, err := mediaBox(r.Page(i))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrPDFRead, i, err)
		}
		info.Pages = append(info.Pages, box)
	}
	return info, nil
}

// mediaBox returns the page's MediaBox, inherited from the page tree when
// the page itself does not carry one.
func mediaBox(p pdf.Page) (PageBox, error) {
	v := p.V
	for !v.IsNull() {
		box := v.Key("MediaBox")
		if !box.IsNull() {
			if box.Len() != 4 {
				return PageBox{}, fmt.Errorf("malformed MediaBox %v", box)
			}
			llx, lly := box.Index(0).Float64(), box.Index(1).Float64()
			urx, ury := box.Index(2).Float64(), box.Index(3).Float64()
			return PageBox{
				Width:  (urx - llx) / pointsPerMM,
				Height: (ury - lly) / pointsPerMM,
			}, nil
		}
		v = v.Key("Parent")
	}
	return PageBox{}, fmt.Errorf("no MediaBox")
}
