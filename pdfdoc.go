package pagedoc

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// pdfDocument assembles full-bleed page images into a PDF sized to a
// PageSize. The first page exists from the start; every later image gets a
// fresh page, so images and pages map one to one.
type pdfDocument struct {
	pdf   *gofpdf.Fpdf
	size  PageSize
	pages int
}

func newPDFDocument(size PageSize) *pdfDocument {
	orientation := "P"
	if size.Orientation() == OrientationLandscape {
		orientation = "L"
	}

	// gofpdf swaps the sides for "L", so the base size is always portrait.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size: gofpdf.SizeType{
			Wd: math.Min(size.Width, size.Height),
			Ht: math.Max(size.Width, size.Height),
		},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	return &pdfDocument{pdf: pdf, size: size}
}

// addPage places a PNG at (0,0) covering the whole page.
func (d *pdfDocument) addPage(png []byte) error {
	if d.pages > 0 {
		d.pdf.AddPage()
	}

	name := "page-" + strconv.Itoa(d.pages+1)
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(png))
	if d.pdf.Err() {
		return fmt.Errorf("%w: page %d: %v", ErrPDFAssembly, d.pages+1, d.pdf.Error())
	}
	d.pdf.ImageOptions(name, 0, 0, d.size.Width, d.size.Height, false, opt, 0, "")
	if d.pdf.Err() {
		return fmt.Errorf("%w: page %d: %v", ErrPDFAssembly, d.pages+1, d.pdf.Error())
	}

	d.pages++
	return nil
}

// bytes serializes the document.
func (d *pdfDocument) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFAssembly, err)
	}
	return buf.Bytes(), nil
}
