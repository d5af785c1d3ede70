package document

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// A6 page size in points, the size of a folded A6 booklet page.
const (
	a6Width  = 297.64
	a6Height = 419.53
)

// SampleOptions controls Sample.
type SampleOptions struct {
	Count     int
	Landscape bool
}

// Sample writes a PDF of numbered pages. Each page shows its number, a
// "Page N" label and a TOP marker, so a printed and folded booklet can be
// checked for order and orientation at a glance.
func Sample(w io.Writer, opts SampleOptions) error {
	if opts.Count < 1 {
		return fmt.Errorf("invalid page count %d", opts.Count)
	}

	width, height := a6Width, a6Height
	orientation := "P"
	if opts.Landscape {
		width, height = height, width
		orientation = "L"
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: a6Width, Ht: a6Height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(fmt.Sprintf("foldbook sample (%d pages)", opts.Count), true)

	margin := 12.0
	for n := 1; n <= opts.Count; n++ {
		doc.AddPage()

		doc.SetDrawColor(160, 160, 160)
		doc.SetLineWidth(1)
		doc.Rect(margin, margin, width-2*margin, height-2*margin, "D")

		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "B", 120)
		number := fmt.Sprintf("%d", n)
		doc.Text((width-doc.GetStringWidth(number))/2, height/2+40, number)

		doc.SetFont("Helvetica", "", 18)
		label := fmt.Sprintf("Page %d", n)
		doc.Text((width-doc.GetStringWidth(label))/2, height-margin-24, label)

		doc.SetTextColor(200, 0, 0)
		doc.SetFont("Helvetica", "B", 14)
		doc.Text((width-doc.GetStringWidth("TOP"))/2, margin+24, "TOP")
	}

	return doc.Output(w)
}
