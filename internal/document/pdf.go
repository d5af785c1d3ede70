package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// keep pdfcpu from writing its config directory into $HOME
	api.DisableConfigDir()
}

// PDF is the Backend for PDF documents.
type PDF struct{}

// NewPDF returns the PDF backend.
func NewPDF() *PDF {
	return &PDF{}
}

func configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

type pdfSource struct {
	data  []byte
	pages []Page
}

func (s *pdfSource) PageCount() int {
	return len(s.pages)
}

func (s *pdfSource) Page(i int) (Page, error) {
	if i < 0 || i >= len(s.pages) {
		return Page{}, fmt.Errorf("page index %d out of range (0-%d)", i, len(s.pages)-1)
	}
	return s.pages[i], nil
}

// Load validates a PDF and reads the displayed size of every page.
func (p *PDF) Load(data []byte) (Source, error) {
	if len(data) == 0 {
		return nil, &LoadError{Err: errors.New("empty input")}
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), configuration())
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &LoadError{Err: err}
	}

	src := &pdfSource{
		data:  data,
		pages: make([]Page, 0, ctx.PageCount),
	}
	for i := 1; i <= ctx.PageCount; i++ {
		_, _, inh, err := ctx.PageDict(i, false)
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("page %d: %w", i, err)}
		}
		// gofpdi imports the media box, so that is the size we report
		box := inh.MediaBox
		if box == nil {
			box = inh.CropBox
		}
		if box == nil {
			return nil, &LoadError{Err: fmt.Errorf("page %d has no media box", i)}
		}
		w, h := box.Width(), box.Height()
		if inh.Rotate%180 != 0 {
			w, h = h, w
		}
		src.pages = append(src.pages, Page{Index: i - 1, Width: w, Height: h})
	}

	slog.Debug("Loaded PDF", "pages", len(src.pages), "bytes", len(data))
	return src, nil
}

// Create starts an output document that can draw pages of src. src must
// have been returned by Load.
func (p *PDF) Create(src Source) (Sink, error) {
	ps, ok := src.(*pdfSource)
	if !ok {
		return nil, fmt.Errorf("pdf backend cannot draw pages from %T", src)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: 595.28, Ht: 841.89},
	})
	doc.SetAutoPageBreak(false, 0)

	return &pdfSink{
		doc:       doc,
		importer:  gofpdi.NewImporter(),
		stream:    bytes.NewReader(ps.data),
		templates: make(map[int]int),
	}, nil
}

// Optimize runs pdfcpu's optimizer over a composed document.
func (p *PDF) Optimize(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &out, configuration()); err != nil {
		return nil, fmt.Errorf("optimize output: %w", err)
	}
	return out.Bytes(), nil
}

type pdfSink struct {
	doc      *gofpdf.Fpdf
	importer *gofpdi.Importer
	// stream is handed to gofpdi by address so the parsed source is reused
	// across imports.
	stream    io.ReadSeeker
	templates map[int]int
	height    float64
	pages     int
}

func (s *pdfSink) AddPage(width, height float64) error {
	s.doc.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	s.height = height
	s.pages++
	return s.doc.Error()
}

func (s *pdfSink) template(page Page) (tpl int, err error) {
	if tpl, ok := s.templates[page.Index]; ok {
		return tpl, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &LoadError{Err: fmt.Errorf("import page %d: %v", page.Index+1, r)}
		}
	}()
	tpl = s.importer.ImportPageFromStream(s.doc, &s.stream, page.Index+1, "/MediaBox")
	s.templates[page.Index] = tpl
	return tpl, nil
}

func (s *pdfSink) DrawPage(page Page, rect Rect, rotation int) (err error) {
	if s.pages == 0 {
		return errors.New("draw before the first page was added")
	}
	tpl, err := s.template(page)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw page %d: %v", page.Index+1, r)
		}
	}()

	// gofpdf measures y from the top of the page
	top := s.height - rect.Y - rect.H
	if rotation == 180 {
		cx, cy := rect.Center()
		s.doc.TransformBegin()
		s.doc.TransformRotate(180, cx, s.height-cy)
		s.importer.UseImportedTemplate(s.doc, tpl, rect.X, top, rect.W, rect.H)
		s.doc.TransformEnd()
	} else {
		s.importer.UseImportedTemplate(s.doc, tpl, rect.X, top, rect.W, rect.H)
	}
	return s.doc.Error()
}

func (s *pdfSink) Line(x0, y0, x1, y1 float64, style LineStyle) error {
	if s.pages == 0 {
		return errors.New("draw before the first page was added")
	}
	s.doc.SetLineWidth(style.Width)
	s.doc.SetDrawColor(style.Gray, style.Gray, style.Gray)
	s.doc.SetDashPattern(style.Dash, 0)
	s.doc.Line(x0, s.height-y0, x1, s.height-y1)
	s.doc.SetDashPattern([]float64{}, 0)
	return s.doc.Error()
}

func (s *pdfSink) Output(w io.Writer) error {
	if s.pages == 0 {
		return errors.New("output has no pages")
	}
	return s.doc.Output(w)
}
