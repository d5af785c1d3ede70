package booklet

import (
	"github.com/lehigh-university-libraries/foldbook/internal/document"
	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"github.com/lehigh-university-libraries/foldbook/internal/selection"
)

// FormatUsage is the paper a booklet format needs for a selection.
type FormatUsage struct {
	Format       string `json:"format" yaml:"format"`
	Sheets       int    `json:"sheets" yaml:"sheets"`
	PrintedSides int    `json:"printed_sides" yaml:"printed_sides"`
}

// Inspection describes a source document.
type Inspection struct {
	Pages     []document.Page `json:"pages" yaml:"pages"`
	Selection []int           `json:"selection" yaml:"selection"`
	Formats   []FormatUsage   `json:"formats" yaml:"formats"`
}

// Inspect loads input and reports its pages and the paper each format
// would use for the selected pages.
func (s *Service) Inspect(input []byte, pages string) (*Inspection, error) {
	src, err := s.backend.Load(input)
	if err != nil {
		return nil, err
	}
	if src.PageCount() == 0 {
		return nil, document.ErrEmptyDocument
	}

	in := &Inspection{}
	for i := 0; i < src.PageCount(); i++ {
		p, err := src.Page(i)
		if err != nil {
			return nil, err
		}
		in.Pages = append(in.Pages, p)
	}

	in.Selection, err = selection.Select(pages, src.PageCount())
	if err != nil {
		return nil, err
	}

	for _, f := range imposition.Formats() {
		plan, err := imposition.Build(f, len(in.Selection))
		if err != nil {
			return nil, err
		}
		in.Formats = append(in.Formats, FormatUsage{
			Format:       f.String(),
			Sheets:       len(plan.Sheets),
			PrintedSides: plan.OutputPages(),
		})
	}
	return in, nil
}
