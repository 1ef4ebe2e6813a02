package invoice

import "math"

// A4 portrait dimensions in millimeters.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// Gallery grid constants: a fixed 3-column grid with reserved header and
// footer bands on every gallery page.
const (
	galleryColumns       = 3
	galleryHorizontalGap = 8.0
	galleryVerticalGap   = 12.0
	galleryStartX        = 14.0
	galleryTopOffset     = 30.0
	galleryFooterReserve = 32.0
	galleryNameBudget    = 26
)

// GalleryLayout is the deterministic card grid of the gallery appendix. All
// measurements are millimeters.
type GalleryLayout struct {
	Columns      int
	CardWidth    float64
	ImageSize    float64
	CardHeight   float64
	RowsPerPage  int
	CardsPerPage int
}

// NewGalleryLayout computes the grid for a page of the given size. Card
// count per page derives from the vertical space left after the header and
// footer reserves; at least one row always fits.
func NewGalleryLayout(pageWidth, pageHeight float64) GalleryLayout {
	cardWidth := (pageWidth - galleryStartX*2 - galleryHorizontalGap*(galleryColumns-1)) / galleryColumns
	imageSize := cardWidth - 10
	cardHeight := imageSize + 18

	available := pageHeight - galleryTopOffset - galleryFooterReserve + galleryVerticalGap
	rowsPerPage := int(math.Floor(available / (cardHeight + galleryVerticalGap)))
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}

	return GalleryLayout{
		Columns:      galleryColumns,
		CardWidth:    cardWidth,
		ImageSize:    imageSize,
		CardHeight:   cardHeight,
		RowsPerPage:  rowsPerPage,
		CardsPerPage: galleryColumns * rowsPerPage,
	}
}

// PageSpan is a half-open [Start, End) range of card indexes on one page.
type PageSpan struct {
	Start int
	End   int
}

// Plan splits n cards into page spans; a new page starts whenever the grid
// is full.
func (g GalleryLayout) Plan(n int) []PageSpan {
	if n <= 0 {
		return nil
	}
	spans := make([]PageSpan, 0, (n+g.CardsPerPage-1)/g.CardsPerPage)
	for start := 0; start < n; start += g.CardsPerPage {
		end := start + g.CardsPerPage
		if end > n {
			end = n
		}
		spans = append(spans, PageSpan{Start: start, End: end})
	}
	return spans
}

// TruncateName fits a card label to the fixed character budget, appending
// an ellipsis when it overflows.
func TruncateName(name string) string {
	if name == "" {
		return "Item"
	}
	runes := []rune(name)
	if len(runes) <= galleryNameBudget {
		return name
	}
	return string(runes[:galleryNameBudget-3]) + "..."
}
