// Package invoice assembles the cart state into the paginated PDF document:
// header band, client block, itemized table, totals, optional bank details
// and an optional image gallery appendix.
package invoice

import (
	"strconv"
	"strings"
	"time"
)

// ISO layout of the event-date input.
const isoDateLayout = "2006-01-02"

// Metadata carries the document inputs exactly as the user typed them.
// Discount and Advance stay raw so a reloaded quotation shows the original
// text.
type Metadata struct {
	PDFName            string `json:"pdfName"`
	InvoiceTo          string `json:"invoiceTo"`
	EventDate          string `json:"eventDate"`
	IncludeEventDate   bool   `json:"includeEventDate"`
	IncludeBankDetails bool   `json:"includeBankDetails"`
	IncludeGallery     bool   `json:"includeGallery"`
	Discount           string `json:"discount"`
	Advance            string `json:"advance"`
}

// SafePDFName returns the trimmed document name, falling back to
// quotation-<epoch millis> when blank.
func (m Metadata) SafePDFName(now time.Time) string {
	if name := strings.TrimSpace(m.PDFName); name != "" {
		return name
	}
	return "quotation-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// DefaultMetadata seeds the event date with today, matching a fresh editing
// session.
func DefaultMetadata(now time.Time) Metadata {
	return Metadata{EventDate: now.Format(isoDateLayout)}
}

// FormatDate renders a time as dd/mm/yyyy, the print format of all invoice
// dates.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatISODate converts a yyyy-mm-dd input to dd/mm/yyyy, passing anything
// unparseable through unchanged.
func FormatISODate(iso string) string {
	t, err := time.Parse(isoDateLayout, strings.TrimSpace(iso))
	if err != nil {
		return iso
	}
	return FormatDate(t)
}
