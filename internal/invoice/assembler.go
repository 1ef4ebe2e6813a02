package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/internal/images"
	"github.com/slfireworks/quotation/internal/pricing"
	"github.com/slfireworks/quotation/pkg/config"
	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
	"github.com/slfireworks/quotation/pkg/logger"
)

var (
	navy       = props.Color{Red: 0, Green: 47, Blue: 108}
	tableGreen = props.Color{Red: 0, Green: 153, Blue: 102}
	rowDark    = props.Color{Red: 230, Green: 230, Blue: 230}
	rowLight   = props.Color{Red: 248, Green: 248, Blue: 248}
	totalsGray = props.Color{Red: 212, Green: 212, Blue: 212}
	balanceYel = props.Color{Red: 255, Green: 204, Blue: 0}
	cardBorder = props.Color{Red: 226, Green: 232, Blue: 240}
	galleryInk = props.Color{Red: 6, Green: 54, Blue: 111}
	labelInk   = props.Color{Red: 33, Green: 37, Blue: 41}
	white      = props.Color{Red: 255, Green: 255, Blue: 255}
)

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney renders an amount with thousands separators, e.g. "Rs. 12,500".
func formatMoney(amount float64) string {
	return moneyPrinter.Sprintf("Rs. %v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// Assembler turns a cart snapshot plus metadata into the invoice PDF. It is
// stateless between builds apart from the renderer's image cache.
type Assembler struct {
	renderer     images.Renderer
	brand        config.BrandConfig
	bank         config.BankConfig
	layout       GalleryLayout
	fetchTimeout time.Duration
	log          *logger.Logger
}

func NewAssembler(renderer images.Renderer, cfg *config.Config, log *logger.Logger) *Assembler {
	if log == nil {
		log = logger.Nop()
	}
	return &Assembler{
		renderer:     renderer,
		brand:        cfg.Brand,
		bank:         cfg.Bank,
		layout:       NewGalleryLayout(pageWidthMM, pageHeightMM),
		fetchTimeout: cfg.Images.FetchTimeout,
		log:          log,
	}
}

// Layout exposes the gallery grid used for pagination.
func (a *Assembler) Layout() GalleryLayout {
	return a.layout
}

// Build assembles the document from a stable snapshot of the cart. Callers
// guard against an empty cart before invoking; lines must be non-empty.
// Image failures degrade; the only build error is the PDF engine itself.
func (a *Assembler) Build(ctx context.Context, lines []cart.Line, meta Metadata, generatedAt time.Time) ([]byte, error) {
	snap := pricing.Derive(lines, meta.Discount, meta.Advance)
	assets := a.fetchAssets(ctx, lines, meta.IncludeGallery)

	builder := marotoconfig.NewBuilder().
		WithLeftMargin(14).
		WithTopMargin(10).
		WithRightMargin(14)
	if assets.backdrop != nil {
		builder = builder.WithBackgroundImage(assets.backdrop, extension.Png)
	}

	m := maroto.New(builder.Build())
	if err := m.RegisterFooter(a.footerRow()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering footer")
	}

	m.AddRows(a.headerRows(assets)...)
	m.AddRows(a.clientRows(meta, generatedAt)...)
	m.AddRows(a.itemRows(lines)...)
	m.AddRows(a.totalRows(snap)...)

	if meta.IncludeGallery && len(lines) > 0 {
		m.AddPages(a.galleryPages(lines, assets.productImages)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating pdf")
	}
	return doc.GetBytes(), nil
}

// headerRows is the brand band plus the registration/contact block. Icon
// bitmaps are optional; a missing icon just leaves its cell empty.
func (a *Assembler) headerRows(assets *assetSet) []core.Row {
	titleCols := []core.Col{}
	if assets.logo != nil {
		titleCols = append(titleCols, col.New(2).Add(
			image.NewFromBytes(assets.logo, extension.Png, props.Rect{Center: true, Percent: 90}),
		))
	} else {
		titleCols = append(titleCols, col.New(2))
	}
	titleCols = append(titleCols,
		col.New(8).Add(
			text.New(a.brand.Title, props.Text{
				Size:  24,
				Align: align.Center,
				Color: &white,
				Top:   4,
			}),
		),
		col.New(2).Add(
			text.New("INVOICE", props.Text{
				Size:  13,
				Align: align.Right,
				Color: &white,
				Top:   5,
			}),
		),
	)

	band := row.New(18).Add(titleCols...).WithStyle(&props.Cell{BackgroundColor: &navy})

	contact := []struct {
		icon []byte
		text string
	}{
		{assets.regIcon, a.brand.RegistrationNo},
		{assets.personIcon, a.brand.Proprietor},
		{assets.addressIcon, a.brand.AddressLine1},
		{nil, a.brand.AddressLine2},
		{assets.phoneIcon, a.brand.Phone},
		{assets.emailIcon, a.brand.Email},
		{assets.webIcon, a.brand.Website},
	}

	rows := []core.Row{band, row.New(3)}
	for _, entry := range contact {
		iconCol := col.New(1)
		if entry.icon != nil {
			iconCol = col.New(1).Add(
				image.NewFromBytes(entry.icon, extension.Png, props.Rect{Center: true, Percent: 60}),
			)
		}
		rows = append(rows, row.New(5).Add(
			col.New(6),
			iconCol,
			text.NewCol(5, entry.text, props.Text{Size: 9, Align: align.Left}),
		))
	}
	return rows
}

// clientRows covers the invoice-to line, generation date, optional event
// date and optional bank-details block.
func (a *Assembler) clientRows(meta Metadata, generatedAt time.Time) []core.Row {
	rows := []core.Row{row.New(4)}

	rows = append(rows, row.New(6).Add(
		text.NewCol(2, "Invoice to :", props.Text{Size: 11}),
		col.New(6).Add(
			text.New(meta.InvoiceTo, props.Text{Size: 11}),
			line.New(props.Line{
				SizePercent:   underlinePercent(meta.InvoiceTo),
				OffsetPercent: 95,
			}),
		),
	))

	rows = append(rows, row.New(6).Add(
		text.NewCol(2, "Date :", props.Text{Size: 11}),
		text.NewCol(6, FormatDate(generatedAt), props.Text{Size: 11}),
	))

	if meta.IncludeEventDate && meta.EventDate != "" {
		rows = append(rows, row.New(6).Add(
			text.NewCol(6, "Event Date: "+FormatISODate(meta.EventDate), props.Text{Size: 11}),
		))
	}

	if meta.IncludeBankDetails {
		rows = append(rows, row.New(7).Add(
			text.NewCol(6, "Bank Details", props.Text{Size: 10, Style: fontstyle.Bold, Top: 2}),
		))
		for _, detail := range a.bank.Details() {
			rows = append(rows, row.New(5).Add(
				text.NewCol(8, fmt.Sprintf("%s : %s", detail.Label, detail.Value), props.Text{Size: 10}),
			))
		}
	}

	rows = append(rows, row.New(4))
	return rows
}

// underlinePercent approximates the invoice-to underline width from the
// text length, capped at the column width.
func underlinePercent(text string) float64 {
	percent := float64(len([]rune(text))) * 3.2
	if percent > 100 {
		return 100
	}
	if percent < 4 {
		return 4
	}
	return percent
}

// itemRows is the line-item table: fixed columns, zebra-striped, 1-based
// zero-padded index.
func (a *Assembler) itemRows(lines []cart.Line) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(1, "No", props.Text{Size: 10, Style: fontstyle.Bold, Color: &white, Top: 2}),
			text.NewCol(5, "Item Description", props.Text{Size: 10, Style: fontstyle.Bold, Color: &white, Top: 2}),
			text.NewCol(1, "Qty", props.Text{Size: 10, Style: fontstyle.Bold, Color: &white, Top: 2, Align: align.Center}),
			text.NewCol(2, "Price", props.Text{Size: 10, Style: fontstyle.Bold, Color: &white, Top: 2, Align: align.Right}),
			text.NewCol(3, "Total", props.Text{Size: 10, Style: fontstyle.Bold, Color: &white, Top: 2, Align: align.Right}),
		).WithStyle(&props.Cell{BackgroundColor: &tableGreen}),
	}

	for i, item := range lines {
		stripe := rowLight
		if i%2 == 0 {
			stripe = rowDark
		}
		rows = append(rows, row.New(8).Add(
			text.NewCol(1, fmt.Sprintf("%02d", i+1), props.Text{Size: 10, Top: 2}),
			text.NewCol(5, item.Description(), props.Text{Size: 10, Top: 2}),
			text.NewCol(1, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 10, Top: 2, Align: align.Center}),
			text.NewCol(2, formatMoney(item.Price.Float()), props.Text{Size: 10, Top: 2, Align: align.Right}),
			text.NewCol(3, formatMoney(item.Total()), props.Text{Size: 10, Top: 2, Align: align.Right}),
		).WithStyle(&props.Cell{BackgroundColor: &stripe}))
	}

	rows = append(rows, row.New(4).Add(line.NewCol(12)))
	return rows
}

// totalRows prints subtotal and discount always, advance only when paid,
// and the final line as Balance Due or Total Amount accordingly.
func (a *Assembler) totalRows(snap pricing.Snapshot) []core.Row {
	totalsRow := func(label string, amount float64, background props.Color) core.Row {
		return row.New(8).Add(
			col.New(7),
			text.NewCol(5, fmt.Sprintf("%s: %s", label, formatMoney(amount)), props.Text{
				Size:  11,
				Top:   2,
				Align: align.Right,
			}),
		).WithStyle(&props.Cell{BackgroundColor: &background})
	}

	rows := []core.Row{
		totalsRow("Sub Total", snap.SubTotal, totalsGray),
		totalsRow("Discount", snap.Discount, totalsGray),
	}
	if snap.Advance > 0 {
		rows = append(rows, totalsRow("Advance", snap.Advance, totalsGray))
		rows = append(rows, totalsRow("Balance Due", snap.BalanceDue, balanceYel))
	} else {
		rows = append(rows, totalsRow("Total Amount", snap.TotalAfterDiscount, balanceYel))
	}
	return rows
}

// footerRow is the fixed thank-you band registered on every page.
func (a *Assembler) footerRow() core.Row {
	return row.New(10).Add(
		text.NewCol(12, a.brand.FooterMessage, props.Text{
			Size:  10,
			Align: align.Center,
			Color: &white,
			Top:   3,
		}),
	).WithStyle(&props.Cell{BackgroundColor: &navy})
}

// galleryPages lays the cards out page by page according to the computed
// grid; the title repeats on every page and the registered footer follows.
func (a *Assembler) galleryPages(lines []cart.Line, productImages [][]byte) []core.Page {
	spans := a.layout.Plan(len(lines))
	pages := make([]core.Page, 0, len(spans))

	for _, span := range spans {
		galleryPage := page.New()
		galleryPage.Add(row.New(14).Add(
			text.NewCol(12, "Item Gallery", props.Text{
				Size:  17,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: &galleryInk,
				Top:   3,
			}),
		))

		for rowStart := span.Start; rowStart < span.End; rowStart += a.layout.Columns {
			cols := make([]core.Col, 0, a.layout.Columns)
			for i := rowStart; i < rowStart+a.layout.Columns; i++ {
				if i >= span.End {
					cols = append(cols, col.New(4))
					continue
				}
				cols = append(cols, a.galleryCard(lines[i], productImages[i]))
			}
			galleryPage.Add(row.New(a.layout.CardHeight).Add(cols...))
		}

		pages = append(pages, galleryPage)
	}
	return pages
}

func (a *Assembler) galleryCard(item cart.Line, bitmap []byte) core.Col {
	components := []core.Component{}
	if bitmap != nil {
		components = append(components, image.NewFromBytes(bitmap, extension.Png, props.Rect{
			Center:  true,
			Percent: 78,
			Top:     2,
		}))
	}
	components = append(components, text.New(TruncateName(item.Name), props.Text{
		Size:  9,
		Color: &labelInk,
		Top:   a.layout.ImageSize + 6,
		Left:  2,
	}))

	return col.New(4).Add(components...).WithStyle(&props.Cell{
		BorderColor: &cardBorder,
		BorderType:  border.Full,
	})
}
