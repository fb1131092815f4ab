// Package pdf genera el resumen de pedido (cotización) que el cliente descarga
// durante el checkout.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Oasis AI Solutions  │  Quote N° + Fecha           │
//	│  CLIENTE: Nombre / Empresa / Email                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Setup | Mensual                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Setup / Descuento / Ahorro / Due today / Mensual  │
//	│  FOOTER: QR con la referencia + nota de precios             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

const companyName = "Oasis AI Solutions"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 14, Green: 116, Blue: 144}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 22, Green: 128, Blue: 61}
)

var _ ports.QuotePDFGenerator = (*QuotePDFGenerator)(nil)

// QuotePDFGenerator implementa ports.QuotePDFGenerator con Maroto v2.
type QuotePDFGenerator struct {
	printer *message.Printer
}

// NewQuotePDFGenerator construye el generador (montos con separador de miles en inglés).
func NewQuotePDFGenerator() *QuotePDFGenerator {
	return &QuotePDFGenerator{printer: message.NewPrinter(language.English)}
}

// GenerateQuotePDF genera el PDF y devuelve sus bytes.
func (g *QuotePDFGenerator) GenerateQuotePDF(_ context.Context, doc ports.QuoteDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Quote "+doc.Reference, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(customerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.lineRows(doc.Snapshot)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRows(doc)...)
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *QuotePDFGenerator) headerRow(doc ports.QuoteDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("AI automation for small businesses", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDER SUMMARY", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Quote "+doc.Reference, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6}),
			text.New(doc.IssuedAt.Format("January 2, 2006"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func customerRow(doc ports.QuoteDocument) core.Row {
	contact := strings.Join(nonEmptyParts(doc.BusinessName, doc.Email), "   |   ")
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PREPARED FOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(doc.CustomerName, "Guest"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product", 6, align.Left),
		h("Setup fee", 2, align.Right),
		h("Monthly", 3, align.Right),
	)
}

func (g *QuotePDFGenerator) lineRows(snap entity.PricingSnapshot) []core.Row {
	rows := make([]core.Row, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		qty := l.Quantity
		if qty <= 0 {
			qty = 1
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(qty), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(l.SetupFee, snap.Currency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(l.MonthlyFee, snap.Currency)+"/mo", props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRows: el setup original se muestra aparte solo cuando hay descuento.
func (g *QuotePDFGenerator) totalsRows(doc ports.QuoteDocument) []core.Row {
	snap := doc.Snapshot
	cur := snap.Currency
	pair := func(label, value string, style props.Text) core.Row {
		l, v := style, style
		l.Align, l.Right = align.Right, 2
		v.Align, v.Right = align.Right, 1
		return row.New(6).Add(col.New(5), col.New(4).Add(text.New(label, l)), col.New(3).Add(text.New(value, v)))
	}
	plain := props.Text{Size: 9}

	var rows []core.Row
	if snap.DiscountPercent > 0 {
		promo := fmt.Sprintf("Discount (%d%%)", snap.DiscountPercent)
		if doc.PromoCode != "" {
			promo = fmt.Sprintf("Discount %s (%d%%)", doc.PromoCode, snap.DiscountPercent)
		}
		rows = append(rows,
			pair("Setup fee (regular):", g.money(snap.SetupFee, cur), props.Text{Size: 9, Color: colorGray}),
			pair(promo+":", "-"+g.money(snap.Savings, cur), props.Text{Size: 9, Color: colorGreen}),
			pair("Setup fee:", g.money(snap.DiscountedSetup, cur), plain),
		)
	} else {
		rows = append(rows, pair("Setup fee:", g.money(snap.SetupFee, cur), plain))
	}
	rows = append(rows,
		pair("Monthly:", g.money(snap.MonthlyFee, cur)+"/mo", plain),
		pair("Total due today:", g.money(snap.TotalDueToday, cur), props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary}),
	)
	if snap.Savings.IsPositive() {
		rows = append(rows, pair("You save:", g.money(snap.Savings, cur), props.Text{Style: fontstyle.Bold, Size: 9, Color: colorGreen}))
	}
	return rows
}

func footerRow(doc ports.QuoteDocument) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(doc.Reference, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Reference: "+doc.Reference, props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3}),
			text.New("Monthly fees are billed separately and are never discounted. "+
				"Prices in USD are converted from CAD at a fixed rate and rounded to whole units.",
				props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea un monto entero con separador de miles: "$1,394 CAD".
func (g *QuotePDFGenerator) money(d decimal.Decimal, cur entity.Currency) string {
	return g.printer.Sprintf("$%d %s", d.Round(0).IntPart(), strings.ToUpper(string(cur)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyParts(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
