// Package pdf genera el comprobante de retiro de un pedido.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  Tienda + dirección       │  N° pedido + fecha │
//	│  CLIENTE: nombre / cédula / teléfono           │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal    │
//	│  TOTAL + método de pago + estado               │
//	│  QR con el id del pedido + instrucción de caja │
//	└──────────────────────────────────────────────┘
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

	"github.com/zone-laptop/zone-store/internal/application/orders"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorAccent  = &props.Color{Red: 0, Green: 150, Blue: 200}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

var statusLabels = map[string]string{
	entity.OrderStatusPending:   "PENDIENTE DE PAGO",
	entity.OrderStatusPaid:      "PAGADO",
	entity.OrderStatusDelivered: "ENTREGADO",
	entity.OrderStatusCanceled:  "CANCELADO",
}

var paymentLabels = map[string]string{
	entity.PaymentInStore:        "Pago en tienda",
	entity.PaymentMobileTransfer: "Pago móvil",
}

// ReceiptGenerator implementa orders.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct{}

var _ orders.ReceiptRenderer = (*ReceiptGenerator)(nil)

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// RenderReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderReceipt(_ context.Context, o *entity.Order, store orders.StoreInfo) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Comprobante de pedido", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(o, store))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(customerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(o.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalRow(o))
	m.AddRows(row.New(4))
	m.AddRows(qrRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(o *entity.Order, store orders.StoreInfo) core.Row {
	contact := nonEmpty(store.Address, "")
	if store.Phone != "" {
		contact = strings.TrimSpace(contact + "  ·  Tel: " + store.Phone)
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(store.Name, "Tienda"), props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New(contact, props.Text{Size: 7, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PEDIDO N°", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorAccent, Top: 1}),
			text.New(strings.ToUpper(shortID(o.ID)), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 5}),
			text.New(o.CreatedAt.Local().Format("02/01/2006 15:04"), props.Text{Size: 7, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func customerRow(o *entity.Order) core.Row {
	return row.New(13).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorAccent, Top: 1}),
			text.New(o.CustomerName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
			text.New("Cédula: "+maskIDNumber(o.CustomerIDNumber), props.Text{Size: 7, Top: 10, Color: colorGray}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.Name, props.Text{Size: 7, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(formatMoney(it.Subtotal()), props.Text{Size: 7, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalRow(o *entity.Order) core.Row {
	payment := nonEmpty(paymentLabels[o.PaymentMethod], o.PaymentMethod)
	if o.PaymentReference != "" {
		payment += " · Ref. " + o.PaymentReference
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New(payment, props.Text{Size: 7, Top: 1, Color: colorGray}),
			text.New(nonEmpty(statusLabels[o.Status], o.Status), props.Text{Style: fontstyle.Bold, Size: 8, Top: 6, Color: colorAccent}),
		),
		col.New(5).Add(
			text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 1}),
			text.New(formatMoney(o.Total), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 5, Color: colorPrimary}),
		),
	)
}

func qrRow(o *entity.Order) core.Row {
	return row.New(36).Add(
		col.New(4).Add(code.NewQr(o.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Presente este comprobante en caja para pagar y retirar su pedido.",
				props.Text{Size: 8, Top: 6, Left: 3}),
			text.New(o.ID, props.Text{Size: 6, Top: 20, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// maskIDNumber deja la letra inicial y los tres últimos dígitos: "V12345678" -> "V*****678".
// El teléfono del cliente no va en el comprobante.
func maskIDNumber(id string) string {
	r := []rune(id)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	keepHead := 0
	if r[0] < '0' || r[0] > '9' {
		keepHead = 1
	}
	out := make([]rune, 0, len(r))
	out = append(out, r[:keepHead]...)
	for range r[keepHead : len(r)-3] {
		out = append(out, '*')
	}
	return string(append(out, r[len(r)-3:]...))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney "$1.234,50" (miles con punto, decimales con coma).
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "," + frac
}
