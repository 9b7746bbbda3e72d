package pricing

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/wdquote/internal/catalog"
)

// GSTRate is the goods and services tax applied to a quote subtotal.
const GSTRate = 0.10

var (
	ErrUnknownProduct   = errors.New("unknown product")
	ErrInvalidSizeIndex = errors.New("invalid size index")
	ErrInvalidQuantity  = errors.New("invalid quantity")
)

// Catalog is the read-only lookup surface the engine prices against.
type Catalog interface {
	FindProduct(id string) (catalog.Product, bool)
	FindGlass(id string) (catalog.GlassOption, bool)
	FindFinish(id string) (catalog.FinishOption, bool)
	FindAddon(id string) (catalog.AddonOption, bool)
	DefaultGlass() catalog.GlassOption
	DefaultFinish() catalog.FinishOption
}

// LineItem is one priced product configuration.
type LineItem struct {
	ProductID       string   `json:"product_id"`
	ProductName     string   `json:"product_name"`
	SizeLabel       string   `json:"size_label"`
	Quantity        int      `json:"quantity"`
	BaseUnitPrice   float64  `json:"base_unit_price"`
	GlassOption     string   `json:"glass_option"`
	GlassMultiplier float64  `json:"glass_multiplier"`
	FinishOption    string   `json:"finish_option"`
	FinishSurcharge float64  `json:"finish_surcharge"`
	Addons          []string `json:"addons"`
	AddonTotal      float64  `json:"addon_total"`
	UnitPrice       float64  `json:"unit_price"`
	LineTotal       float64  `json:"line_total"`
}

// Quote is a numbered set of line items with GST totals.
type Quote struct {
	QuoteNumber    string     `json:"quote_number"`
	ClientName     string     `json:"client_name"`
	ProjectAddress string     `json:"project_address"`
	LineItems      []LineItem `json:"line_items"`
	Subtotal       float64    `json:"subtotal"`
	GST            float64    `json:"gst"`
	Total          float64    `json:"total"`
}

// Engine prices line items and quotes. It holds no mutable state and can be
// shared between goroutines.
type Engine struct {
	catalog    Catalog
	gstRate    decimal.Decimal
	nextNumber func() string
}

// Option customises an Engine.
type Option func(*Engine)

// WithQuoteNumbers replaces the quote number generator.
func WithQuoteNumbers(next func() string) Option {
	return func(e *Engine) { e.nextNumber = next }
}

// NewEngine returns an engine pricing against cat.
func NewEngine(cat Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:    cat,
		gstRate:    decimal.NewFromFloat(GSTRate),
		nextNumber: GenerateQuoteNumber,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RoundCents rounds to two decimal places, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PriceLineItem computes
//
//	unit = base * glass multiplier + finish surcharge + eligible add-ons
//	line total = round(unit * quantity, 2)
//
// Unknown glass and finish ids fall back to the first table entry. Unknown or
// ineligible add-ons are dropped. Unknown products and out of range sizes fail.
func (e *Engine) PriceLineItem(spec ItemSpec) (LineItem, error) {
	product, ok := e.catalog.FindProduct(spec.ProductID)
	if !ok {
		return LineItem{}, errors.Wrapf(ErrUnknownProduct, "product %q", spec.ProductID)
	}
	if spec.SizeIndex < 0 || spec.SizeIndex >= len(product.Sizes) {
		return LineItem{}, errors.Wrapf(ErrInvalidSizeIndex, "size index %d for %s (has %d sizes)",
			spec.SizeIndex, product.ID, len(product.Sizes))
	}
	if spec.Quantity < 1 {
		return LineItem{}, errors.Wrapf(ErrInvalidQuantity, "quantity %d for %s", spec.Quantity, product.ID)
	}

	size := product.Sizes[spec.SizeIndex]

	glass, ok := e.catalog.FindGlass(spec.GlassID)
	if !ok {
		glass = e.catalog.DefaultGlass()
	}
	finish, ok := e.catalog.FindFinish(spec.FinishID)
	if !ok {
		finish = e.catalog.DefaultFinish()
	}

	accepted := lo.FilterMap(spec.AddonIDs, func(id string, _ int) (catalog.AddonOption, bool) {
		addon, ok := e.catalog.FindAddon(id)
		return addon, ok && addon.Eligible(product.Category)
	})
	addonTotal := decimal.Zero
	for _, a := range accepted {
		addonTotal = addonTotal.Add(decimal.NewFromFloat(a.Price))
	}

	unit := decimal.NewFromFloat(size.BasePrice).
		Mul(decimal.NewFromFloat(glass.Multiplier)).
		Add(decimal.NewFromFloat(finish.Surcharge)).
		Add(addonTotal)
	lineTotal := RoundCents(unit.Mul(decimal.NewFromInt(int64(spec.Quantity))))

	return LineItem{
		ProductID:       product.ID,
		ProductName:     product.Name,
		SizeLabel:       size.Label,
		Quantity:        spec.Quantity,
		BaseUnitPrice:   size.BasePrice,
		GlassOption:     glass.Name,
		GlassMultiplier: glass.Multiplier,
		FinishOption:    finish.Name,
		FinishSurcharge: finish.Surcharge,
		Addons:          lo.Map(accepted, func(a catalog.AddonOption, _ int) string { return a.Name }),
		AddonTotal:      addonTotal.InexactFloat64(),
		UnitPrice:       unit.InexactFloat64(),
		LineTotal:       lineTotal.InexactFloat64(),
	}, nil
}

// GenerateQuote prices items in order and totals them. The first failing item
// aborts the whole quote.
func (e *Engine) GenerateQuote(clientName, projectAddress string, items []ItemSpec) (Quote, error) {
	lineItems := make([]LineItem, 0, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		li, err := e.PriceLineItem(item)
		if err != nil {
			return Quote{}, errors.WithMessagef(err, "item %d", i)
		}
		lineItems = append(lineItems, li)
		subtotal = subtotal.Add(decimal.NewFromFloat(li.LineTotal))
	}

	subtotal = RoundCents(subtotal)
	gst := RoundCents(subtotal.Mul(e.gstRate))
	total := RoundCents(subtotal.Add(gst))

	return Quote{
		QuoteNumber:    e.nextNumber(),
		ClientName:     clientName,
		ProjectAddress: projectAddress,
		LineItems:      lineItems,
		Subtotal:       subtotal.InexactFloat64(),
		GST:            gst.InexactFloat64(),
		Total:          total.InexactFloat64(),
	}, nil
}
