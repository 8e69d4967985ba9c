package domain

import "github.com/shopspring/decimal"

// Variant is one purchasable weight/unit/price/stock combination of a product.
type Variant struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Weight      decimal.Decimal `json:"weight"`
	Unit        string          `json:"unit"` // kg | g | lt | ml | un
	BasePrice   decimal.Decimal `json:"basePrice"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	FinalPrice  decimal.Decimal `json:"finalPrice"`
	Stock       int             `json:"stock"`
	IsDefault   bool            `json:"isDefault"`
}

// Price returns the effective unit price. The backend normally sends
// finalPrice precomputed; when it is absent the discount is applied here so
// cart math never sees a zero price for a discounted variant.
func (v Variant) Price() decimal.Decimal {
	if !v.FinalPrice.IsZero() {
		return v.FinalPrice
	}
	if v.DiscountPct.IsZero() {
		return v.BasePrice
	}
	off := v.BasePrice.Mul(v.DiscountPct).Div(decimal.NewFromInt(100))
	return v.BasePrice.Sub(off)
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Categories  []string  `json:"categories"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
	Active      bool      `json:"active"`
}

// DefaultVariant returns the variant flagged as default. Exactly one variant
// carries the flag; if the backend ever violates that, the first variant is
// used so product pages still render.
func (p Product) DefaultVariant() (Variant, bool) {
	for _, v := range p.Variants {
		if v.IsDefault {
			return v, true
		}
	}
	if len(p.Variants) > 0 {
		return p.Variants[0], true
	}
	return Variant{}, false
}

func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Category is a free-text label used to group products, administered through
// the admin console.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
