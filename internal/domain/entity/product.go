package entity

import (
	"github.com/dukahub/reception-api/pkg/selectbox"
	"github.com/shopspring/decimal"
)

// Product mirrors the remote inventory API's product representation. The
// remote API owns persistence and stock arithmetic; this service only reads
// products into the form catalog and creates new ones on behalf of the form.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Unit          string          `json:"unit"`
	MinStock      int             `json:"minStock"`
	StockQuantity int             `json:"stockQuantity"`
}

// Option projects the product for the searchable select.
func (p *Product) Option() selectbox.Option {
	opt := selectbox.Option{ID: p.ID, Name: p.Name}
	if p.SKU != "" {
		opt.Subtitle = "SKU: " + p.SKU
	}
	return opt
}

// Supplier mirrors the remote inventory API's supplier representation.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// Option projects the supplier for the searchable select.
func (s *Supplier) Option() selectbox.Option {
	return selectbox.Option{ID: s.ID, Name: s.Name, Subtitle: s.Phone}
}
