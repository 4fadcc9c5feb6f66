package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reception is a persisted multi-product purchase as returned by the remote
// inventory API.
type Reception struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference,omitempty"`
	SupplierID  string          `json:"supplierId,omitempty"`
	Supplier    *Supplier       `json:"supplier,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	OtherFees   decimal.Decimal `json:"otherFees"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	Lines       []ReceptionLine `json:"lines"`
}

// ReceptionLine is a persisted line within a reception.
type ReceptionLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ReceptionPayload is the create/update request body sent to the remote
// inventory API. Monetary fields travel as raw JSON numbers; zero-valued
// optional fields are omitted and imply zero server-side.
type ReceptionPayload struct {
	Reference   string                 `json:"reference,omitempty"`
	SupplierID  string                 `json:"supplierId,omitempty"`
	Notes       string                 `json:"notes,omitempty"`
	TaxAmount   float64                `json:"taxAmount,omitempty"`
	DeliveryFee float64                `json:"deliveryFee,omitempty"`
	OtherFees   float64                `json:"otherFees,omitempty"`
	Discount    float64                `json:"discount,omitempty"`
	Lines       []ReceptionLinePayload `json:"lines"`
}

// ReceptionLinePayload is one valid line in a submission payload.
type ReceptionLinePayload struct {
	ID        string  `json:"id,omitempty"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// ProductPayload is the create request body for a product, used by the
// inline creation flow. StockQuantity is always zero here; stock arrives
// through the reception itself.
type ProductPayload struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku,omitempty"`
	CostPrice     float64 `json:"costPrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Unit          string  `json:"unit"`
	MinStock      int     `json:"minStock"`
	StockQuantity int     `json:"stockQuantity"`
}

// SupplierPayload is the create request body for a supplier quick-create.
type SupplierPayload struct {
	Name string `json:"name"`
}
