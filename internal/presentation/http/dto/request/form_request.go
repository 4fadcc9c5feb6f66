package request

// OpenFormRequest opens a reception form session. ReceptionID switches the
// form into edit mode.
type OpenFormRequest struct {
	ReceptionID string `json:"reception_id"`
}

// UpdateHeaderRequest patches the draft header. Absent fields are left
// untouched.
type UpdateHeaderRequest struct {
	Reference   *string  `json:"reference"`
	SupplierID  *string  `json:"supplier_id"`
	Notes       *string  `json:"notes"`
	TaxAmount   *float64 `json:"tax_amount" binding:"omitempty,gte=0"`
	DeliveryFee *float64 `json:"delivery_fee" binding:"omitempty,gte=0"`
	OtherFees   *float64 `json:"other_fees" binding:"omitempty,gte=0"`
	Discount    *float64 `json:"discount" binding:"omitempty,gte=0"`
	ShowCharges *bool    `json:"show_charges"`
}

// UpdateLineRequest patches one draft line. Absent fields are left
// untouched.
type UpdateLineRequest struct {
	ProductID *string  `json:"product_id"`
	Quantity  *int     `json:"quantity"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

// BeginProductCreateRequest opens the inline product creation for a line.
type BeginProductCreateRequest struct {
	LineID   string `json:"line_id" binding:"required"`
	SeedName string `json:"seed_name"`
}

// CreateProductRequest completes an inline product creation. Only the name
// is required; omitted fields take the quick-create defaults.
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	SKU           string   `json:"sku"`
	CostPrice     *float64 `json:"cost_price" binding:"omitempty,gte=0"`
	SellingPrice  *float64 `json:"selling_price" binding:"omitempty,gte=0"`
	Unit          *string  `json:"unit"`
	MinStock      *int     `json:"min_stock" binding:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
}

// CreateSupplierRequest quick-creates a supplier from a bare name.
type CreateSupplierRequest struct {
	Name string `json:"name" binding:"required"`
}

// ReceptionFilterRequest filters and pages the reception list.
type ReceptionFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
}
