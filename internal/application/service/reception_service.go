package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukahub/reception-api/internal/domain/gateway"
	"github.com/dukahub/reception-api/pkg/currency"
	"github.com/dukahub/reception-api/pkg/pagination"
)

// ReceptionService handles reading and deleting persisted receptions. All
// data comes from the remote inventory API; this service filters, pages
// and shapes it for display.
type ReceptionService struct {
	inventory gateway.InventoryGateway
}

// NewReceptionService creates a new reception service
func NewReceptionService(inventory gateway.InventoryGateway) *ReceptionService {
	return &ReceptionService{inventory: inventory}
}

// ReceptionSummary is one row in the reception list.
type ReceptionSummary struct {
	ID           string `json:"id"`
	Reference    string `json:"reference,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
	LineCount    int    `json:"line_count"`
	Total        string `json:"total"`
	CreatedAt    string `json:"created_at"`
}

// ListReceptionsInput represents the reception list input
type ListReceptionsInput struct {
	ShopID string
	Search string
	Params *pagination.PaginationParams
}

// List returns the shop's receptions, newest first as delivered by the
// remote API, optionally filtered by reference or supplier name.
func (s *ReceptionService) List(ctx context.Context, input *ListReceptionsInput) (*pagination.PaginatedResult[ReceptionSummary], error) {
	receptions, err := s.inventory.ListReceptions(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(input.Search))
	summaries := make([]ReceptionSummary, 0, len(receptions))
	for i := range receptions {
		rec := &receptions[i]
		supplierName := ""
		if rec.Supplier != nil {
			supplierName = rec.Supplier.Name
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Reference), search) &&
			!strings.Contains(strings.ToLower(supplierName), search) {
			continue
		}
		summaries = append(summaries, ReceptionSummary{
			ID:           rec.ID,
			Reference:    rec.Reference,
			SupplierName: supplierName,
			LineCount:    len(rec.Lines),
			Total:        currency.Format(rec.TotalAmount),
			CreatedAt:    rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	params := input.Params
	if params == nil {
		params = pagination.DefaultPagination()
	}
	return pagination.Slice(summaries, params), nil
}

// ReceptionLineDetail is one line on the detail view.
type ReceptionLineDetail struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// ReceptionDetail is the read-only detail view of a reception. All amounts
// are pre-formatted for display.
type ReceptionDetail struct {
	ID           string                `json:"id"`
	Reference    string                `json:"reference,omitempty"`
	SupplierName string                `json:"supplier_name,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	Lines        []ReceptionLineDetail `json:"lines"`
	Subtotal     string                `json:"subtotal"`
	TaxAmount    string                `json:"tax_amount,omitempty"`
	DeliveryFee  string                `json:"delivery_fee,omitempty"`
	OtherFees    string                `json:"other_fees,omitempty"`
	Discount     string                `json:"discount,omitempty"`
	Total        string                `json:"total"`
	CreatedAt    string                `json:"created_at"`
}

// Get returns the detail view of one reception. Charge rows are present
// only when non-zero, matching how the form collapses them.
func (s *ReceptionService) Get(ctx context.Context, shopID, receptionID string) (*ReceptionDetail, error) {
	rec, err := s.inventory.GetReception(ctx, shopID, receptionID)
	if err != nil {
		return nil, err
	}

	detail := &ReceptionDetail{
		ID:        rec.ID,
		Reference: rec.Reference,
		Notes:     rec.Notes,
		Subtotal:  currency.Format(rec.Subtotal),
		Total:     currency.Format(rec.TotalAmount),
		CreatedAt: rec.CreatedAt.Format("2006-01-02 15:04"),
	}
	if rec.Supplier != nil {
		detail.SupplierName = rec.Supplier.Name
	}
	if rec.TaxAmount.IsPositive() {
		detail.TaxAmount = currency.Format(rec.TaxAmount)
	}
	if rec.DeliveryFee.IsPositive() {
		detail.DeliveryFee = currency.Format(rec.DeliveryFee)
	}
	if rec.OtherFees.IsPositive() {
		detail.OtherFees = currency.Format(rec.OtherFees)
	}
	if rec.Discount.IsPositive() {
		detail.Discount = currency.Format(rec.Discount)
	}

	detail.Lines = make([]ReceptionLineDetail, 0, len(rec.Lines))
	for _, line := range rec.Lines {
		lineDetail := ReceptionLineDetail{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: currency.Format(line.UnitPrice),
			Total:     currency.Format(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))),
		}
		if line.Product != nil {
			lineDetail.ProductName = line.Product.Name
		}
		detail.Lines = append(detail.Lines, lineDetail)
	}
	return detail, nil
}

// Delete removes a reception; the remote API reverses its stock movements.
func (s *ReceptionService) Delete(ctx context.Context, shopID, receptionID string) error {
	return s.inventory.DeleteReception(ctx, shopID, receptionID)
}
