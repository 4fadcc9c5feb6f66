package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/reception-api/internal/domain/entity"
	"github.com/dukahub/reception-api/pkg/currency"
)

// LineView is one draft line as shown on the form.
type LineView struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
	Valid        bool    `json:"valid"`
}

// SupplierSelectView is the supplier select state exposed to the form.
type SupplierSelectView struct {
	Value        string `json:"value"`
	SelectedName string `json:"selected_name,omitempty"`
	Creating     bool   `json:"creating"`
}

// PendingCreationView mirrors an open inline product creation.
type PendingCreationView struct {
	TargetLineID string `json:"target_line_id"`
	SeedName     string `json:"seed_name"`
}

// FormView is a point-in-time snapshot of a form session. It is built
// under the session lock and safe to serialize afterwards.
type FormView struct {
	SessionID       uuid.UUID            `json:"session_id"`
	ShopID          string               `json:"shop_id"`
	ReceptionID     string               `json:"reception_id,omitempty"`
	Status          string               `json:"status"`
	Reference       string               `json:"reference,omitempty"`
	Supplier        SupplierSelectView   `json:"supplier"`
	Notes           string               `json:"notes,omitempty"`
	TaxAmount       float64              `json:"tax_amount"`
	DeliveryFee     float64              `json:"delivery_fee"`
	OtherFees       float64              `json:"other_fees"`
	Discount        float64              `json:"discount"`
	ShowCharges     bool                 `json:"show_charges"`
	Lines           []LineView           `json:"lines"`
	Subtotal        float64              `json:"subtotal"`
	SubtotalDisplay string               `json:"subtotal_display"`
	Total           float64              `json:"total"`
	TotalDisplay    string               `json:"total_display"`
	CanSubmit       bool                 `json:"can_submit"`
	Pending         *PendingCreationView `json:"pending_creation,omitempty"`
	LastError       string               `json:"last_error,omitempty"`
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// snapshot copies the session state into a view. Callers hold the session
// lock.
func snapshot(session *entity.FormSession) *FormView {
	draft := session.Draft

	lines := make([]LineView, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		view := LineView{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: toFloat(line.UnitPrice),
			Valid:     line.Valid(),
		}
		if product := session.Catalog.Product(line.ProductID); product != nil {
			view.ProductName = product.Name
		}
		total := line.Total()
		view.Total = toFloat(total)
		view.TotalDisplay = currency.Format(total)
		lines = append(lines, view)
	}

	supplier := SupplierSelectView{
		Value:    session.SupplierBox.Value(),
		Creating: session.SupplierBox.IsCreating(),
	}
	if selected, ok := session.SupplierBox.Selected(); ok {
		supplier.SelectedName = selected.Name
	}

	subtotal := draft.Subtotal()
	total := draft.GrandTotal()

	view := &FormView{
		SessionID:       session.ID,
		ShopID:          session.ShopID,
		ReceptionID:     session.ReceptionID,
		Status:          session.Status.String(),
		Reference:       draft.Reference,
		Supplier:        supplier,
		Notes:           draft.Notes,
		TaxAmount:       toFloat(draft.TaxAmount),
		DeliveryFee:     toFloat(draft.DeliveryFee),
		OtherFees:       toFloat(draft.OtherFees),
		Discount:        toFloat(draft.Discount),
		ShowCharges:     session.ShowCharges,
		Lines:           lines,
		Subtotal:        toFloat(subtotal),
		SubtotalDisplay: currency.Format(subtotal),
		Total:           toFloat(total),
		TotalDisplay:    currency.Format(total),
		CanSubmit:       draft.CanSubmit(),
		LastError:       session.LastError,
	}
	if session.Pending != nil {
		view.Pending = &PendingCreationView{
			TargetLineID: session.Pending.TargetLineID,
			SeedName:     session.Pending.SeedName,
		}
	}
	return view
}
