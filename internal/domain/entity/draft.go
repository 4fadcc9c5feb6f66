package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftLine is one editable line in a reception draft. Its ID is generated
// client-side (or inherited from storage when editing) and stays stable for
// the life of the form; lookups are always by ID, never by position.
type DraftLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Valid reports whether the line participates in totals and submission:
// a product is selected and the quantity is positive.
func (l *DraftLine) Valid() bool {
	return l.ProductID != "" && l.Quantity > 0
}

// Total is the line amount, recomputed on every call.
func (l *DraftLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ReceptionDraft is the in-memory working copy of a reception being entered
// or edited. Invalid lines stay visible for editing but are excluded from
// totals and from the submission payload.
type ReceptionDraft struct {
	Reference   string
	SupplierID  string
	Notes       string
	TaxAmount   decimal.Decimal
	DeliveryFee decimal.Decimal
	OtherFees   decimal.Decimal
	Discount    decimal.Decimal
	Lines       []*DraftLine
}

func newDraftLine() *DraftLine {
	return &DraftLine{
		ID:        uuid.New().String(),
		Quantity:  1,
		UnitPrice: decimal.Zero,
	}
}

// NewDraft creates an empty draft with a single blank line.
func NewDraft() *ReceptionDraft {
	return &ReceptionDraft{Lines: []*DraftLine{newDraftLine()}}
}

// HydrateDraft builds a draft from a persisted reception for editing.
// Stored line ids are kept so edits round-trip; lines without one get a
// fresh id.
func HydrateDraft(rec *Reception) *ReceptionDraft {
	draft := &ReceptionDraft{
		Reference:   rec.Reference,
		SupplierID:  rec.SupplierID,
		Notes:       rec.Notes,
		TaxAmount:   rec.TaxAmount,
		DeliveryFee: rec.DeliveryFee,
		OtherFees:   rec.OtherFees,
		Discount:    rec.Discount,
	}
	if draft.SupplierID == "" && rec.Supplier != nil {
		draft.SupplierID = rec.Supplier.ID
	}
	for _, line := range rec.Lines {
		id := line.ID
		if id == "" {
			id = uuid.New().String()
		}
		productID := line.ProductID
		if productID == "" && line.Product != nil {
			productID = line.Product.ID
		}
		draft.Lines = append(draft.Lines, &DraftLine{
			ID:        id,
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	if len(draft.Lines) == 0 {
		draft.Lines = []*DraftLine{newDraftLine()}
	}
	return draft
}

// Line returns the line with the given id, or nil.
func (d *ReceptionDraft) Line(id string) *DraftLine {
	for _, line := range d.Lines {
		if line.ID == id {
			return line
		}
	}
	return nil
}

// AddLine appends a blank line and returns it.
func (d *ReceptionDraft) AddLine() *DraftLine {
	line := newDraftLine()
	d.Lines = append(d.Lines, line)
	return line
}

// RemoveLine removes a line by id. A draft always keeps at least one line:
// removing the last remaining one is a no-op and returns false, as does an
// unknown id.
func (d *ReceptionDraft) RemoveLine(id string) bool {
	if len(d.Lines) <= 1 {
		return false
	}
	for i, line := range d.Lines {
		if line.ID == id {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetLineProduct sets a line's product reference. Whenever the new
// reference is non-empty and resolves in the catalog, the line's unit price
// is reset to that product's current cost price, overwriting any manual
// entry; re-selecting the same product triggers the reset again. This is
// the intended convenience default, synced once at selection time and never
// re-derived afterwards.
func (d *ReceptionDraft) SetLineProduct(lineID, productID string, catalog *Catalog) bool {
	line := d.Line(lineID)
	if line == nil {
		return false
	}
	line.ProductID = productID
	if productID != "" && catalog != nil {
		if product := catalog.Product(productID); product != nil {
			line.UnitPrice = product.CostPrice
		}
	}
	return true
}

// SetLineQuantity sets a line's quantity.
func (d *ReceptionDraft) SetLineQuantity(lineID string, quantity int) bool {
	line := d.Line(lineID)
	if line == nil {
		return false
	}
	line.Quantity = quantity
	return true
}

// SetLineUnitPrice sets a line's unit price.
func (d *ReceptionDraft) SetLineUnitPrice(lineID string, price decimal.Decimal) bool {
	line := d.Line(lineID)
	if line == nil {
		return false
	}
	line.UnitPrice = price
	return true
}

// ValidLines returns the lines eligible for totals and submission.
func (d *ReceptionDraft) ValidLines() []*DraftLine {
	valid := make([]*DraftLine, 0, len(d.Lines))
	for _, line := range d.Lines {
		if line.Valid() {
			valid = append(valid, line)
		}
	}
	return valid
}

// Subtotal sums the totals of valid lines.
func (d *ReceptionDraft) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range d.ValidLines() {
		sum = sum.Add(line.Total())
	}
	return sum
}

// GrandTotal is subtotal + tax + delivery + other fees - discount. It is
// not clamped: a discount larger than the remaining terms yields a negative
// total.
func (d *ReceptionDraft) GrandTotal() decimal.Decimal {
	return d.Subtotal().
		Add(d.TaxAmount).
		Add(d.DeliveryFee).
		Add(d.OtherFees).
		Sub(d.Discount)
}

// HasCharges reports whether any ancillary charge is non-zero; the charges
// section starts expanded in that case when editing an existing reception.
func (d *ReceptionDraft) HasCharges() bool {
	return d.TaxAmount.IsPositive() ||
		d.DeliveryFee.IsPositive() ||
		d.OtherFees.IsPositive() ||
		d.Discount.IsPositive()
}

// CanSubmit requires at least one valid line.
func (d *ReceptionDraft) CanSubmit() bool {
	return len(d.ValidLines()) > 0
}

// Payload builds the submission body. Only valid lines are included;
// invalid ones are silently dropped, not rejected.
func (d *ReceptionDraft) Payload() *ReceptionPayload {
	valid := d.ValidLines()
	lines := make([]ReceptionLinePayload, 0, len(valid))
	for _, line := range valid {
		price, _ := line.UnitPrice.Float64()
		lines = append(lines, ReceptionLinePayload{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}

	tax, _ := d.TaxAmount.Float64()
	delivery, _ := d.DeliveryFee.Float64()
	other, _ := d.OtherFees.Float64()
	discount, _ := d.Discount.Float64()

	return &ReceptionPayload{
		Reference:   d.Reference,
		SupplierID:  d.SupplierID,
		Notes:       d.Notes,
		TaxAmount:   tax,
		DeliveryFee: delivery,
		OtherFees:   other,
		Discount:    discount,
		Lines:       lines,
	}
}
