package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/reception-api/internal/domain/entity"
	"github.com/dukahub/reception-api/internal/infrastructure/sessionstore"
	"github.com/dukahub/reception-api/pkg/apperror"
)

// stubGateway implements gateway.InventoryGateway with overridable calls.
type stubGateway struct {
	products  []entity.Product
	suppliers []entity.Supplier

	getReception    func(shopID, receptionID string) (*entity.Reception, error)
	createProduct   func(shopID string, payload *entity.ProductPayload) (*entity.Product, error)
	createSupplier  func(shopID string, payload *entity.SupplierPayload) (*entity.Supplier, error)
	createReception func(shopID string, payload *entity.ReceptionPayload) (*entity.Reception, error)
	updateReception func(shopID, receptionID string, payload *entity.ReceptionPayload) (*entity.Reception, error)
}

func (g *stubGateway) ListProducts(ctx context.Context, shopID string) ([]entity.Product, error) {
	return g.products, nil
}

func (g *stubGateway) CreateProduct(ctx context.Context, shopID string, payload *entity.ProductPayload) (*entity.Product, error) {
	if g.createProduct == nil {
		return nil, errors.New("unexpected CreateProduct")
	}
	return g.createProduct(shopID, payload)
}

func (g *stubGateway) ListSuppliers(ctx context.Context, shopID string) ([]entity.Supplier, error) {
	return g.suppliers, nil
}

func (g *stubGateway) CreateSupplier(ctx context.Context, shopID string, payload *entity.SupplierPayload) (*entity.Supplier, error) {
	if g.createSupplier == nil {
		return nil, errors.New("unexpected CreateSupplier")
	}
	return g.createSupplier(shopID, payload)
}

func (g *stubGateway) ListReceptions(ctx context.Context, shopID string) ([]entity.Reception, error) {
	return nil, errors.New("unexpected ListReceptions")
}

func (g *stubGateway) GetReception(ctx context.Context, shopID, receptionID string) (*entity.Reception, error) {
	if g.getReception == nil {
		return nil, errors.New("unexpected GetReception")
	}
	return g.getReception(shopID, receptionID)
}

func (g *stubGateway) CreateReception(ctx context.Context, shopID string, payload *entity.ReceptionPayload) (*entity.Reception, error) {
	if g.createReception == nil {
		return nil, errors.New("unexpected CreateReception")
	}
	return g.createReception(shopID, payload)
}

func (g *stubGateway) UpdateReception(ctx context.Context, shopID, receptionID string, payload *entity.ReceptionPayload) (*entity.Reception, error) {
	if g.updateReception == nil {
		return nil, errors.New("unexpected UpdateReception")
	}
	return g.updateReception(shopID, receptionID, payload)
}

func (g *stubGateway) DeleteReception(ctx context.Context, shopID, receptionID string) error {
	return errors.New("unexpected DeleteReception")
}

func testProducts() []entity.Product {
	return []entity.Product{
		{ID: "p1", Name: "Sugar 1kg", SKU: "SUG-1", CostPrice: decimal.NewFromInt(1200), Unit: "unit"},
		{ID: "p2", Name: "Oil 1L", CostPrice: decimal.NewFromInt(2500), Unit: "unit"},
	}
}

func testSuppliers() []entity.Supplier {
	return []entity.Supplier{
		{ID: "s1", Name: "Acme Distribution", Phone: "+237 600 000 001"},
	}
}

func newTestService(g *stubGateway) (*FormService, *sessionstore.Store) {
	store := sessionstore.NewStore(sessionstore.DefaultConfig())
	return NewFormService(store, g), store
}

func openForm(t *testing.T, svc *FormService, userID uuid.UUID) *FormView {
	t.Helper()
	view, err := svc.Open(context.Background(), &OpenFormInput{ShopID: "shop-1", UserID: userID})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return view
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func fltPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func TestOpenNewForm(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	view := openForm(t, svc, uuid.New())

	if view.Status != "Editing" {
		t.Errorf("Status = %q, want Editing", view.Status)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(view.Lines))
	}
	if view.Lines[0].ID == "" {
		t.Error("blank line has no id")
	}
	if view.Lines[0].Quantity != 1 || view.Lines[0].UnitPrice != 0 {
		t.Errorf("blank line = qty %d price %v, want 1 and 0", view.Lines[0].Quantity, view.Lines[0].UnitPrice)
	}
	if view.CanSubmit {
		t.Error("blank form must not be submittable")
	}
	if view.ShowCharges {
		t.Error("new form starts with charges collapsed")
	}
}

func TestOpenEditHydratesDraft(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		getReception: func(shopID, receptionID string) (*entity.Reception, error) {
			return &entity.Reception{
				ID:         receptionID,
				Reference:  "BC-2026-001",
				SupplierID: "s1",
				TaxAmount:  decimal.NewFromInt(200),
				Lines: []entity.ReceptionLine{
					{ID: "l1", ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(1200)},
				},
			}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	view, err := svc.Open(context.Background(), &OpenFormInput{ShopID: "shop-1", UserID: uuid.New(), ReceptionID: "r1"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if view.ReceptionID != "r1" {
		t.Errorf("ReceptionID = %q, want r1", view.ReceptionID)
	}
	if len(view.Lines) != 1 || view.Lines[0].ID != "l1" {
		t.Fatalf("lines = %+v, want the stored line with its id", view.Lines)
	}
	if view.Supplier.Value != "s1" || view.Supplier.SelectedName != "Acme Distribution" {
		t.Errorf("supplier = %+v, want s1 resolved", view.Supplier)
	}
	if !view.ShowCharges {
		t.Error("charges section must start expanded when a charge is set")
	}
	if !view.CanSubmit {
		t.Error("hydrated reception must be submittable")
	}
}

func TestUpdateLineProductResetsPrice(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	lineID := view.Lines[0].ID

	view, err := svc.UpdateLine(view.SessionID, userID, lineID, &UpdateLineInput{UnitPrice: fltPtr(999)})
	if err != nil {
		t.Fatalf("UpdateLine price: %v", err)
	}
	if view.Lines[0].UnitPrice != 999 {
		t.Fatalf("UnitPrice = %v, want 999", view.Lines[0].UnitPrice)
	}

	view, err = svc.UpdateLine(view.SessionID, userID, lineID, &UpdateLineInput{ProductID: strPtr("p1")})
	if err != nil {
		t.Fatalf("UpdateLine product: %v", err)
	}
	if view.Lines[0].UnitPrice != 1200 {
		t.Errorf("UnitPrice = %v, want cost price 1200 after product selection", view.Lines[0].UnitPrice)
	}
	if view.Lines[0].ProductName != "Sugar 1kg" {
		t.Errorf("ProductName = %q, want Sugar 1kg", view.Lines[0].ProductName)
	}
}

func TestAddAndRemoveLines(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	first := view.Lines[0].ID

	view, err := svc.AddLine(view.SessionID, userID)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if len(view.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(view.Lines))
	}
	if view.Lines[1].ID == first {
		t.Error("new line reused an existing id")
	}

	view, err = svc.RemoveLine(view.SessionID, userID, first)
	if err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(view.Lines))
	}

	if _, err := svc.RemoveLine(view.SessionID, userID, view.Lines[0].ID); err == nil {
		t.Error("removing the last line must be rejected")
	}
}

func TestProductOptionsCreateSuppression(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)

	tests := []struct {
		query       string
		wantMatches int
		wantCreate  bool
	}{
		{"", 2, false},
		{"sugar", 1, false},
		// Exact names suppress the affordance, even padded or recased;
		// a subtitle (SKU) match does not.
		{"Sugar 1kg", 1, false},
		{"  SUGAR 1KG  ", 0, false},
		{"Sugar 5kg", 0, true},
		{"SUG-1", 1, true},
	}
	for _, tt := range tests {
		opts, err := svc.ProductOptions(view.SessionID, userID, tt.query)
		if err != nil {
			t.Fatalf("ProductOptions(%q): %v", tt.query, err)
		}
		if len(opts.Options) != tt.wantMatches {
			t.Errorf("ProductOptions(%q) matches = %d, want %d", tt.query, len(opts.Options), tt.wantMatches)
		}
		if opts.CanCreate != tt.wantCreate {
			t.Errorf("ProductOptions(%q) canCreate = %v, want %v", tt.query, opts.CanCreate, tt.wantCreate)
		}
	}
}

func TestCompleteProductCreateAssignsTargetLine(t *testing.T) {
	var gotPayload *entity.ProductPayload
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createProduct: func(shopID string, payload *entity.ProductPayload) (*entity.Product, error) {
			gotPayload = payload
			return &entity.Product{
				ID:        "p-new",
				Name:      payload.Name,
				CostPrice: decimal.NewFromFloat(payload.CostPrice),
				Unit:      payload.Unit,
				MinStock:  payload.MinStock,
			}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	lineID := view.Lines[0].ID

	view, err := svc.BeginProductCreate(view.SessionID, userID, lineID, "Rice 5kg")
	if err != nil {
		t.Fatalf("BeginProductCreate: %v", err)
	}
	if view.Pending == nil || view.Pending.TargetLineID != lineID || view.Pending.SeedName != "Rice 5kg" {
		t.Fatalf("Pending = %+v, want target %s seeded with Rice 5kg", view.Pending, lineID)
	}

	view, err = svc.CompleteProductCreate(context.Background(), view.SessionID, userID, &CreateProductInput{Name: "Rice 5kg"})
	if err != nil {
		t.Fatalf("CompleteProductCreate: %v", err)
	}

	// Quick-create defaults.
	if gotPayload.Unit != "unit" || gotPayload.MinStock != 5 {
		t.Errorf("payload defaults = unit %q minStock %d, want unit/5", gotPayload.Unit, gotPayload.MinStock)
	}
	if gotPayload.CostPrice != 0 || gotPayload.SellingPrice != 0 || gotPayload.StockQuantity != 0 {
		t.Errorf("payload = %+v, want zero prices and stock", gotPayload)
	}

	if view.Pending != nil {
		t.Error("pending creation must clear on success")
	}
	if view.Lines[0].ProductID != "p-new" {
		t.Errorf("line product = %q, want p-new", view.Lines[0].ProductID)
	}
	if view.Lines[0].UnitPrice != 0 {
		t.Errorf("line price = %v, want reset to the new product's zero cost", view.Lines[0].UnitPrice)
	}

	// New product is searchable afterwards.
	opts, err := svc.ProductOptions(view.SessionID, userID, "rice")
	if err != nil {
		t.Fatalf("ProductOptions: %v", err)
	}
	if len(opts.Options) != 1 || opts.Options[0].ID != "p-new" {
		t.Errorf("options = %+v, want the created product", opts.Options)
	}
}

func TestCompleteProductCreateLineGoneIsNoOp(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createProduct: func(shopID string, payload *entity.ProductPayload) (*entity.Product, error) {
			return &entity.Product{ID: "p-new", Name: payload.Name, Unit: payload.Unit}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	target := view.Lines[0].ID

	if _, err := svc.AddLine(view.SessionID, userID); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := svc.BeginProductCreate(view.SessionID, userID, target, "Rice"); err != nil {
		t.Fatalf("BeginProductCreate: %v", err)
	}
	view, err := svc.RemoveLine(view.SessionID, userID, target)
	if err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}

	view, err = svc.CompleteProductCreate(context.Background(), view.SessionID, userID, &CreateProductInput{Name: "Rice"})
	if err != nil {
		t.Fatalf("CompleteProductCreate: %v", err)
	}

	for _, line := range view.Lines {
		if line.ProductID == "p-new" {
			t.Error("product assigned to a line although the target was removed")
		}
	}
	if view.Pending != nil {
		t.Error("pending creation must clear even when the line is gone")
	}

	// The catalog still gains the product.
	opts, err := svc.ProductOptions(view.SessionID, userID, "Rice")
	if err != nil {
		t.Fatalf("ProductOptions: %v", err)
	}
	if len(opts.Options) != 1 {
		t.Errorf("options = %+v, want the created product in the catalog", opts.Options)
	}
}

func TestCompleteProductCreateSurvivesSiblingRemoval(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createProduct: func(shopID string, payload *entity.ProductPayload) (*entity.Product, error) {
			return &entity.Product{ID: "p-new", Name: payload.Name, Unit: payload.Unit}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	sibling := view.Lines[0].ID

	view, err := svc.AddLine(view.SessionID, userID)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	target := view.Lines[1].ID

	if _, err := svc.BeginProductCreate(view.SessionID, userID, target, "Rice"); err != nil {
		t.Fatalf("BeginProductCreate: %v", err)
	}

	// Removing another line must not disturb the pending target, which is
	// tracked by id, not by position.
	if _, err := svc.RemoveLine(view.SessionID, userID, sibling); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}

	view, err = svc.CompleteProductCreate(context.Background(), view.SessionID, userID, &CreateProductInput{Name: "Rice"})
	if err != nil {
		t.Fatalf("CompleteProductCreate: %v", err)
	}

	if len(view.Lines) != 1 || view.Lines[0].ID != target {
		t.Fatalf("lines = %+v, want only the target line %s", view.Lines, target)
	}
	if view.Lines[0].ProductID != "p-new" {
		t.Errorf("target ProductID = %q, want p-new", view.Lines[0].ProductID)
	}
	if view.Pending != nil {
		t.Error("pending creation must clear after resolution")
	}
}

func TestCompleteProductCreateFailureKeepsPending(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createProduct: func(shopID string, payload *entity.ProductPayload) (*entity.Product, error) {
			return nil, apperror.NewUpstreamError(500, "inventory down")
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	lineID := view.Lines[0].ID

	if _, err := svc.BeginProductCreate(view.SessionID, userID, lineID, "Rice"); err != nil {
		t.Fatalf("BeginProductCreate: %v", err)
	}
	if _, err := svc.CompleteProductCreate(context.Background(), view.SessionID, userID, &CreateProductInput{Name: "Rice"}); err == nil {
		t.Fatal("expected remote failure to surface")
	}

	view, err := svc.Get(view.SessionID, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.Pending == nil {
		t.Error("pending creation must survive a failed remote create")
	}
}

func TestCompleteProductCreateRequiresName(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)

	_, err := svc.CompleteProductCreate(context.Background(), view.SessionID, userID, &CreateProductInput{Name: "   "})
	if err == nil {
		t.Fatal("expected validation error for blank name")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}

func TestCompleteProductCreateAfterCloseIsDiscarded(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createProduct: func(shopID string, payload *entity.ProductPayload) (*entity.Product, error) {
			return &entity.Product{ID: "p-new", Name: payload.Name}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	svc.Close(view.SessionID, userID)

	if _, err := svc.CompleteProductCreate(context.Background(), view.SessionID, userID, &CreateProductInput{Name: "Rice"}); err == nil {
		t.Error("expected not-found after the session was closed")
	}
}

func TestCreateSupplierQuickCreate(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createSupplier: func(shopID string, payload *entity.SupplierPayload) (*entity.Supplier, error) {
			return &entity.Supplier{ID: "s-new", Name: payload.Name}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)

	view, err := svc.CreateSupplier(context.Background(), view.SessionID, userID, "  Fresh Farms  ")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if view.Supplier.Value != "s-new" || view.Supplier.SelectedName != "Fresh Farms" {
		t.Errorf("supplier = %+v, want the new supplier selected", view.Supplier)
	}

	// The new supplier is part of the options afterwards.
	opts, err := svc.SupplierOptions(view.SessionID, userID, "fresh")
	if err != nil {
		t.Fatalf("SupplierOptions: %v", err)
	}
	if len(opts.Options) != 1 || opts.Options[0].ID != "s-new" {
		t.Errorf("options = %+v, want the created supplier", opts.Options)
	}
}

func TestCreateSupplierRejectsExistingName(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)

	// createSupplier stub is nil, so a remote call would fail the test.
	if _, err := svc.CreateSupplier(context.Background(), view.SessionID, userID, "acme distribution"); err == nil {
		t.Error("expected rejection for an existing supplier name")
	}
}

func TestCreateSupplierFailureKeepsSelection(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createSupplier: func(shopID string, payload *entity.SupplierPayload) (*entity.Supplier, error) {
			return nil, apperror.NewUpstreamError(500, "inventory down")
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)

	if _, err := svc.UpdateHeader(view.SessionID, userID, &UpdateHeaderInput{SupplierID: strPtr("s1")}); err != nil {
		t.Fatalf("UpdateHeader: %v", err)
	}
	if _, err := svc.CreateSupplier(context.Background(), view.SessionID, userID, "Fresh Farms"); err == nil {
		t.Fatal("expected remote failure to surface")
	}

	view, err := svc.Get(view.SessionID, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.Supplier.Value != "s1" {
		t.Errorf("supplier = %q, want the previous selection kept", view.Supplier.Value)
	}
	if view.Supplier.Creating {
		t.Error("creating flag must clear after failure")
	}
}

func TestSubmitCreateSendsValidLinesOnly(t *testing.T) {
	var gotPayload *entity.ReceptionPayload
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createReception: func(shopID string, payload *entity.ReceptionPayload) (*entity.Reception, error) {
			gotPayload = payload
			return &entity.Reception{ID: "r-new", Reference: payload.Reference}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	first := view.Lines[0].ID

	if _, err := svc.UpdateLine(view.SessionID, userID, first, &UpdateLineInput{ProductID: strPtr("p1"), Quantity: intPtr(3)}); err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}
	// Second line stays productless; it must not reach the payload.
	if _, err := svc.AddLine(view.SessionID, userID); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := svc.UpdateHeader(view.SessionID, userID, &UpdateHeaderInput{Reference: strPtr("BC-42"), TaxAmount: fltPtr(200)}); err != nil {
		t.Fatalf("UpdateHeader: %v", err)
	}

	reception, err := svc.Submit(context.Background(), view.SessionID, userID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if reception.ID != "r-new" {
		t.Errorf("reception.ID = %q, want r-new", reception.ID)
	}
	if len(gotPayload.Lines) != 1 {
		t.Fatalf("payload lines = %d, want 1 valid line", len(gotPayload.Lines))
	}
	if gotPayload.Lines[0].ProductID != "p1" || gotPayload.Lines[0].Quantity != 3 || gotPayload.Lines[0].UnitPrice != 1200 {
		t.Errorf("payload line = %+v, want p1 x3 at 1200", gotPayload.Lines[0])
	}
	if gotPayload.Reference != "BC-42" || gotPayload.TaxAmount != 200 {
		t.Errorf("payload header = %+v, want BC-42 with tax 200", gotPayload)
	}

	// The session is torn down after a successful submit.
	if _, err := svc.Get(view.SessionID, userID); err == nil {
		t.Error("session must be gone after successful submit")
	}
}

func TestSubmitEditUpdatesReception(t *testing.T) {
	var gotReceptionID string
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		getReception: func(shopID, receptionID string) (*entity.Reception, error) {
			return &entity.Reception{
				ID: receptionID,
				Lines: []entity.ReceptionLine{
					{ID: "l1", ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(1200)},
				},
			}, nil
		},
		updateReception: func(shopID, receptionID string, payload *entity.ReceptionPayload) (*entity.Reception, error) {
			gotReceptionID = receptionID
			return &entity.Reception{ID: receptionID}, nil
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view, err := svc.Open(context.Background(), &OpenFormInput{ShopID: "shop-1", UserID: userID, ReceptionID: "r7"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := svc.Submit(context.Background(), view.SessionID, userID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotReceptionID != "r7" {
		t.Errorf("updated reception = %q, want r7", gotReceptionID)
	}
}

func TestSubmitRequiresValidLine(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)

	_, err := svc.Submit(context.Background(), view.SessionID, userID)
	if err == nil {
		t.Fatal("expected rejection with no valid lines")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("code = %d, want 422", appErr.Code)
	}
}

func TestSubmitFailureSurfacesErrorAndReturnsToEditing(t *testing.T) {
	g := &stubGateway{
		products:  testProducts(),
		suppliers: testSuppliers(),
		createReception: func(shopID string, payload *entity.ReceptionPayload) (*entity.Reception, error) {
			return nil, apperror.NewUpstreamError(500, "inventory down")
		},
	}
	svc, store := newTestService(g)
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)
	if _, err := svc.UpdateLine(view.SessionID, userID, view.Lines[0].ID, &UpdateLineInput{ProductID: strPtr("p1")}); err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}

	if _, err := svc.Submit(context.Background(), view.SessionID, userID); err == nil {
		t.Fatal("expected submit failure to surface")
	}

	view, err := svc.Get(view.SessionID, userID)
	if err != nil {
		t.Fatalf("Get: session must survive a failed submit: %v", err)
	}
	if view.Status != "Editing" {
		t.Errorf("Status = %q, want Editing after failure", view.Status)
	}
	if view.LastError == "" {
		t.Error("a failed submit must leave a visible error on the form")
	}

	// Draft content is untouched and resubmittable.
	if !view.CanSubmit {
		t.Error("form must stay submittable after failure")
	}
}

func TestUpdateHeaderTogglesCharges(t *testing.T) {
	svc, store := newTestService(&stubGateway{products: testProducts(), suppliers: testSuppliers()})
	defer store.Close()

	userID := uuid.New()
	view := openForm(t, svc, userID)

	view, err := svc.UpdateHeader(view.SessionID, userID, &UpdateHeaderInput{
		ShowCharges: boolPtr(true),
		Discount:    fltPtr(150),
		Notes:       strPtr("urgent restock"),
	})
	if err != nil {
		t.Fatalf("UpdateHeader: %v", err)
	}
	if !view.ShowCharges || view.Discount != 150 || view.Notes != "urgent restock" {
		t.Errorf("view = showCharges %v discount %v notes %q", view.ShowCharges, view.Discount, view.Notes)
	}
}
