package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/reception-api/internal/domain/entity"
	"github.com/dukahub/reception-api/internal/domain/enum"
	"github.com/dukahub/reception-api/internal/domain/gateway"
	"github.com/dukahub/reception-api/internal/infrastructure/sessionstore"
	"github.com/dukahub/reception-api/pkg/apperror"
	"github.com/dukahub/reception-api/pkg/selectbox"
)

// FormService drives reception form sessions: opening a draft, mutating its
// lines and header, resolving inline creations, and submitting to the
// remote inventory API. All session mutations happen under the session
// lock; remote calls run with the lock released and their results are
// re-applied only if the session still exists afterwards.
type FormService struct {
	store     *sessionstore.Store
	inventory gateway.InventoryGateway
}

// NewFormService creates a new form service
func NewFormService(store *sessionstore.Store, inventory gateway.InventoryGateway) *FormService {
	return &FormService{
		store:     store,
		inventory: inventory,
	}
}

// OpenFormInput represents the open form input
type OpenFormInput struct {
	ShopID      string
	UserID      uuid.UUID
	ReceptionID string // empty opens a blank draft, set opens an edit
}

// Open creates a form session. The product and supplier catalogs are
// fetched once here and then only grow through inline creations; edits made
// elsewhere while the form is open are not reflected.
func (s *FormService) Open(ctx context.Context, input *OpenFormInput) (*FormView, error) {
	products, err := s.inventory.ListProducts(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.inventory.ListSuppliers(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	catalog := entity.NewCatalog(products, suppliers)

	var draft *entity.ReceptionDraft
	if input.ReceptionID != "" {
		reception, err := s.inventory.GetReception(ctx, input.ShopID, input.ReceptionID)
		if err != nil {
			return nil, err
		}
		draft = entity.HydrateDraft(reception)
	} else {
		draft = entity.NewDraft()
	}

	session := entity.NewFormSession(input.ShopID, input.UserID, input.ReceptionID, draft, catalog)
	session.SupplierBox = selectbox.New(selectbox.Config{
		Options: catalog.SupplierOptions(),
		Value:   draft.SupplierID,
		OnChange: func(id string) {
			draft.SupplierID = id
		},
		QuickCreate: func(ctx context.Context, name string) (selectbox.Option, error) {
			supplier, err := s.inventory.CreateSupplier(ctx, input.ShopID, &entity.SupplierPayload{Name: name})
			if err != nil {
				return selectbox.Option{}, err
			}
			return supplier.Option(), nil
		},
	})
	s.store.Put(session)

	session.Lock()
	defer session.Unlock()
	return snapshot(session), nil
}

// Get returns the current state of a session.
func (s *FormService) Get(sessionID, userID uuid.UUID) (*FormView, error) {
	session, err := s.store.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	session.Touch()
	return snapshot(session), nil
}

// Close discards a session without submitting. Closing an already-gone
// session succeeds; there is nothing left to discard.
func (s *FormService) Close(sessionID, userID uuid.UUID) {
	if session, err := s.store.Get(sessionID, userID); err == nil {
		s.store.Delete(session.ID)
	}
}

// AddLine appends a blank line to the draft.
func (s *FormService) AddLine(sessionID, userID uuid.UUID) (*FormView, error) {
	return s.mutate(sessionID, userID, func(session *entity.FormSession) error {
		session.Draft.AddLine()
		return nil
	})
}

// RemoveLine removes a line. The draft keeps at least one line; removing
// the last one is rejected.
func (s *FormService) RemoveLine(sessionID, userID uuid.UUID, lineID string) (*FormView, error) {
	return s.mutate(sessionID, userID, func(session *entity.FormSession) error {
		if session.Draft.Line(lineID) == nil {
			return apperror.NewNotFoundError("Line")
		}
		if !session.Draft.RemoveLine(lineID) {
			return apperror.NewBadRequestError("A reception needs at least one line")
		}
		return nil
	})
}

// UpdateLineInput represents a partial line update. Nil fields are left
// untouched.
type UpdateLineInput struct {
	ProductID *string
	Quantity  *int
	UnitPrice *float64
}

// UpdateLine patches one line. Setting a product also resets the line's
// unit price to that product's cost price, overwriting any manual entry.
func (s *FormService) UpdateLine(sessionID, userID uuid.UUID, lineID string, input *UpdateLineInput) (*FormView, error) {
	return s.mutate(sessionID, userID, func(session *entity.FormSession) error {
		draft := session.Draft
		if draft.Line(lineID) == nil {
			return apperror.NewNotFoundError("Line")
		}
		if input.ProductID != nil {
			draft.SetLineProduct(lineID, *input.ProductID, session.Catalog)
		}
		if input.Quantity != nil {
			draft.SetLineQuantity(lineID, *input.Quantity)
		}
		if input.UnitPrice != nil {
			draft.SetLineUnitPrice(lineID, decimal.NewFromFloat(*input.UnitPrice))
		}
		return nil
	})
}

// UpdateHeaderInput represents a partial header update. Nil fields are left
// untouched.
type UpdateHeaderInput struct {
	Reference   *string
	SupplierID  *string
	Notes       *string
	TaxAmount   *float64
	DeliveryFee *float64
	OtherFees   *float64
	Discount    *float64
	ShowCharges *bool
}

// UpdateHeader patches the draft header. Supplier changes go through the
// supplier select so its state stays consistent with the draft.
func (s *FormService) UpdateHeader(sessionID, userID uuid.UUID, input *UpdateHeaderInput) (*FormView, error) {
	return s.mutate(sessionID, userID, func(session *entity.FormSession) error {
		draft := session.Draft
		if input.Reference != nil {
			draft.Reference = *input.Reference
		}
		if input.SupplierID != nil {
			if *input.SupplierID == "" {
				session.SupplierBox.Clear()
			} else {
				if session.Catalog.Supplier(*input.SupplierID) == nil {
					return apperror.NewNotFoundError("Supplier")
				}
				session.SupplierBox.Select(*input.SupplierID)
			}
		}
		if input.Notes != nil {
			draft.Notes = *input.Notes
		}
		if input.TaxAmount != nil {
			draft.TaxAmount = decimal.NewFromFloat(*input.TaxAmount)
		}
		if input.DeliveryFee != nil {
			draft.DeliveryFee = decimal.NewFromFloat(*input.DeliveryFee)
		}
		if input.OtherFees != nil {
			draft.OtherFees = decimal.NewFromFloat(*input.OtherFees)
		}
		if input.Discount != nil {
			draft.Discount = decimal.NewFromFloat(*input.Discount)
		}
		if input.ShowCharges != nil {
			session.ShowCharges = *input.ShowCharges
		}
		return nil
	})
}

// OptionsView is a filtered option list plus whether the create affordance
// applies to the query.
type OptionsView struct {
	Options   []selectbox.Option `json:"options"`
	CanCreate bool               `json:"can_create"`
}

// ProductOptions filters the session's product catalog. CanCreate is false
// when the trimmed query is empty or already names an existing product.
func (s *FormService) ProductOptions(sessionID, userID uuid.UUID, query string) (*OptionsView, error) {
	session, err := s.store.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	session.Touch()

	options := session.Catalog.ProductOptions()
	return &OptionsView{
		Options:   selectbox.Filter(options, query),
		CanCreate: strings.TrimSpace(query) != "" && !selectbox.HasExactMatch(options, query),
	}, nil
}

// SupplierOptions filters the session's supplier select.
func (s *FormService) SupplierOptions(sessionID, userID uuid.UUID, query string) (*OptionsView, error) {
	session, err := s.store.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	session.Touch()

	box := session.SupplierBox
	box.SetQuery(query)
	return &OptionsView{
		Options:   box.Visible(),
		CanCreate: box.CanCreate(),
	}, nil
}

// CreateSupplier quick-creates a supplier from a bare name and selects it.
// The remote call runs with the session lock released; if the session is
// gone when it returns, the created supplier is simply not applied
// anywhere. A name matching an existing supplier is rejected before any
// remote call.
func (s *FormService) CreateSupplier(ctx context.Context, sessionID, userID uuid.UUID, name string) (*FormView, error) {
	session, err := s.store.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	if !session.IsEditing() {
		session.Unlock()
		return nil, apperror.NewConflictError("Form is submitting")
	}
	box := session.SupplierBox
	box.SetQuery(name)
	trimmed, _, err := box.BeginCreate()
	shopID := session.ShopID
	session.Unlock()
	if err != nil {
		switch err {
		case selectbox.ErrNothingToCreate:
			return nil, apperror.NewBadRequestError("Nothing to create: name is empty or already exists")
		case selectbox.ErrCreateInFlight:
			return nil, apperror.NewConflictError("A supplier creation is already in flight")
		}
		return nil, err
	}

	supplier, createErr := s.inventory.CreateSupplier(ctx, shopID, &entity.SupplierPayload{Name: trimmed})

	session, err = s.store.Get(sessionID, userID)
	if err != nil {
		// Session closed while the remote call was in flight. The
		// supplier exists remotely; the form state it targeted does not.
		if createErr != nil {
			return nil, createErr
		}
		return nil, err
	}

	session.Lock()
	defer session.Unlock()
	session.Touch()
	if createErr != nil {
		session.SupplierBox.FinishCreate(selectbox.Option{}, createErr)
		return nil, createErr
	}
	session.Catalog.AddSupplier(*supplier)
	session.SupplierBox.FinishCreate(supplier.Option(), nil)
	return snapshot(session), nil
}

// BeginProductCreate opens the inline product creation for a line,
// remembering which line asked and the search text that seeded it.
func (s *FormService) BeginProductCreate(sessionID, userID uuid.UUID, lineID, seedName string) (*FormView, error) {
	return s.mutate(sessionID, userID, func(session *entity.FormSession) error {
		if session.Draft.Line(lineID) == nil {
			return apperror.NewNotFoundError("Line")
		}
		session.Pending = &entity.PendingCreation{
			TargetLineID: lineID,
			SeedName:     strings.TrimSpace(seedName),
		}
		return nil
	})
}

// CancelProductCreate abandons a pending inline creation.
func (s *FormService) CancelProductCreate(sessionID, userID uuid.UUID) (*FormView, error) {
	return s.mutate(sessionID, userID, func(session *entity.FormSession) error {
		session.Pending = nil
		return nil
	})
}

// CreateProductInput represents the inline product creation input. Only
// the name is required; everything else defaults to the quick-create
// profile of a product whose stock arrives through the reception itself.
type CreateProductInput struct {
	Name          string
	SKU           string
	CostPrice     *float64
	SellingPrice  *float64
	Unit          *string
	MinStock      *int
	StockQuantity *int
}

func (in *CreateProductInput) payload() *entity.ProductPayload {
	payload := &entity.ProductPayload{
		Name:          strings.TrimSpace(in.Name),
		SKU:           strings.TrimSpace(in.SKU),
		CostPrice:     0,
		SellingPrice:  0,
		Unit:          "unit",
		MinStock:      5,
		StockQuantity: 0,
	}
	if in.CostPrice != nil {
		payload.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		payload.SellingPrice = *in.SellingPrice
	}
	if in.Unit != nil && *in.Unit != "" {
		payload.Unit = *in.Unit
	}
	if in.MinStock != nil {
		payload.MinStock = *in.MinStock
	}
	if in.StockQuantity != nil {
		payload.StockQuantity = *in.StockQuantity
	}
	return payload
}

// CompleteProductCreate creates the product remotely and resolves the
// pending creation. The new product always joins the catalog; it is
// assigned to the target line only if that line still exists, which resets
// the line's price to the product's cost price. A pending creation whose
// line was removed resolves as a catalog-only no-op. On remote failure the
// pending creation is kept so the form can retry.
func (s *FormService) CompleteProductCreate(ctx context.Context, sessionID, userID uuid.UUID, input *CreateProductInput) (*FormView, error) {
	session, err := s.store.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	session.Lock()
	if !session.IsEditing() {
		session.Unlock()
		return nil, apperror.NewConflictError("Form is submitting")
	}
	shopID := session.ShopID
	session.Unlock()

	product, createErr := s.inventory.CreateProduct(ctx, shopID, input.payload())

	session, err = s.store.Get(sessionID, userID)
	if err != nil {
		// Session closed mid-flight; the created product stays in the
		// remote catalog but there is no form left to update.
		if createErr != nil {
			return nil, createErr
		}
		return nil, err
	}

	session.Lock()
	defer session.Unlock()
	session.Touch()
	if createErr != nil {
		return nil, createErr
	}

	session.Catalog.AddProduct(*product)
	if session.Pending != nil {
		session.Draft.SetLineProduct(session.Pending.TargetLineID, product.ID, session.Catalog)
		session.Pending = nil
	}
	return snapshot(session), nil
}

// Submit sends the draft's valid lines to the remote inventory API. While
// the call is in flight the session is in the submitting state and rejects
// further mutations. On success the session is torn down; on failure it
// returns to editing with the error message surfaced on the form.
func (s *FormService) Submit(ctx context.Context, sessionID, userID uuid.UUID) (*entity.Reception, error) {
	session, err := s.store.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	if !session.IsEditing() {
		session.Unlock()
		return nil, apperror.NewConflictError("Form is already submitting")
	}
	if !session.Draft.CanSubmit() {
		session.Unlock()
		return nil, apperror.NewUnprocessableError("At least one line with a product and a positive quantity is required")
	}
	session.Status = enum.FormStatusSubmitting
	session.LastError = ""
	payload := session.Draft.Payload()
	shopID := session.ShopID
	receptionID := session.ReceptionID
	session.Unlock()

	var reception *entity.Reception
	var submitErr error
	if receptionID != "" {
		reception, submitErr = s.inventory.UpdateReception(ctx, shopID, receptionID, payload)
	} else {
		reception, submitErr = s.inventory.CreateReception(ctx, shopID, payload)
	}

	if submitErr != nil {
		log.Printf("reception submit failed (shop=%s reception=%q): %v", shopID, receptionID, submitErr)
		if session, err := s.store.Get(sessionID, userID); err == nil {
			session.Lock()
			session.Status = enum.FormStatusEditing
			session.LastError = submitErr.Error()
			session.Touch()
			session.Unlock()
		}
		return nil, submitErr
	}

	s.store.Delete(sessionID)
	return reception, nil
}

// mutate runs fn on the locked session, rejecting mutations while a
// submission is in flight, and snapshots the result.
func (s *FormService) mutate(sessionID, userID uuid.UUID, fn func(*entity.FormSession) error) (*FormView, error) {
	session, err := s.store.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	if !session.IsEditing() {
		return nil, apperror.NewConflictError("Form is submitting")
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.Touch()
	return snapshot(session), nil
}
