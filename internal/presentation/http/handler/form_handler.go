package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/reception-api/internal/application/service"
	"github.com/dukahub/reception-api/internal/presentation/http/dto/request"
	"github.com/dukahub/reception-api/internal/presentation/http/dto/response"
)

// FormHandler handles reception form session HTTP requests
type FormHandler struct {
	formService *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formService *service.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// sessionID parses the form id path parameter.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("form_id"))
	if err != nil {
		response.BadRequest(c, "Invalid form id")
		return uuid.Nil, false
	}
	return id, true
}

// Open creates a form session, blank or hydrated from an existing
// reception.
func (h *FormHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenFormRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request body")
		return
	}
	receptionID := req.ReceptionID
	if receptionID == "" {
		receptionID = c.Query("reception_id")
	}

	view, err := h.formService.Open(RequestContext(c), &service.OpenFormInput{
		ShopID:      c.Param("shop_id"),
		UserID:      *userID,
		ReceptionID: receptionID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Form opened", view)
}

// Get returns the current form state.
func (h *FormHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.formService.Get(id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Form retrieved", view)
}

// Close discards the form without submitting.
func (h *FormHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	h.formService.Close(id, *userID)
	response.NoContent(c)
}

// UpdateHeader patches the draft header.
func (h *FormHandler) UpdateHeader(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.UpdateHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.formService.UpdateHeader(id, *userID, &service.UpdateHeaderInput{
		Reference:   req.Reference,
		SupplierID:  req.SupplierID,
		Notes:       req.Notes,
		TaxAmount:   req.TaxAmount,
		DeliveryFee: req.DeliveryFee,
		OtherFees:   req.OtherFees,
		Discount:    req.Discount,
		ShowCharges: req.ShowCharges,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Form updated", view)
}

// AddLine appends a blank line.
func (h *FormHandler) AddLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.formService.AddLine(id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Line added", view)
}

// UpdateLine patches one line.
func (h *FormHandler) UpdateLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.formService.UpdateLine(id, *userID, c.Param("line_id"), &service.UpdateLineInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line updated", view)
}

// RemoveLine removes a line.
func (h *FormHandler) RemoveLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.formService.RemoveLine(id, *userID, c.Param("line_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", view)
}

// ProductOptions returns the filtered product options for a line's select.
func (h *FormHandler) ProductOptions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	options, err := h.formService.ProductOptions(id, *userID, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product options retrieved", options)
}

// SupplierOptions returns the filtered supplier options.
func (h *FormHandler) SupplierOptions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	options, err := h.formService.SupplierOptions(id, *userID, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier options retrieved", options)
}

// CreateSupplier quick-creates a supplier and selects it on the form.
func (h *FormHandler) CreateSupplier(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Supplier name is required")
		return
	}

	view, err := h.formService.CreateSupplier(RequestContext(c), id, *userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Supplier created", view)
}

// BeginProductCreate opens the inline product creation for a line.
func (h *FormHandler) BeginProductCreate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.BeginProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Line id is required")
		return
	}

	view, err := h.formService.BeginProductCreate(id, *userID, req.LineID, req.SeedName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product creation opened", view)
}

// CompleteProductCreate creates the product and assigns it to the line that
// asked for it.
func (h *FormHandler) CompleteProductCreate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Product name is required")
		return
	}

	view, err := h.formService.CompleteProductCreate(RequestContext(c), id, *userID, &service.CreateProductInput{
		Name:          req.Name,
		SKU:           req.SKU,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		Unit:          req.Unit,
		MinStock:      req.MinStock,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created", view)
}

// CancelProductCreate abandons a pending inline creation.
func (h *FormHandler) CancelProductCreate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.formService.CancelProductCreate(id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product creation cancelled", view)
}

// Submit sends the draft to the remote inventory API.
func (h *FormHandler) Submit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	reception, err := h.formService.Submit(RequestContext(c), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Reception saved", reception)
}
