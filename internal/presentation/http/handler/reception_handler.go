package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dukahub/reception-api/internal/application/service"
	"github.com/dukahub/reception-api/internal/presentation/http/dto/request"
	"github.com/dukahub/reception-api/internal/presentation/http/dto/response"
	"github.com/dukahub/reception-api/pkg/pagination"
)

// ReceptionHandler handles reception list, detail and delete requests
type ReceptionHandler struct {
	receptionService *service.ReceptionService
}

// NewReceptionHandler creates a new reception handler
func NewReceptionHandler(receptionService *service.ReceptionService) *ReceptionHandler {
	return &ReceptionHandler{receptionService: receptionService}
}

// List handles listing receptions with search and pagination
func (h *ReceptionHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.ReceptionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.receptionService.List(RequestContext(c), &service.ListReceptionsInput{
		ShopID: c.Param("shop_id"),
		Search: filter.Search,
		Params: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receptions retrieved successfully", result)
}

// Get handles retrieving a single reception
func (h *ReceptionHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	detail, err := h.receptionService.Get(RequestContext(c), c.Param("shop_id"), c.Param("reception_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reception retrieved successfully", detail)
}

// Delete handles deleting a reception
func (h *ReceptionHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.receptionService.Delete(RequestContext(c), c.Param("shop_id"), c.Param("reception_id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reception deleted successfully", nil)
}
