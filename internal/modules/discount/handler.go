package discount

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staylix/internal/domain"
	"staylix/internal/middleware"
	"staylix/internal/pkg/response"
	"staylix/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/discounts", h.List)
	rg.GET("/discounts/active", h.ListActive)
	rg.GET("/discounts/:id", h.Get)
}

// RegisterProtectedRoutes expects rg to already run JWTAuth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/discounts/validate", h.Validate)

	owner := rg.Group("", middleware.RequireCapability(domain.CapRequestDiscount))
	owner.POST("/discounts/request", h.Request)
	owner.GET("/discounts/owner/requests", h.OwnerRequests)

	admin := rg.Group("", middleware.RequireCapability(domain.CapManageDiscounts))
	admin.POST("/discounts", h.Create)
	admin.PUT("/discounts/:id", h.Update)
	admin.DELETE("/discounts/:id", h.Delete)
	admin.PUT("/discounts/:id/toggle", h.Toggle)
	admin.PUT("/discounts/:id/approve", h.Approve)
	admin.PUT("/discounts/:id/reject", h.Reject)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discounts": list})
}

func (h *Handler) ListActive(c *gin.Context) {
	list, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discounts": list})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discount": d})
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := bindUpsert(c)
	if !ok {
		return
	}
	p, _ := middleware.CurrentPrincipal(c)
	d, err := h.service.Create(c.Request.Context(), p.UserID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"discount": d})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindUpsert(c)
	if !ok {
		return
	}
	d, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discount": d})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Discount deleted successfully"})
}

func (h *Handler) Toggle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.service.Toggle(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	msg := "Discount deactivated successfully"
	if d.IsActive {
		msg = "Discount activated successfully"
	}
	response.Success(c, http.StatusOK, gin.H{"discount": d, "message": msg})
}

func (h *Handler) Request(c *gin.Context) {
	req, ok := bindUpsert(c)
	if !ok {
		return
	}
	p, _ := middleware.CurrentPrincipal(c)
	d, err := h.service.Request(c.Request.Context(), p.UserID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"discount": d, "message": "Discount request submitted successfully"})
}

func (h *Handler) OwnerRequests(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	list, err := h.service.OwnerRequests(c.Request.Context(), p.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discounts": list})
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discount": d, "message": "Discount request approved successfully"})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RejectRequest
	// An empty body is allowed; the default reason is used.
	_ = c.ShouldBindJSON(&req)

	d, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discount": d, "message": "Discount request rejected"})
}

func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code and booking amount are required", errs)
		return
	}

	preview, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discount": preview, "message": "Discount code is valid"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		status := http.StatusBadRequest
		if rej.Reason == ReasonNotFound {
			status = http.StatusNotFound
		}
		response.ErrorWithDetails(c, status, "DISCOUNT_REJECTED", rej.Error(), gin.H{"reason": rej.Reason})
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrInvalidDates):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Start date must be before end date")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Discount not found")
	case errors.Is(err, ErrDuplicate):
		response.Error(c, http.StatusConflict, "DUPLICATE_CODE", "Discount code already exists")
	case errors.Is(err, ErrNotPending):
		response.Error(c, http.StatusBadRequest, "NOT_PENDING", "Discount request is not pending")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process discount")
	}
}

func bindUpsert(c *gin.Context) (UpsertRequest, bool) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return req, false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid discount fields", errs)
		return req, false
	}
	return req, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid discount ID")
		return 0, false
	}
	return id, true
}
