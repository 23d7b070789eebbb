package payment

import (
	"errors"
	"net/http"

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

// RegisterProtectedRoutes expects rg to already run JWTAuth. The sandbox
// settle route exists only when the sandbox gateway is active.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/create-payment-order", middleware.RequireCapability(domain.CapBook), h.CreatePaymentOrder)
	if _, ok := h.service.Gateway().(*Sandbox); ok {
		rg.POST("/payments/sandbox/settle", h.SandboxSettle)
	}
}

func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	order, err := h.service.CreatePaymentOrder(c.Request.Context(), p.UserID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be greater than 0")
		case errors.Is(err, ErrGateway):
			_ = c.Error(err)
			response.Error(c, http.StatusBadGateway, "PAYMENT_GATEWAY_ERROR", "Failed to initiate payment")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to initiate payment")
		}
		return
	}

	response.Success(c, http.StatusOK, CreateOrderResponse{Order: order, KeyID: h.service.Gateway().PublicKey()})
}

func (h *Handler) SandboxSettle(c *gin.Context) {
	sb, ok := h.service.Gateway().(*Sandbox)
	if !ok {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Sandbox gateway is not active")
		return
	}

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "order_id is required", errs)
		return
	}

	proof, err := sb.Settle(req.OrderID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown payment order")
		return
	}
	response.Success(c, http.StatusOK, SettleResponse{
		OrderID:   proof.OrderID,
		PaymentID: proof.PaymentID,
		Signature: proof.Signature,
	})
}
