package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staylix/internal/domain"
	"staylix/internal/middleware"
	"staylix/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/:id/availability", h.RoomAvailability)
}

// RegisterProtectedRoutes expects rg to already run JWTAuth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", middleware.RequireCapability(domain.CapBook), h.CreateBooking)
	rg.GET("/bookings/my", h.MyBookings)
	rg.GET("/bookings/owner", middleware.RequireCapability(domain.CapViewOwnerBookings), h.OwnerBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/cancel/:id", h.CancelBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	b, err := h.service.CreateBooking(c.Request.Context(), p, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) MyBookings(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	list, err := h.service.MyBookings(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) OwnerBookings(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	list, err := h.service.OwnerBookings(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c, "Invalid booking ID")
	if !ok {
		return
	}
	p, _ := middleware.CurrentPrincipal(c)
	b, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := parseID(c, "Booking ID is required")
	if !ok {
		return
	}
	p, _ := middleware.CurrentPrincipal(c)
	b, err := h.service.Cancel(c.Request.Context(), p, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b, "message": "Booking cancelled successfully"})
}

func (h *Handler) RoomAvailability(c *gin.Context) {
	id, ok := parseID(c, "Invalid room ID")
	if !ok {
		return
	}
	checkIn, err := ParseDate(c.Query("check_in"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check-in date", gin.H{"check_in": err.Error()})
		return
	}
	checkOut, err := ParseDate(c.Query("check_out"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check-out date", gin.H{"check_out": err.Error()})
		return
	}

	a, err := h.service.CheckAvailability(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var fe *FieldError
	var dr *DiscountRejectedError

	switch {
	case errors.As(err, &fe):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", fe.Message, gin.H{fe.Field: fe.Message})
	case errors.As(err, &dr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "DISCOUNT_REJECTED", dr.Error(), gin.H{"reason": dr.Cause.Reason})
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	case errors.Is(err, ErrSelfBooking):
		response.Error(c, http.StatusForbidden, "SELF_BOOKING", "You cannot book a room in your own hotel")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "ROOM_NOT_AVAILABLE", "Room not available for selected dates")
	case errors.Is(err, ErrPriceMismatch):
		response.Error(c, http.StatusConflict, "PRICE_CHANGED", err.Error())
	case errors.Is(err, ErrPaymentRequired):
		response.Error(c, http.StatusPaymentRequired, "PAYMENT_REQUIRED", "Payment is required to book this room")
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "INVALID_PAYMENT_SIGNATURE", "Invalid payment signature")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrNotBookingOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized to cancel this booking")
	case errors.Is(err, ErrAlreadyCancelled):
		response.Error(c, http.StatusBadRequest, "ALREADY_CANCELLED", "Booking is already cancelled")
	case errors.Is(err, ErrBusy):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Booking is being modified, please retry")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking failed")
	}
}

func parseID(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", msg)
		return 0, false
	}
	return id, true
}
