package livefeed

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"staylix/internal/domain"
	"staylix/internal/middleware"
	"staylix/internal/pkg/response"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler serves GET /ws/owner/bookings?token=JWT. Browsers cannot set
// headers on websocket requests, so the token travels in the query.
type Handler struct {
	hub      *Hub
	auth     *middleware.Authenticator
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewHandler(hub *Hub, auth *middleware.Authenticator, allowedOrigins []string, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	return &Handler{
		hub:  hub,
		auth: auth,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/owner/bookings", h.Serve)
}

func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	p, err := h.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, middleware.ErrAccountBlocked) {
			response.Error(c, http.StatusForbidden, "ACCOUNT_BLOCKED", "Your account has been blocked")
			return
		}
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}
	if !p.Can(domain.CapViewOwnerBookings) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).WithField("user_id", p.UserID).Warn("websocket upgrade failed")
		return
	}

	conn := h.hub.register(p.UserID, ws)
	h.log.WithField("user_id", p.UserID).Info("owner connected to booking feed")

	done := make(chan struct{})
	defer func() {
		close(done)
		h.hub.unregister(p.UserID, conn)
		h.log.WithField("user_id", p.UserID).Info("owner disconnected from booking feed")
	}()

	_ = conn.writeJSON(Message{Type: MessageHello, UserID: p.UserID})

	go h.pingLoop(conn, done)
	h.readLoop(conn)
}

func (h *Handler) pingLoop(c *conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.writeControl(websocket.PingMessage); err != nil {
				return
			}
		}
	}
}

// readLoop only drains control frames; the feed is server to client.
func (h *Handler) readLoop(c *conn) {
	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("booking feed read error")
			}
			return
		}
	}
}
