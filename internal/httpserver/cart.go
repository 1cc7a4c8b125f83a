package httpserver

import (
	"net/http"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/service/cart"

	"github.com/gin-gonic/gin"
)

const (
	sessionHeader = "X-Cart-Session"
	sessionCookie = "cart_session"
	sessionCtxKey = "cartSession"
)

type cartResponse struct {
	Session       string             `json:"session"`
	Lines         []domain.CartLine  `json:"lines"`
	SubtotalCents int64              `json:"subtotalCents"`
	Subtotal      string             `json:"subtotal"`
	ItemCount     int                `json:"itemCount"`
	Notification  *cart.Notification `json:"notification,omitempty"`
}

func toCartResponse(session string, s *cart.Store, n cart.Notification) cartResponse {
	lines := s.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	resp := cartResponse{
		Session:       session,
		Lines:         lines,
		SubtotalCents: s.Subtotal(),
		Subtotal:      domain.FormatCents(s.Subtotal()),
		ItemCount:     s.ItemCount(),
	}
	if !n.IsZero() {
		resp.Notification = &n
	}
	return resp
}

type addItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// cartSession resolves the shopper's session from the header or cookie,
// issuing a fresh one when missing or expired. The session is echoed back
// on every response.
func (h *handlers) cartSession(c *gin.Context) {
	ctx := c.Request.Context()
	token := c.GetHeader(sessionHeader)
	if token == "" {
		token, _ = c.Cookie(sessionCookie)
	}

	session, err := h.deps.Sessions.Resolve(ctx, token)
	if err != nil {
		session, err = h.deps.Sessions.Issue(ctx)
		if err != nil {
			h.writeError(c, err)
			c.Abort()
			return
		}
	}
	h.setSession(c, session)
	c.Set(sessionCtxKey, session)
	c.Next()
}

func (h *handlers) setSession(c *gin.Context, session string) {
	c.Header(sessionHeader, session)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, session, int(h.deps.Sessions.TTL()/time.Second), "/", "", false, true)
}

func (h *handlers) newSession(c *gin.Context) {
	session, err := h.deps.Sessions.Issue(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSession(c, session)
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// withCart runs fn on the session cart and writes the resulting cart.
func (h *handlers) withCart(c *gin.Context, status int, fn func(*cart.Store) (cart.Notification, error)) {
	session := c.GetString(sessionCtxKey)
	var resp cartResponse
	err := h.deps.Carts.With(c.Request.Context(), session, func(s *cart.Store) error {
		n, err := fn(s)
		if err != nil {
			return err
		}
		resp = toCartResponse(session, s, n)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, resp)
}

func (h *handlers) getCart(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(*cart.Store) (cart.Notification, error) {
		return cart.Notification{}, nil
	})
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.deps.Menu.Orderable(c.Request.Context(), req.ItemID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.withCart(c, http.StatusOK, func(s *cart.Store) (cart.Notification, error) {
		return s.AddItem(c.Request.Context(), *item), nil
	})
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.withCart(c, http.StatusOK, func(s *cart.Store) (cart.Notification, error) {
		return s.UpdateQuantity(c.Request.Context(), c.Param("itemId"), *req.Quantity), nil
	})
}

func (h *handlers) removeCartItem(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(s *cart.Store) (cart.Notification, error) {
		return s.RemoveItem(c.Request.Context(), c.Param("itemId")), nil
	})
}

func (h *handlers) clearCart(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(s *cart.Store) (cart.Notification, error) {
		return s.Clear(c.Request.Context()), nil
	})
}
