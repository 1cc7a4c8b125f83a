package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/service/cart"
	"restaurant-ordering/internal/service/feedback"
	"restaurant-ordering/internal/service/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *handlers) submitOrder(c *gin.Context) {
	var in order.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	var receipt *order.Receipt
	err := h.deps.Carts.With(c.Request.Context(), c.GetString(sessionCtxKey), func(s *cart.Store) error {
		var err error
		receipt, err = h.deps.Orders.Submit(c.Request.Context(), s, in)
		return err
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, receipt)
	case errors.Is(err, domain.ErrSubmissionFailed):
		h.logger.Error("order submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "there was a problem placing your order", "detail": submissionDetail(err)})
	default:
		h.writeError(c, err)
	}
}

func (h *handlers) submitFeedback(c *gin.Context) {
	var in feedback.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	f, err := h.deps.Feedback.Submit(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, f)
	case errors.Is(err, feedback.ErrUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.writeError(c, err)
	}
}

// submissionDetail is the cause of a failed submission without the
// sentinel prefix, or a retry hint when there is none.
func submissionDetail(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrSubmissionFailed.Error()+": ")
	if msg == "" || msg == domain.ErrSubmissionFailed.Error() {
		return "please try again later"
	}
	return msg
}
