package panel

import (
	"github.com/cashere-pos/internal/http/response"
	"github.com/cashere-pos/internal/i18n"
	"github.com/cashere-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
	OrderType     string `json:"order_type"`
	CustomerName  string `json:"customer_name"`
}

// CompleteCheckout 完成结账
func (h *Handler) CompleteCheckout(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CheckoutService.CompleteCheckout(ownerID, service.CheckoutInput{
		PaymentMethod: req.PaymentMethod,
		OrderType:     req.OrderType,
		CustomerName:  req.CustomerName,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.checkout_failed")
		return
	}

	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "notify.checkout_success"), result)
}
