package panel

import (
	"errors"

	"github.com/cashere-pos/internal/http/response"
	"github.com/cashere-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrOutOfStock, code: response.CodeBadRequest, key: "error.out_of_stock"},
	{target: service.ErrStockLimited, code: response.CodeBadRequest, key: "error.stock_limited"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrPaymentMethodUnsupported, code: response.CodeBadRequest, key: "error.payment_method_unsupported"},
	{target: service.ErrOrderTypeInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var purchaseErrorRules = []mappedHandlerError{
	{target: service.ErrPurchaseNotFound, code: response.CodeNotFound, key: "error.purchase_not_found"},
	{target: service.ErrNoPurchasesSelected, code: response.CodeBadRequest, key: "error.no_purchases_selected"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrOrderTypeInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
}
