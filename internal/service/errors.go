package service

import "errors"

// 业务错误定义, handler 层据此映射响应码与文案
var (
	ErrOwnerRequired            = errors.New("owner required")
	ErrCredentialsInvalid       = errors.New("credentials invalid")
	ErrTokenInvalid             = errors.New("token invalid")
	ErrProductInvalid           = errors.New("product invalid")
	ErrProductNotFound          = errors.New("product not found")
	ErrProductNotAvailable      = errors.New("product not available")
	ErrOutOfStock               = errors.New("out of stock")
	ErrStockLimited             = errors.New("stock limited")
	ErrQuantityInvalid          = errors.New("quantity invalid")
	ErrCartItemNotFound         = errors.New("cart item not found")
	ErrCartEmpty                = errors.New("cart empty")
	ErrPaymentMethodUnsupported = errors.New("payment method unsupported")
	ErrOrderTypeInvalid         = errors.New("order type invalid")
	ErrPurchaseNotFound         = errors.New("purchase not found")
	ErrNoPurchasesSelected      = errors.New("no purchases selected")
)
