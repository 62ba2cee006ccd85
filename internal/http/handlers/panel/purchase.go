package panel

import (
	"strconv"
	"time"

	handlershared "github.com/cashere-pos/internal/http/handlers/shared"
	"github.com/cashere-pos/internal/http/response"
	"github.com/cashere-pos/internal/repository"
	"github.com/cashere-pos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// UpdatePurchaseRequest 手工修改流水请求
type UpdatePurchaseRequest struct {
	ProductName   string  `json:"product_name"`
	Price         *string `json:"price"`
	Quantity      *int    `json:"quantity"`
	PaymentMethod string  `json:"payment_method"`
	OrderType     string  `json:"order_type"`
	CustomerName  string  `json:"customer_name"`
}

// ListPurchases 分页查询销售流水
func (h *Handler) ListPurchases(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.PurchaseListFilter{
		Page:          page,
		PageSize:      pageSize,
		PaymentMethod: c.Query("payment_method"),
		CustomerID:    c.Query("customer_id"),
	}
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			filter.CreatedFrom = &parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			end := parsed.AddDate(0, 0, 1)
			filter.CreatedTo = &end
		}
	}

	purchases, total, err := h.PurchaseService.List(ownerID, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.purchase_fetch_failed", err)
		return
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, purchases, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetPurchase 单条流水详情
func (h *Handler) GetPurchase(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	purchaseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	purchase, err := h.PurchaseService.Get(ownerID, purchaseID)
	if err != nil {
		respondWithMappedError(c, err, purchaseErrorRules, response.CodeInternal, "error.purchase_fetch_failed")
		return
	}
	response.Success(c, purchase)
}

// UpdatePurchase 手工修正流水记录
func (h *Handler) UpdatePurchase(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	purchaseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input := service.UpdatePurchaseInput{
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
		OrderType:     req.OrderType,
		CustomerName:  req.CustomerName,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		input.Price = &price
	}

	purchase, err := h.PurchaseService.Update(ownerID, purchaseID, input)
	if err != nil {
		respondWithMappedError(c, err, purchaseErrorRules, response.CodeInternal, "error.purchase_update_failed")
		return
	}
	response.Success(c, purchase)
}

// DeletePurchase 删除流水记录
func (h *Handler) DeletePurchase(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	purchaseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.PurchaseService.Delete(ownerID, purchaseID); err != nil {
		respondWithMappedError(c, err, purchaseErrorRules, response.CodeInternal, "error.purchase_update_failed")
		return
	}
	response.Success(c, nil)
}
