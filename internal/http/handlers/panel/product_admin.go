package panel

import (
	"strconv"

	handlershared "github.com/cashere-pos/internal/http/handlers/shared"
	"github.com/cashere-pos/internal/http/response"
	"github.com/cashere-pos/internal/repository"
	"github.com/cashere-pos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	Price         string  `json:"price" binding:"required"`
	PromoPrice    *string `json:"promo_price"`
	IsPromoActive bool    `json:"is_promo_active"`
	PromoText     string  `json:"promo_text"`
	Stock         *int    `json:"stock"`
	IsVisible     *bool   `json:"is_visible"`
}

func (r ProductRequest) toServiceInput() (service.UpsertProductInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return service.UpsertProductInput{}, err
	}
	input := service.UpsertProductInput{
		Name:          r.Name,
		Category:      r.Category,
		Description:   r.Description,
		Image:         r.Image,
		Price:         price,
		IsPromoActive: r.IsPromoActive,
		PromoText:     r.PromoText,
		Stock:         r.Stock,
		IsVisible:     r.IsVisible,
	}
	if r.PromoPrice != nil {
		promo, err := decimal.NewFromString(*r.PromoPrice)
		if err != nil {
			return service.UpsertProductInput{}, err
		}
		input.PromoPrice = &promo
	}
	return input, nil
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(value), true
}

// ListProducts 商品管理列表
func (h *Handler) ListProducts(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	products, total, err := h.CatalogService.List(ownerID, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.Get(ownerID, productID)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.Create(ownerID, input)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.Update(ownerID, productID, input)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.Delete(ownerID, productID); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, nil)
}
