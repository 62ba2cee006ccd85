package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page        int
	PageSize    int
	Category    string
	Search      string
	OnlyVisible bool
}

// PurchaseListFilter 查询销售流水列表的过滤条件
type PurchaseListFilter struct {
	Page          int
	PageSize      int
	PaymentMethod string
	CustomerID    string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}
