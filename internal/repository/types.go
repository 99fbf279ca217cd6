package repository

import "github.com/shopspring/decimal"

// ProductListFilter 查询车型列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	OnlyActive   bool
	WithCategory bool
}
