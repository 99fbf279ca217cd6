package models

import (
	"github.com/shopspring/decimal"
)

// CartLine 购物车行（持久化结构，字段名与存量数据兼容，不可改动）
type CartLine struct {
	ID       uint   `json:"id"`       // 商品ID
	Name     string `json:"name"`     // 商品名称快照
	Price    Amount `json:"price"`    // 单价快照（原值保留，不校验）
	Quantity int    `json:"quantity"` // 数量（行存在期间始终 >= 1）
}

// LineTotal 行小计（单价 × 数量）
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart 购物车（按加入顺序排列，商品ID唯一）
type Cart []CartLine

// IndexOf 返回商品所在行下标，未找到返回 -1
func (c Cart) IndexOf(productID uint) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

// ItemCount 商品件数合计（各行数量之和）
func (c Cart) ItemCount() int {
	count := 0
	for i := range c {
		count += c[i].Quantity
	}
	return count
}

// TotalAmount 金额合计（逐行小计累加，不做中间舍入）
func (c Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range c {
		total = total.Add(c[i].LineTotal())
	}
	return total
}

// Clone 返回购物车的独立副本
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	cloned := make(Cart, len(c))
	copy(cloned, c)
	return cloned
}
