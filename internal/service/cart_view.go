package service

import (
	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/i18n"
)

// CartLineView 购物车行视图
type CartLineView struct {
	ProductID uint     `json:"product_id"`
	Name      string   `json:"name"`
	UnitPrice string   `json:"unit_price"` // 两位小数展示价
	Quantity  int      `json:"quantity"`
	LineTotal string   `json:"line_total"` // 两位小数行小计
	Actions   []string `json:"actions"`
}

// CartFooterView 购物车页脚视图
type CartFooterView struct {
	GrandTotal string   `json:"grand_total"` // 两位小数合计
	Currency   string   `json:"currency"`
	Actions    []string `json:"actions"`
}

// CartView 购物车整体视图
type CartView struct {
	Lines           []CartLineView `json:"lines"`
	Empty           bool           `json:"empty"`
	EmptyMessage    string         `json:"empty_message,omitempty"`
	ItemCount       int            `json:"item_count"`
	Total           string         `json:"total"` // 精确合计（未舍入）
	Footer          CartFooterView `json:"footer"`
	StorageDegraded bool           `json:"storage_degraded"`
	StorageNotice   string         `json:"storage_notice,omitempty"`
}

// BuildCartView 将购物车快照投影为展示视图。
// 纯函数：同一快照重复调用结果一致，不修改快照本身。
func BuildCartView(snapshot CartSnapshot, currency, locale string) CartView {
	lines := make([]CartLineView, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, CartLineView{
			ProductID: line.ID,
			Name:      line.Name,
			UnitPrice: line.Price.Round(2).StringFixed(2),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal().Round(2).StringFixed(2),
			Actions: []string{
				constants.CartLineActionIncrease,
				constants.CartLineActionDecrease,
				constants.CartLineActionSetQuantity,
				constants.CartLineActionRemove,
			},
		})
	}

	view := CartView{
		Lines:     lines,
		Empty:     len(lines) == 0,
		ItemCount: snapshot.ItemCount,
		Total:     snapshot.Total.String(),
		Footer: CartFooterView{
			GrandTotal: snapshot.Total.Round(2).StringFixed(2),
			Currency:   currency,
			Actions: []string{
				constants.CartActionCheckout,
				constants.CartActionContinue,
			},
		},
		StorageDegraded: snapshot.Degraded,
	}
	if view.Empty {
		view.EmptyMessage = i18n.T(locale, "cart.empty")
	}
	if snapshot.Degraded {
		view.StorageNotice = i18n.T(locale, "cart.storage_degraded")
	}
	return view
}
