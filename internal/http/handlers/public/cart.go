package public

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/http/response"
	"github.com/motorstore/internal/i18n"
	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/service"

	"github.com/gin-gonic/gin"
)

// errQuantityInvalid 数量字段无法解析为整数
var errQuantityInvalid = errors.New("数量格式无效")

// FlexQuantity 数量字段，同时兼容 JSON 数字与数字字符串两种写法
type FlexQuantity int

// UnmarshalJSON 解析数量，非数字内容视为非法输入
func (q *FlexQuantity) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	if text == "" || text == "null" {
		return errQuantityInvalid
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		*q = FlexQuantity(n)
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errQuantityInvalid
	}
	*q = FlexQuantity(int64(f))
	return nil
}

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID uint           `json:"product_id" binding:"required"` // 车型ID
	Name      string         `json:"name"`                          // 名称快照（可选，缺省从车型库补齐）
	UnitPrice *models.Amount `json:"unit_price"`                    // 单价快照（可选，原值保留）
}

// SetCartQuantityRequest 修改数量请求
type SetCartQuantityRequest struct {
	Quantity *FlexQuantity `json:"quantity" binding:"required"` // 目标数量（<=0 等价于移除）
}

// GetCart 获取购物车视图
func (h *Handler) GetCart(c *gin.Context) {
	h.respondCartView(c, h.CartService.Snapshot(c.Request.Context()))
}

// GetCartCount 获取购物车件数合计
func (h *Handler) GetCartCount(c *gin.Context) {
	response.Success(c, gin.H{"count": h.CartService.ItemCount(c.Request.Context())})
}

// AddCartItem 加入购物车（已存在时数量加一）
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input := service.AddCartItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Locale:    i18n.ResolveLocale(c),
	}
	if req.UnitPrice != nil {
		input.UnitPrice = &req.UnitPrice.Decimal
	}

	snapshot, err := h.CartService.AddItem(c.Request.Context(), input)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	h.respondCartView(c, snapshot)
}

// SetCartItemQuantity 修改购物车行数量
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}

	var req SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, errQuantityInvalid) {
			respondError(c, response.CodeBadRequest, "error.cart_quantity_invalid", nil)
			return
		}
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	snapshot, err := h.CartService.SetQuantity(c.Request.Context(), productID, int(*req.Quantity))
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	h.respondCartView(c, snapshot)
}

// RemoveCartItem 移除购物车行（行不存在时静默成功）
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}

	snapshot, err := h.CartService.RemoveItem(c.Request.Context(), productID)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	h.respondCartView(c, snapshot)
}

// ClearCart 清空购物车（confirm=true 才执行，未确认仅记录不落盘）
func (h *Handler) ClearCart(c *gin.Context) {
	confirmed := strings.EqualFold(strings.TrimSpace(c.Query("confirm")), "true")

	snapshot, err := h.CartService.Clear(c.Request.Context(), confirmed)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	view := service.BuildCartView(snapshot, h.siteCurrency(), locale)
	if !confirmed {
		response.SuccessWithMsg(c, i18n.T(locale, "cart.clear_cancelled"), view)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "cart.cleared"), view)
}

func (h *Handler) respondCartView(c *gin.Context, snapshot service.CartSnapshot) {
	view := service.BuildCartView(snapshot, h.siteCurrency(), i18n.ResolveLocale(c))
	response.Success(c, view)
}

func (h *Handler) siteCurrency() string {
	if h.Config != nil {
		if currency := strings.TrimSpace(h.Config.Site.Currency); currency != "" {
			return currency
		}
	}
	return constants.SiteCurrencyDefault
}

func parseProductIDParam(c *gin.Context) (uint, bool) {
	rawID := c.Param("product_id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(productID), true
}
