package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/http/response"
	"github.com/motorstore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetConfig 获取全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	siteName := ""
	currency := constants.SiteCurrencyDefault
	noticeDurationMS := int64(constants.NoticeDefaultDurationMS)
	if h.Config != nil {
		siteName = strings.TrimSpace(h.Config.Site.Name)
		if value := strings.TrimSpace(h.Config.Site.Currency); value != "" {
			currency = value
		}
		if h.Config.Notice.DefaultDurationMS > 0 {
			noticeDurationMS = h.Config.Notice.DefaultDurationMS
		}
	}

	response.Success(c, gin.H{
		"site": gin.H{
			"name":     siteName,
			"currency": currency,
		},
		"languages":     constants.SupportedLocales,
		"theme_default": constants.ThemeDefault,
		"notice": gin.H{
			"default_duration_ms": noticeDurationMS,
		},
	})
}

// GetProducts 获取车型列表
func (h *Handler) GetProducts(c *gin.Context) {
	// 获取分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	input := service.ListPublicInput{
		CategoryID:   strings.TrimSpace(c.Query("category_id")),
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		Page:         page,
		PageSize:     pageSize,
	}
	minPrice, ok := parsePriceQuery(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := parsePriceQuery(c, "max_price")
	if !ok {
		return
	}
	input.MinPrice = minPrice
	input.MaxPrice = maxPrice

	products, total, err := h.CatalogService.ListPublic(c.Request.Context(), input)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	// 统一响应格式
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 根据 slug 获取车型详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.CatalogService.GetPublicBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.Success(c, product)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, categories)
}

func parsePriceQuery(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return nil, false
	}
	return &value, true
}
