package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/motorstore/internal/cache"
	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	categoryListCacheKey = "catalog:categories"
	categoryListCacheTTL = 5 * time.Minute
)

// ListPublicInput 公开车型列表查询输入
type ListPublicInput struct {
	CategoryID   string
	CategorySlug string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Page         int
	PageSize     int
}

// CatalogService 车型目录服务
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListPublic 获取公开在售车型列表
func (s *CatalogService) ListPublic(ctx context.Context, input ListPublicInput) ([]models.Product, int64, error) {
	categoryID := strings.TrimSpace(input.CategoryID)
	if slug := strings.TrimSpace(input.CategorySlug); slug != "" && categoryID == "" {
		category, err := s.findCategoryBySlug(ctx, slug)
		if err != nil {
			return nil, 0, err
		}
		if category == nil {
			return []models.Product{}, 0, nil
		}
		categoryID = formatCategoryID(category.ID)
	}

	filter := repository.ProductListFilter{
		Page:         input.Page,
		PageSize:     input.PageSize,
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(input.Search),
		MinPrice:     input.MinPrice,
		MaxPrice:     input.MaxPrice,
		OnlyActive:   true,
		WithCategory: true,
	}
	return s.productRepo.List(filter)
}

// GetPublicBySlug 获取公开车型详情
func (s *CatalogService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListCategories 获取分类列表（带短缓存的读模型）
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, cacheErr := cache.GetJSON(ctx, categoryListCacheKey, &cached)
	if cacheErr == nil && hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, categoryListCacheKey, categories, categoryListCacheTTL)
	return categories, nil
}

func (s *CatalogService) findCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i], nil
		}
	}
	return nil, nil
}

func formatCategoryID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
