package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/emma-ortiz/OlivosVerdes-3/models"
)

// ErrNotFound is returned when no product (or category) matches the query.
var ErrNotFound = errors.New("catalog: not found")

// Service is the read-only product catalog. Carts reference products by
// the string form of their numeric id, so lookups accept strings.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	pid, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	var product models.Product
	err = s.db.WithContext(ctx).
		Preload("Promotion").
		Preload("Category").
		First(&product, uint(pid)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	return &product, nil
}

func (s *Service) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Promotion").
		Preload("Category").
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Service) ListByCategory(ctx context.Context, name string) ([]models.Product, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch category %q: %w", name, err)
	}

	var products []models.Product
	err = s.db.WithContext(ctx).
		Preload("Promotion").
		Where("category_id = ?", category.ID).
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list category %q: %w", name, err)
	}
	return products, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListPromoted returns the products whose promotion window covers today.
func (s *Service) ListPromoted(ctx context.Context, today time.Time) ([]models.Product, error) {
	day := today.Format("2006-01-02")

	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Promotion").
		Joins("JOIN promotions ON promotions.product_id = products.id").
		Where("promotions.start_date <= ? AND promotions.end_date >= ?", day, day).
		Order("products.name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list promoted products: %w", err)
	}
	return products, nil
}

// Featured returns the n most recently added products, for the home page.
func (s *Service) Featured(ctx context.Context, n int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Promotion").
		Order("id DESC").
		Limit(n).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return products, nil
}
