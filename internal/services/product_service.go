package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(product *models.Product) (*models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, int, error)
	UpdateProduct(product *models.Product) (*models.Product, error)
	DeleteProduct(id int64) error
	GetStockRows(filters models.ProductFilters) ([]models.StockRow, int, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	db          *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(pr repositories.ProductRepository, db *sql.DB) ProductService {
	return &productService{productRepo: pr, db: db}
}

func validateProduct(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: product name cannot be empty", ErrValidation)
	}
	if product.UnitPrice != nil && product.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price cannot be negative", ErrValidation)
	}
	if product.CurrentQty != nil && *product.CurrentQty < 0 {
		return fmt.Errorf("%w: current quantity cannot be negative", ErrValidation)
	}
	if product.MinQty != nil && *product.MinQty < 0 {
		return fmt.Errorf("%w: minimum quantity cannot be negative", ErrValidation)
	}
	return nil
}

func (s *productService) CreateProduct(product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(product.Name)

	_, err := s.productRepo.CreateProduct(s.db, product)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: a product with this SKU already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.productRepo.GetProductByID(product.ID)
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

func (s *productService) GetProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	products, totalCount, err := s.productRepo.GetProducts(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, totalCount, nil
}

func (s *productService) UpdateProduct(product *models.Product) (*models.Product, error) {
	if product.ID <= 0 {
		return nil, fmt.Errorf("%w: invalid product ID", ErrValidation)
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(product.Name)

	err := s.productRepo.UpdateProduct(s.db, product)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: a product with this SKU already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return s.productRepo.GetProductByID(product.ID)
}

func (s *productService) DeleteProduct(id int64) error {
	err := s.productRepo.DeleteProduct(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// GetStockRows returns the product page annotated with extended stock values.
// A missing price or quantity yields a zero value for that row; the row is
// still listed so gaps stay visible.
func (s *productService) GetStockRows(filters models.ProductFilters) ([]models.StockRow, int, error) {
	products, totalCount, err := s.GetProducts(filters)
	if err != nil {
		return nil, 0, err
	}
	rows := make([]models.StockRow, 0, len(products))
	for _, product := range products {
		row := models.StockRow{Product: product, StockValue: decimal.Zero}
		if product.UnitPrice != nil && product.CurrentQty != nil {
			row.StockValue = product.UnitPrice.Mul(decimal.NewFromInt(int64(*product.CurrentQty)))
		}
		rows = append(rows, row)
	}
	return rows, totalCount, nil
}
