package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"estoque_backend/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, int, error) // Returns products, total count, error
	GetAllProducts() ([]models.Product, error)                                // Full snapshot for the pure calculators
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	DeleteProduct(executor SQLExecutor, id int64) error
	IncrementStock(executor SQLExecutor, productID int64, delta int) (int, error) // Returns new stock level
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, reference, sku, barcode, brand, category_group, supplier,
	          description, unit_price, current_qty, min_qty, location, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *models.Product) error {
	var price decimal.NullDecimal
	var currentQty, minQty sql.NullInt64
	err := row.Scan(
		&p.ID, &p.Name, &p.Reference, &p.SKU, &p.Barcode, &p.Brand, &p.CategoryGroup,
		&p.Supplier, &p.Description, &price, &currentQty, &minQty, &p.Location,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if price.Valid {
		p.UnitPrice = &price.Decimal
	}
	if currentQty.Valid {
		qty := int(currentQty.Int64)
		p.CurrentQty = &qty
	}
	if minQty.Valid {
		qty := int(minQty.Int64)
		p.MinQty = &qty
	}
	return nil
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products
	          (name, reference, sku, barcode, brand, category_group, supplier, description,
	           unit_price, current_qty, min_qty, location, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		product.Name, product.Reference, product.SKU, product.Barcode, product.Brand,
		product.CategoryGroup, product.Supplier, product.Description,
		nullDecimal(product.UnitPrice), nullInt(product.CurrentQty), nullInt(product.MinQty),
		product.Location, currentTime, currentTime,
	).Scan(&product.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: product '%s' (constraint: %s)", ErrDuplicateKey, product.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetProductByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := scanProduct(r.db.QueryRow(query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) GetProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	products := []models.Product{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + productColumns + `, COUNT(*) OVER() AS total_count FROM products`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR reference ILIKE $%d OR sku ILIKE $%d OR barcode ILIKE $%d)",
			argCount, argCount, argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}
	if filters.Supplier != nil && *filters.Supplier != "" {
		conditions = append(conditions, fmt.Sprintf("supplier = $%d", argCount))
		args = append(args, *filters.Supplier)
		argCount++
	}
	if filters.CategoryGroup != nil && *filters.CategoryGroup != "" {
		conditions = append(conditions, fmt.Sprintf("category_group = $%d", argCount))
		args = append(args, *filters.CategoryGroup)
		argCount++
	}
	if filters.Brand != nil && *filters.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("brand = $%d", argCount))
		args = append(args, *filters.Brand)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var product models.Product
		var price decimal.NullDecimal
		var currentQty, minQty sql.NullInt64
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Reference, &product.SKU, &product.Barcode,
			&product.Brand, &product.CategoryGroup, &product.Supplier, &product.Description,
			&price, &currentQty, &minQty, &product.Location,
			&product.CreatedAt, &product.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		if price.Valid {
			product.UnitPrice = &price.Decimal
		}
		if currentQty.Valid {
			qty := int(currentQty.Int64)
			product.CurrentQty = &qty
		}
		if minQty.Valid {
			qty := int(minQty.Int64)
			product.MinQty = &qty
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating products: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

// GetAllProducts loads the full product set in stable id order. The pure
// calculators operate on this snapshot.
func (r *productRepository) GetAllProducts() ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: loading product snapshot: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("%w: scanning product snapshot: %v", ErrDatabaseError, err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product snapshot: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET
	          name = $1, reference = $2, sku = $3, barcode = $4, brand = $5,
	          category_group = $6, supplier = $7, description = $8, unit_price = $9,
	          current_qty = $10, min_qty = $11, location = $12, updated_at = $13
	          WHERE id = $14`
	result, err := executor.Exec(query,
		product.Name, product.Reference, product.SKU, product.Barcode, product.Brand,
		product.CategoryGroup, product.Supplier, product.Description,
		nullDecimal(product.UnitPrice), nullInt(product.CurrentQty), nullInt(product.MinQty),
		product.Location, time.Now(), product.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: product '%s' (constraint: %s)", ErrDuplicateKey, product.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	// Quote lines keep a historical price snapshot, so a referenced product
	// cannot be removed.
	var count int
	checkQuery := "SELECT COUNT(*) FROM quote_lines WHERE product_id = $1"
	if err := executor.QueryRow(checkQuery, id).Scan(&count); err != nil {
		return fmt.Errorf("%w: checking if product %d is referenced: %v", ErrDatabaseError, id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: product ID %d cannot be deleted as it is referenced by %d quote line(s)", ErrDatabaseError, id, count)
	}

	result, err := executor.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementStock adds delta to a product's current quantity and returns the
// new level. NULL stock counts as zero here because a confirmed receipt is
// authoritative data entry.
func (r *productRepository) IncrementStock(executor SQLExecutor, productID int64, delta int) (int, error) {
	var newStock int
	query := `UPDATE products
	          SET current_qty = COALESCE(current_qty, 0) + $1, updated_at = $2
	          WHERE id = $3
	          RETURNING current_qty`
	err := executor.QueryRow(query, delta, time.Now(), productID).Scan(&newStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: updating stock for product %d: %v", ErrDatabaseError, productID, err)
	}
	return newStock, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
