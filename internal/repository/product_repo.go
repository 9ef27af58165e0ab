package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Cheertaboi/cart-service/internal/catalog"
	"github.com/Cheertaboi/cart-service/internal/models"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, price
		FROM products
		WHERE price >= 0
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// LoadCatalog reads the product table once and freezes it into a catalog that
// keeps the built-in free gift.
func (r *ProductRepo) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("products table is empty")
	}
	return catalog.New(products, catalog.Default().Gift()), nil
}
