package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hackhub/internal/models"
	"hackhub/internal/store"
)

const productoColumns = `id, nombre, descripcion, precio, stock`

func scanProducto(row pgx.Row) (*models.Producto, error) {
	var p models.Producto
	err := row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProductos(rows pgx.Rows) ([]models.Producto, error) {
	defer rows.Close()

	productos := []models.Producto{}
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, err
		}
		productos = append(productos, *p)
	}

	return productos, rows.Err()
}

// ListProductos returns every product ordered by ID.
func (d *DB) ListProductos(ctx context.Context) ([]models.Producto, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+productoColumns+` FROM productos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanProductos(rows)
}

// GetProducto retrieves a product by ID.
func (d *DB) GetProducto(ctx context.Context, id int64) (*models.Producto, error) {
	return scanProducto(d.Pool.QueryRow(ctx,
		`SELECT `+productoColumns+` FROM productos WHERE id = $1`, id))
}

// CreateProducto inserts a product and sets its generated ID and stored price.
func (d *DB) CreateProducto(ctx context.Context, p *models.Producto) error {
	query := `
		INSERT INTO productos (nombre, descripcion, precio, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, precio
	`
	return d.Pool.QueryRow(ctx, query, p.Nombre, p.Descripcion, p.Precio, p.Stock).Scan(&p.ID, &p.Precio)
}

// UpdateProducto overwrites the editable fields of an existing product.
func (d *DB) UpdateProducto(ctx context.Context, p *models.Producto) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, precio = $4, stock = $5
		WHERE id = $1
	`
	tag, err := d.Pool.Exec(ctx, query, p.ID, p.Nombre, p.Descripcion, p.Precio, p.Stock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteProducto removes a product.
func (d *DB) DeleteProducto(ctx context.Context, id int64) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SearchProductos returns products whose name contains nombre, ignoring case.
func (d *DB) SearchProductos(ctx context.Context, nombre string) ([]models.Producto, error) {
	query := `
		SELECT ` + productoColumns + ` FROM productos
		WHERE nombre ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	rows, err := d.Pool.Query(ctx, query, escapeLike(nombre))
	if err != nil {
		return nil, err
	}
	return scanProductos(rows)
}
