package badger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hackhub/internal/models"
	"hackhub/internal/store"
)

// ListProductos returns every product ordered by ID.
func (s *Store) ListProductos(_ context.Context) ([]models.Producto, error) {
	return s.findProductos(func(*models.Producto) bool { return true })
}

// GetProducto retrieves a product by ID.
func (s *Store) GetProducto(_ context.Context, id int64) (*models.Producto, error) {
	var p models.Producto
	if err := s.store.Get(id, &p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// CreateProducto inserts a product with the next sequence ID.
func (s *Store) CreateProducto(_ context.Context, p *models.Producto) error {
	next, err := s.productos.Next()
	if err != nil {
		return fmt.Errorf("failed to allocate producto id: %w", err)
	}
	// Badger sequences start at zero; IDs start at one.
	p.ID = int64(next) + 1
	return s.store.Insert(p.ID, p)
}

// UpdateProducto overwrites an existing product.
func (s *Store) UpdateProducto(_ context.Context, p *models.Producto) error {
	return mapErr(s.store.Update(p.ID, p))
}

// DeleteProducto removes a product.
func (s *Store) DeleteProducto(_ context.Context, id int64) error {
	return mapErr(s.store.Delete(id, &models.Producto{}))
}

// SearchProductos returns products whose name contains nombre, ignoring case.
func (s *Store) SearchProductos(_ context.Context, nombre string) ([]models.Producto, error) {
	needle := strings.ToLower(nombre)
	return s.findProductos(func(p *models.Producto) bool {
		return strings.Contains(strings.ToLower(p.Nombre), needle)
	})
}

// CountProductos counts catalog products.
func (s *Store) CountProductos(_ context.Context) ([]store.RecordCount, error) {
	n, err := s.store.Count(&models.Producto{}, nil)
	if err != nil {
		return nil, err
	}
	return []store.RecordCount{{Collection: store.CollectionProductos, State: store.State(false), Count: int64(n)}}, nil
}

func (s *Store) findProductos(keep func(*models.Producto) bool) ([]models.Producto, error) {
	var all []models.Producto
	if err := s.store.Find(&all, nil); err != nil {
		return nil, err
	}

	productos := []models.Producto{}
	for i := range all {
		if keep(&all[i]) {
			productos = append(productos, all[i])
		}
	}
	sort.Slice(productos, func(i, j int) bool { return productos[i].ID < productos[j].ID })
	return productos, nil
}

var (
	_ store.JobSearchResults   = (*Store)(nil)
	_ store.LanguageDetections = (*Store)(nil)
	_ store.Productos          = (*Store)(nil)
)
