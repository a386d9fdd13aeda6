// Package catalog manages catalog products.
package catalog

import (
	"context"
	"log/slog"

	"hackhub/internal/models"
	"hackhub/internal/store"
)

// Service implements product CRUD over a Productos store.
type Service struct {
	productos store.Productos
}

// NewService creates a catalog service.
func NewService(productos store.Productos) *Service {
	return &Service{productos: productos}
}

// List returns every product.
func (s *Service) List(ctx context.Context) ([]models.Producto, error) {
	productos, err := s.productos.ListProductos(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("listed productos", "count", len(productos))
	return productos, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id int64) (*models.Producto, error) {
	p, err := s.productos.GetProducto(ctx, id)
	if err != nil {
		slog.Warn("producto not found", "id", id)
		return nil, err
	}
	return p, nil
}

// Create stores a new product. Any client-supplied ID is ignored.
func (s *Service) Create(ctx context.Context, p *models.Producto) (*models.Producto, error) {
	p.ID = 0
	p.Normalize()
	if err := s.productos.CreateProducto(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("producto created", "id", p.ID, "nombre", p.Nombre)
	return p, nil
}

// Update replaces the editable fields of an existing product.
func (s *Service) Update(ctx context.Context, id int64, details *models.Producto) (*models.Producto, error) {
	p, err := s.productos.GetProducto(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Apply(details)
	p.Normalize()
	if err := s.productos.UpdateProducto(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("producto updated", "id", p.ID, "nombre", p.Nombre)
	return p, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.productos.DeleteProducto(ctx, id); err != nil {
		return err
	}
	slog.Info("producto deleted", "id", id)
	return nil
}

// Search returns products whose name contains nombre, ignoring case.
func (s *Service) Search(ctx context.Context, nombre string) ([]models.Producto, error) {
	productos, err := s.productos.SearchProductos(ctx, nombre)
	if err != nil {
		return nil, err
	}
	slog.Info("searched productos", "nombre", nombre, "count", len(productos))
	return productos, nil
}
