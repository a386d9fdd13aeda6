package models

import "math"

// Producto is a catalog product. Precio is held to cents and bounded by the
// NUMERIC(12,2) column that stores it.
type Producto struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre" validate:"notblank,max=100"`
	Descripcion string  `json:"descripcion" validate:"max=500"`
	Precio      float64 `json:"precio" validate:"gt=0,lte=9999999999.99"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// Normalize rounds Precio to cents, matching what every backend stores.
func (p *Producto) Normalize() {
	p.Precio = math.Round(p.Precio*100) / 100
}

// Apply copies the editable fields from other.
func (p *Producto) Apply(other *Producto) {
	p.Nombre = other.Nombre
	p.Descripcion = other.Descripcion
	p.Precio = other.Precio
	p.Stock = other.Stock
}
