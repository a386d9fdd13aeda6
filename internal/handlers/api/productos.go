package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"hackhub/internal/catalog"
	"hackhub/internal/models"
	"hackhub/internal/store"
	"hackhub/internal/validation"
)

// ProductoHandler handles catalog product CRUD.
type ProductoHandler struct {
	catalog *catalog.Service
}

// NewProductoHandler creates a new product handler.
func NewProductoHandler(svc *catalog.Service) *ProductoHandler {
	return &ProductoHandler{catalog: svc}
}

func parseProducto(c fiber.Ctx) (*models.Producto, error) {
	var p models.Producto
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		return nil, errors.New("invalid request body")
	}
	p.Normalize()
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every product.
func (h *ProductoHandler) List(c fiber.Ctx) error {
	productos, err := h.catalog.List(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch productos")
	}
	return jsonOK(c, productos)
}

// Search returns products whose name contains the nombre query parameter.
func (h *ProductoHandler) Search(c fiber.Ctx) error {
	if !c.Request().URI().QueryArgs().Has("nombre") {
		return jsonError(c, fiber.StatusBadRequest, "nombre is required")
	}
	nombre := c.Query("nombre")

	productos, err := h.catalog.Search(c.Context(), nombre)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to search productos")
	}
	return jsonOK(c, productos)
}

// Get returns one product.
func (h *ProductoHandler) Get(c fiber.Ctx) error {
	id, err := paramInt64(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid producto id")
	}

	p, err := h.catalog.Get(c.Context(), id)
	if err != nil {
		return productoError(c, id, err)
	}
	return jsonOK(c, p)
}

// Create stores a new product.
func (h *ProductoHandler) Create(c fiber.Ctx) error {
	body, err := parseProducto(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := h.catalog.Create(c.Context(), body)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create producto")
	}
	return jsonCreated(c, p)
}

// Update replaces a product's fields.
func (h *ProductoHandler) Update(c fiber.Ctx) error {
	id, err := paramInt64(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid producto id")
	}
	body, err := parseProducto(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := h.catalog.Update(c.Context(), id, body)
	if err != nil {
		return productoError(c, id, err)
	}
	return jsonOK(c, p)
}

// Delete removes a product.
func (h *ProductoHandler) Delete(c fiber.Ctx) error {
	id, err := paramInt64(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid producto id")
	}

	if err := h.catalog.Delete(c.Context(), id); err != nil {
		return productoError(c, id, err)
	}
	return noContent(c)
}

func productoError(c fiber.Ctx, id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Producto not found with id: "+strconv.FormatInt(id, 10))
	}
	return jsonError(c, fiber.StatusInternalServerError, "an unexpected error occurred: "+err.Error())
}
