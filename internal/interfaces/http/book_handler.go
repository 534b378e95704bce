package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/usecase"
)

// BookHandler maneja el catálogo de libros (protegido).
type BookHandler struct {
	uc *usecase.BookUseCase
}

// NewBookHandler construye el handler.
func NewBookHandler(uc *usecase.BookUseCase) *BookHandler {
	return &BookHandler{uc: uc}
}

// Create godoc
// @Summary      Crear libro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookRequest  true  "Datos del libro"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener libro por ID
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {object}  dto.BookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar o filtrar libros
// @Description  Filtros por subcadena sin distinguir mayúsculas, combinados con AND.
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        isbn       query  string  false  "ISBN"
// @Param        title      query  string  false  "Título"
// @Param        author     query  string  false  "Autor"
// @Param        publisher  query  string  false  "Editorial"
// @Success      200  {array}  dto.BookResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	var in dto.BookSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest("INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// QuickSearch godoc
// @Summary      Búsqueda rápida
// @Description  Un término contra ISBN, título, autor o editorial (OR).
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Término"
// @Success      200  {array}  dto.BookResponse
// @Router       /api/books/search [get]
func (h *BookHandler) QuickSearch(c *fiber.Ctx) error {
	out, err := h.uc.QuickSearch(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar libro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del libro"
// @Param        body  body  dto.UpdateBookRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateBookRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar libro (super admin)
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Libro eliminado"})
}
