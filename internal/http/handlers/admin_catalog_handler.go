package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"bookbound/internal/api"
	"bookbound/internal/domain"
	applog "bookbound/internal/log"
	"bookbound/internal/validate"
)

// CatalogHandler covers book and supplier maintenance in the console.
type CatalogHandler struct {
	API *api.Client
}

// GET /admin/books
func (h *CatalogHandler) Books(c *fiber.Ctx) error {
	books, err := h.API.AdminBooks(c.Context())
	if err != nil {
		applog.Error(c, "admin.books.list", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load books")
	}
	return render(c, "admin_books", fiber.Map{"Books": books})
}

// GET /admin/books/:id
func (h *CatalogHandler) BookDetail(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Book not found")
	}
	authors, err := h.API.AdminBookAuthors(c.Context(), bookID)
	if err != nil {
		applog.Error(c, "admin.books.authors", err, map[string]any{"book_id": bookID})
		return fail(c, fiber.StatusBadGateway, "Could not load authors")
	}
	keywords, err := h.API.AdminBookKeywords(c.Context(), bookID)
	if err != nil {
		applog.Error(c, "admin.books.keywords", err, map[string]any{"book_id": bookID})
		return fail(c, fiber.StatusBadGateway, "Could not load keywords")
	}
	return render(c, "admin_book_detail", fiber.Map{
		"BookID":   bookID,
		"Authors":  authors,
		"Keywords": keywords,
	})
}

// POST /admin/books
func (h *CatalogHandler) SaveBook(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid book id")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return fail(c, fiber.StatusBadRequest, "Title is required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil || price.IsNegative() {
		return fail(c, fiber.StatusBadRequest, "Price must be zero or more")
	}
	book := domain.Book{
		BookID:    bookID,
		Title:     title,
		Publisher: strings.TrimSpace(c.FormValue("publisher")),
		Price:     price,
		Catalog:   strings.TrimSpace(c.FormValue("catalog")),
	}
	update := c.FormValue("mode") == "update"
	if err := h.API.AdminSaveBook(c.Context(), book, update); err != nil {
		applog.Error(c, "admin.books.save", err, map[string]any{"book_id": bookID})
		return fail(c, fiber.StatusBadGateway, "Could not save the book: "+err.Error())
	}
	applog.Audit(c, "admin.books.save", map[string]any{"book_id": bookID, "update": update})
	return c.Redirect("/admin/books")
}

// GET /admin/suppliers
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	suppliers, err := h.API.AdminSuppliers(c.Context())
	if err != nil {
		applog.Error(c, "admin.suppliers.list", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load suppliers")
	}
	return render(c, "admin_suppliers", fiber.Map{"Suppliers": suppliers})
}

// GET /admin/suppliers/:id/supplies
func (h *CatalogHandler) Supplies(c *fiber.Ctx) error {
	sid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Supplier not found")
	}
	supplies, err := h.API.AdminSupplierSupplies(c.Context(), sid)
	if err != nil {
		applog.Error(c, "admin.suppliers.supplies", err, map[string]any{"supplier_id": sid})
		return fail(c, fiber.StatusBadGateway, "Could not load supply offers")
	}
	return render(c, "admin_supplies", fiber.Map{"SupplierID": sid, "Supplies": supplies})
}

// POST /admin/suppliers
func (h *CatalogHandler) SaveSupplier(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return fail(c, fiber.StatusBadRequest, "Supplier name is required")
	}
	var supplierID int64
	if v := c.FormValue("supplierId"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return fail(c, fiber.StatusBadRequest, "Invalid supplier id")
		}
		supplierID = id
	}
	s := domain.Supplier{
		SupplierID:    supplierID,
		Name:          name,
		ContactPerson: strings.TrimSpace(c.FormValue("contactPerson")),
		Phone:         strings.TrimSpace(c.FormValue("phone")),
		Email:         strings.TrimSpace(c.FormValue("email")),
		Address:       strings.TrimSpace(c.FormValue("address")),
	}
	if err := h.API.AdminSaveSupplier(c.Context(), s); err != nil {
		applog.Error(c, "admin.suppliers.save", err, map[string]any{"name": name})
		return fail(c, fiber.StatusBadGateway, "Could not save the supplier: "+err.Error())
	}
	applog.Audit(c, "admin.suppliers.save", map[string]any{"name": name})
	return c.Redirect("/admin/suppliers")
}

// POST /admin/suppliers/:id/delete
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	sid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Supplier not found")
	}
	if err := h.API.AdminDeleteSupplier(c.Context(), sid); err != nil {
		applog.Error(c, "admin.suppliers.delete", err, map[string]any{"supplier_id": sid})
		return fail(c, fiber.StatusBadGateway, "Could not delete the supplier: "+err.Error())
	}
	applog.Audit(c, "admin.suppliers.delete", map[string]any{"supplier_id": sid})
	return c.Redirect("/admin/suppliers")
}

// POST /admin/suppliers/:id/supplies
func (h *CatalogHandler) SaveSupply(c *fiber.Ctx) error {
	sid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Supplier not found")
	}
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid book id")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("supplyPrice")))
	if err != nil || price.IsNegative() {
		return fail(c, fiber.StatusBadRequest, "Supply price must be zero or more")
	}
	supply := domain.Supply{SupplierID: sid, BookID: bookID, SupplyPrice: price}
	if err := h.API.AdminSaveSupply(c.Context(), supply); err != nil {
		applog.Error(c, "admin.suppliers.supply.save", err, map[string]any{"supplier_id": sid, "book_id": bookID})
		return fail(c, fiber.StatusBadGateway, "Could not save the supply offer: "+err.Error())
	}
	applog.Audit(c, "admin.suppliers.supply.save", map[string]any{"supplier_id": sid, "book_id": bookID})
	return c.Redirect("/admin/suppliers/" + c.Params("id") + "/supplies")
}
