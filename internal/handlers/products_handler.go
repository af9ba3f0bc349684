package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vms-admin/internal/documents"
	"vms-admin/internal/models"
	"vms-admin/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductsHandler serves the products page and its edit views
type ProductsHandler struct {
	catalog *store.CatalogStore
	views   *store.SizeViews
	logger  *logrus.Entry
}

// NewProductsHandler creates a new products handler
func NewProductsHandler(catalog *store.CatalogStore, views *store.SizeViews, logger *logrus.Entry) *ProductsHandler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ProductsHandler{
		catalog: catalog,
		views:   views,
		logger:  logger.WithField("component", "products_handler"),
	}
}

// CatalogPage is the body of the products page
type CatalogPage struct {
	Categories map[models.Category][]models.Product `json:"categories"`
	Summary    models.CatalogSummary                `json:"summary"`
}

func (h *ProductsHandler) catalogPage() CatalogPage {
	page := CatalogPage{
		Categories: make(map[models.Category][]models.Product, len(models.AllCategories)),
		Summary:    h.catalog.Summary(),
	}
	for _, c := range models.AllCategories {
		page.Categories[c] = h.catalog.Cards(c)
	}
	return page
}

func categoryParam(c *gin.Context) (models.Category, bool) {
	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		badRequest(c, err.Error())
		return "", false
	}
	return category, true
}

func productKeyParam(c *gin.Context) (models.ProductKey, bool) {
	category, ok := categoryParam(c)
	if !ok {
		return models.ProductKey{}, false
	}
	name := c.Param("name")
	if name == "" {
		badRequest(c, "product name is required")
		return models.ProductKey{}, false
	}
	return models.ProductKey{Name: name, Category: category}, true
}

// ListProducts returns the cards of every category with the count boxes
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	success(c, http.StatusOK, h.catalogPage())
}

// ListCategory returns the cards of one category
// @Summary List one category
// @Tags products
// @Produce json
// @Param category path string true "men, women, girls or boys"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products/{category} [get]
func (h *ProductsHandler) ListCategory(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, h.catalog.Cards(category))
}

// RefreshCategory reloads one category from the backend. A failed reload
// keeps the previous list.
// @Summary Refresh one category
// @Tags products
// @Produce json
// @Param category path string true "men, women, girls or boys"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{category}/refresh [post]
func (h *ProductsHandler) RefreshCategory(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	if _, err := h.catalog.FetchCategory(c.Request.Context(), category); err != nil {
		respondError(c, err, "Failed to fetch products")
		return
	}
	success(c, http.StatusOK, h.catalog.Cards(category))
}

// CreateProduct adds a product from the add product form
// @Summary Add a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductForm true "Add product form"
// @Success 201 {object} models.SuccessResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var form models.CreateProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindFailed(c, err)
		return
	}

	product, err := h.catalog.AddProduct(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "Failed to add product")
		return
	}

	successMessage(c, http.StatusCreated, product, "Product added successfully")
}

// UpdateDescription edits the description of a product
// @Summary Edit a product description
// @Tags products
// @Accept json
// @Produce json
// @Param category path string true "Category"
// @Param name path string true "Product name"
// @Param body body models.UpdateDescriptionForm true "New description"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{category}/{name}/description [patch]
func (h *ProductsHandler) UpdateDescription(c *gin.Context) {
	key, ok := productKeyParam(c)
	if !ok {
		return
	}

	var form models.UpdateDescriptionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindFailed(c, err)
		return
	}

	product, err := h.catalog.EditDescription(c.Request.Context(), key, form.ProductDescription)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}

	// the description is part of the size lookup keys
	h.views.Close(key)

	successMessage(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct soft deletes a product
// @Summary Soft delete a product
// @Tags products
// @Produce json
// @Param category path string true "Category"
// @Param name path string true "Product name"
// @Success 200 {object} models.SuccessResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/{category}/{name} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	key, ok := productKeyParam(c)
	if !ok {
		return
	}

	if err := h.catalog.SoftDelete(c.Request.Context(), key); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	h.views.Close(key)

	successMessage(c, http.StatusOK, h.catalog.Cards(key.Category), "Product deleted successfully")
}

// ExportProducts downloads the product cards as xlsx or csv
// @Summary Export the catalog
// @Tags products
// @Produce application/octet-stream
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} file
// @Router /products/export [get]
func (h *ProductsHandler) ExportProducts(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	var cards []models.Product
	for _, category := range models.AllCategories {
		cards = append(cards, h.catalog.Cards(category)...)
	}

	stamp := time.Now().Format("20060102")
	var buf bytes.Buffer
	switch format {
	case "csv":
		if err := documents.WriteCatalogCSV(&buf, cards); err != nil {
			h.logger.WithError(err).Error("Failed to export catalog")
			respondError(c, err, "Failed to export products")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"products-%s.csv\"", stamp))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		if err := documents.WriteCatalogXLSX(&buf, cards, h.catalog.Summary()); err != nil {
			h.logger.WithError(err).Error("Failed to export catalog")
			respondError(c, err, "Failed to export products")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"products-%s.xlsx\"", stamp))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		badRequest(c, "format must be xlsx or csv")
	}
}

// ===========================================
// Product edit view
// ===========================================

func (h *ProductsHandler) openView(c *gin.Context) (*store.SizeView, bool) {
	key, ok := productKeyParam(c)
	if !ok {
		return nil, false
	}
	view, ok := h.views.Get(key)
	if !ok {
		respondError(c, fmt.Errorf("%w: no open view for %s", store.ErrProductNotFound, key), "")
		return nil, false
	}
	return view, true
}

// OpenSizes opens the edit view of a product and loads its sizes and variants
// @Summary Open a product view
// @Tags sizes
// @Produce json
// @Param category path string true "Category"
// @Param name path string true "Product name"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 410 {object} models.ErrorResponse
// @Router /products/{category}/{name}/sizes [get]
func (h *ProductsHandler) OpenSizes(c *gin.Context) {
	key, ok := productKeyParam(c)
	if !ok {
		return
	}
	product, found := h.catalog.Find(key)
	if !found {
		respondError(c, store.ErrProductNotFound, "")
		return
	}

	view, err := h.views.Open(c.Request.Context(), product)
	if err != nil {
		respondError(c, err, "Failed to fetch product size")
		return
	}
	success(c, http.StatusOK, view.Snapshot())
}

// CloseView dismisses the edit view of a product
// @Summary Dismiss a product view
// @Tags sizes
// @Param category path string true "Category"
// @Param name path string true "Product name"
// @Success 204
// @Router /products/{category}/{name}/view [delete]
func (h *ProductsHandler) CloseView(c *gin.Context) {
	key, ok := productKeyParam(c)
	if !ok {
		return
	}
	if !h.views.Close(key) {
		respondError(c, fmt.Errorf("%w: no open view for %s", store.ErrProductNotFound, key), "")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddSize adds a size to the product of an open view
// @Summary Add a size
// @Tags sizes
// @Accept json
// @Produce json
// @Param body body models.AddSizeForm true "Add size form"
// @Success 201 {object} models.SuccessResponse
// @Router /products/{category}/{name}/sizes [post]
func (h *ProductsHandler) AddSize(c *gin.Context) {
	view, ok := h.openView(c)
	if !ok {
		return
	}

	var form models.AddSizeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindFailed(c, err)
		return
	}

	if _, err := view.AddSize(c.Request.Context(), form); err != nil {
		respondError(c, err, "Failed to add size")
		return
	}
	successMessage(c, http.StatusCreated, view.Snapshot(), "Size added successfully")
}

// EditSize renames a size
// @Summary Rename a size
// @Tags sizes
// @Accept json
// @Produce json
// @Param size path string true "Current size"
// @Param body body models.EditSizeForm true "New size"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{category}/{name}/sizes/{size} [put]
func (h *ProductsHandler) EditSize(c *gin.Context) {
	view, ok := h.openView(c)
	if !ok {
		return
	}

	var form models.EditSizeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindFailed(c, err)
		return
	}

	if _, err := view.EditSize(c.Request.Context(), c.Param("size"), form); err != nil {
		respondError(c, err, "Failed to update size")
		return
	}
	successMessage(c, http.StatusOK, view.Snapshot(), "Size updated successfully")
}

// DeleteSize soft deletes a size
// @Summary Delete a size
// @Tags sizes
// @Produce json
// @Param size path string true "Size"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{category}/{name}/sizes/{size} [delete]
func (h *ProductsHandler) DeleteSize(c *gin.Context) {
	view, ok := h.openView(c)
	if !ok {
		return
	}

	if err := view.DeleteSize(c.Request.Context(), c.Param("size")); err != nil {
		respondError(c, err, "Failed to delete size")
		return
	}
	successMessage(c, http.StatusOK, view.Snapshot(), "Size deleted successfully")
}

// SelectSize marks a size as selected
// @Summary Select a size
// @Tags sizes
// @Produce json
// @Param size path string true "Size"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{category}/{name}/sizes/{size}/select [post]
func (h *ProductsHandler) SelectSize(c *gin.Context) {
	view, ok := h.openView(c)
	if !ok {
		return
	}

	if _, err := view.Select(c.Param("size")); err != nil {
		respondError(c, err, "")
		return
	}
	success(c, http.StatusOK, view.Snapshot())
}
