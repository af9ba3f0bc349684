package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"vms-admin/internal/models"
)

// CatalogClient defines the interface for the backend product endpoints
type CatalogClient interface {
	ListCategory(ctx context.Context, category models.Category) ([]models.RawProduct, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.MessageResponse, error)
	UpdateDetails(ctx context.Context, req models.UpdateDetailsRequest) (*models.MessageResponse, error)
	SoftDeleteProduct(ctx context.Context, productName, category string) (*models.MessageResponse, error)
	ListSizes(ctx context.Context, id models.ProductIdentity) ([]models.SizeStock, error)
	ListSizeVariants(ctx context.Context, id models.ProductIdentity) ([]models.SizeVariant, error)
	AddSize(ctx context.Context, req models.AddSizeRequest) (*models.MessageResponse, error)
	UpdateSize(ctx context.Context, req models.UpdateSizeRequest) (*models.MessageResponse, error)
	SoftDeleteSize(ctx context.Context, id models.ProductIdentity, size string) (*models.MessageResponse, error)
}

type catalogClient struct {
	backend *BackendClient
}

// NewCatalogClient creates a new catalog client on top of the backend adapter
func NewCatalogClient(backend *BackendClient) CatalogClient {
	return &catalogClient{backend: backend}
}

// ListCategory fetches every active product row of one category
func (c *catalogClient) ListCategory(ctx context.Context, category models.Category) ([]models.RawProduct, error) {
	path := fmt.Sprintf("/products/products/%s-Leather-Shoes", category.PathSegment())

	var products []models.RawProduct
	if err := c.backend.Do(ctx, http.MethodGet, path, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a product with its first size. A duplicate is reported in the message of a 200 body.
func (c *catalogClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.backend.Do(ctx, http.MethodPost, "/products/products", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateDetails rewrites name, description, category, price and image of a product
func (c *catalogClient) UpdateDetails(ctx context.Context, req models.UpdateDetailsRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.backend.Do(ctx, http.MethodPut, "/products/products/update-details", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SoftDeleteProduct deactivates every size of a product
func (c *catalogClient) SoftDeleteProduct(ctx context.Context, productName, category string) (*models.MessageResponse, error) {
	query := url.Values{}
	query.Set("productName", productName)
	query.Set("category", category)

	var resp models.MessageResponse
	if err := c.backend.Do(ctx, http.MethodPatch, "/products/products/soft-delete", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSizes fetches the in-stock sizes of a product
func (c *catalogClient) ListSizes(ctx context.Context, id models.ProductIdentity) ([]models.SizeStock, error) {
	var envelope struct {
		Size json.RawMessage `json:"size"`
	}
	if err := c.backend.Do(ctx, http.MethodGet, "/products/products/sizes", identityQuery(id, true), nil, &envelope); err != nil {
		return nil, err
	}

	var sizes []models.SizeStock
	if len(envelope.Size) == 0 || json.Unmarshal(envelope.Size, &sizes) != nil || sizes == nil {
		return nil, fmt.Errorf("%w: size field is not a list", ErrUnexpectedShape)
	}
	return sizes, nil
}

// ListSizeVariants fetches the barcode and product code of every unit
func (c *catalogClient) ListSizeVariants(ctx context.Context, id models.ProductIdentity) ([]models.SizeVariant, error) {
	var variants []models.SizeVariant
	if err := c.backend.Do(ctx, http.MethodGet, "/products/products/size_variants", identityQuery(id, true), nil, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// AddSize adds a new size row with its stock
func (c *catalogClient) AddSize(ctx context.Context, req models.AddSizeRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.backend.Do(ctx, http.MethodPost, "/products/products_AddSize", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSize renames a size
func (c *catalogClient) UpdateSize(ctx context.Context, req models.UpdateSizeRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.backend.Do(ctx, http.MethodPost, "/products/products/updateSize", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SoftDeleteSize deactivates one size of a product
func (c *catalogClient) SoftDeleteSize(ctx context.Context, id models.ProductIdentity, size string) (*models.MessageResponse, error) {
	query := identityQuery(id, false)
	query.Set("size", size)

	var resp models.MessageResponse
	if err := c.backend.Do(ctx, http.MethodPatch, "/products/products/sizes/soft-delete", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// identityQuery builds the composite key the size endpoints look products up by
func identityQuery(id models.ProductIdentity, withDescription bool) url.Values {
	query := url.Values{}
	query.Set("productName", id.ProductName)
	query.Set("unitPrice", models.FormatPrice(id.UnitPrice))
	if withDescription {
		query.Set("productDescription", id.ProductDescription)
	}
	query.Set("category", id.Category)
	return query
}
