package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is one of the four fixed catalog sections
type Category string

const (
	CategoryWomen Category = "women"
	CategoryMen   Category = "men"
	CategoryGirls Category = "girls"
	CategoryBoys  Category = "boys"
)

// AllCategories lists the categories in display order
var AllCategories = []Category{CategoryWomen, CategoryMen, CategoryGirls, CategoryBoys}

// ParseCategory converts a raw string into a Category, rejecting unknown values
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", raw)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryWomen, CategoryMen, CategoryGirls, CategoryBoys:
		return true
	}
	return false
}

// PathSegment returns the prefix the backend uses in its category listing route
func (c Category) PathSegment() string {
	switch c {
	case CategoryWomen:
		return "Womens"
	case CategoryMen:
		return "mens"
	case CategoryGirls:
		return "girls"
	case CategoryBoys:
		return "boys"
	default:
		return string(c)
	}
}

// DisplayName returns the capitalized category label
func (c Category) DisplayName() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// PlaceholderImage is used when the backend has no image for a product
const PlaceholderImage = "placeholder.png"

// Product is a catalog entry as listed per category
type Product struct {
	ProductName        string   `json:"productName"`
	ProductDescription string   `json:"productDescription"`
	Category           Category `json:"category"`
	UnitPrice          float64  `json:"unitPrice"`
	ImagePath          string   `json:"imagePath,omitempty"`
	ImageURL           string   `json:"imageURL"`

	// CategoryLabel is the category as the backend spells it ("Women", "men")
	CategoryLabel string `json:"categoryLabel,omitempty"`
}

// BackendCategory returns the category value to send back to the backend
func (p Product) BackendCategory() string {
	if p.CategoryLabel != "" {
		return p.CategoryLabel
	}
	return string(p.Category)
}

// ProductKey identifies a product inside the catalog
type ProductKey struct {
	Name     string   `json:"productName"`
	Category Category `json:"category"`
}

func (k ProductKey) String() string {
	return string(k.Category) + "/" + k.Name
}

// Key returns the stable identity of the product
func (p Product) Key() ProductKey {
	return ProductKey{Name: p.ProductName, Category: p.Category}
}

// Identity returns the composite lookup keys used by the size endpoints
func (p Product) Identity() ProductIdentity {
	return ProductIdentity{
		ProductName:        p.ProductName,
		UnitPrice:          p.UnitPrice,
		ProductDescription: p.ProductDescription,
		Category:           p.BackendCategory(),
	}
}

// ProductIdentity is the composite key the backend uses instead of an id
type ProductIdentity struct {
	ProductName        string
	UnitPrice          float64
	ProductDescription string
	Category           string
}

// FormatPrice renders a unit price the way query strings and forms carry it
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RawProduct is a product record as returned by the category listing
type RawProduct struct {
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription"`
	Category           string  `json:"category"`
	UnitPrice          float64 `json:"unitPrice"`
	ImagePath          *string `json:"image_path"`
}

// SizeStock is one size row of a product with its stock on hand
type SizeStock struct {
	Size         string `json:"size"`
	CurrentStock int    `json:"currentStock"`
}

// SizeVariant is one physical unit row of a size with its codes
type SizeVariant struct {
	Size        string  `json:"size"`
	Barcode     *string `json:"barcode"`
	ProductCode *string `json:"productCode"`
}

// BarcodeOrNA renders the barcode for display
func (v SizeVariant) BarcodeOrNA() string {
	if v.Barcode == nil || *v.Barcode == "" {
		return "N/A"
	}
	return *v.Barcode
}

// ProductCodeOrNA renders the product code for display
func (v SizeVariant) ProductCodeOrNA() string {
	if v.ProductCode == nil || *v.ProductCode == "" {
		return "N/A"
	}
	return *v.ProductCode
}

// CreateProductRequest is the backend payload for adding a product
type CreateProductRequest struct {
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription"`
	Size               string  `json:"size"`
	Category           string  `json:"category"`
	UnitPrice          float64 `json:"unitPrice"`
	Quantity           int     `json:"quantity"`
	Image              string  `json:"image"`
}

// UpdateDetailsRequest is the backend payload for editing product details
type UpdateDetailsRequest struct {
	ProductName           string  `json:"productName"`
	ProductDescription    string  `json:"productDescription"`
	Category              string  `json:"category"`
	UnitPrice             float64 `json:"unitPrice"`
	NewProductName        string  `json:"newProductName"`
	NewProductDescription string  `json:"newProductDescription"`
	NewCategory           string  `json:"newCategory"`
	NewUnitPrice          float64 `json:"newUnitPrice"`
	NewImage              string  `json:"newImage"`
}

// AddSizeRequest is the backend payload for adding a size to a product
type AddSizeRequest struct {
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription"`
	Size               string  `json:"size"`
	Category           string  `json:"category"`
	UnitPrice          float64 `json:"unitPrice"`
	Quantity           int     `json:"quantity"`
	ImagePath          string  `json:"image_path"`
}

// UpdateSizeRequest is the backend payload for renaming a size
type UpdateSizeRequest struct {
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription"`
	Size               string  `json:"size"`
	Category           string  `json:"category"`
	UnitPrice          float64 `json:"unitPrice"`
	NewSize            string  `json:"newSize"`
}

// MessageResponse is the generic {message} / {detail} body the backend answers with
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
	// Quantity is the new stock of a size after an add size call
	Quantity *int `json:"quantity,omitempty"`
}

// ProductSoftDeletedDetail is the sentinel detail of a successful product soft delete
const ProductSoftDeletedDetail = "Products soft deleted successfully"

// CatalogSummary holds the count boxes of the products page
type CatalogSummary struct {
	TotalUniqueProducts int              `json:"totalUniqueProducts"`
	UniqueWomenProducts int              `json:"uniqueWomenProducts"`
	PerCategory         map[Category]int `json:"perCategory"`
}
