package models

import (
	"strconv"
	"strings"
)

// CreateProductForm carries the add product form exactly as typed
type CreateProductForm struct {
	ProductName        string `json:"productName" binding:"required,notblank"`
	ProductDescription string `json:"productDescription" binding:"required,notblank"`
	UnitPrice          string `json:"unitPrice" binding:"required,numericinput"`
	Category           string `json:"category" binding:"required,category"`
	Size               string `json:"size" binding:"required,numericinput"`
	Quantity           string `json:"quantity" binding:"required,positiveint"`
	Image              string `json:"image" binding:"required,base64|datauri"`
}

// Validate checks every binding rule and returns the backend payload
func (f CreateProductForm) Validate() (CreateProductRequest, error) {
	if err := validateForm(f); err != nil {
		return CreateProductRequest{}, err
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(f.UnitPrice), 64)
	qty, _ := strconv.Atoi(strings.TrimSpace(f.Quantity))
	category, _ := ParseCategory(f.Category)

	return CreateProductRequest{
		ProductName:        strings.TrimSpace(f.ProductName),
		ProductDescription: f.ProductDescription,
		Size:               strings.TrimSpace(f.Size),
		Category:           string(category),
		UnitPrice:          price,
		Quantity:           qty,
		Image:              f.Image,
	}, nil
}

// UpdateDescriptionForm carries the description edit form
type UpdateDescriptionForm struct {
	ProductDescription string `json:"productDescription" binding:"required,notblank"`
}

// Validate checks the new description
func (f UpdateDescriptionForm) Validate() error {
	return validateForm(f)
}

// AddSizeForm carries the add size form
type AddSizeForm struct {
	Size     string `json:"size" binding:"required,notblank,numericinput"`
	Quantity string `json:"quantity" binding:"required,positiveint"`
}

// Validate checks the size label and quantity
func (f AddSizeForm) Validate() (string, int, error) {
	if err := validateForm(f); err != nil {
		return "", 0, err
	}
	qty, _ := strconv.Atoi(strings.TrimSpace(f.Quantity))
	return strings.TrimSpace(f.Size), qty, nil
}

// EditSizeForm carries the edit size modal
type EditSizeForm struct {
	NewSize string `json:"newSize" binding:"required,notblank"`
}

// Validate checks the new size label
func (f EditSizeForm) Validate() (string, error) {
	if err := validateForm(f); err != nil {
		return "", err
	}
	return strings.TrimSpace(f.NewSize), nil
}
