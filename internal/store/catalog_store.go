package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"vms-admin/internal/clients"
	"vms-admin/internal/events"
	"vms-admin/internal/models"
)

// CatalogStore holds the product list of every category.
// Local state only changes after the backend has confirmed a write.
type CatalogStore struct {
	client       clients.CatalogClient
	publisher    events.EventPublisher
	imageBaseURL string
	logger       *logrus.Entry

	mu       sync.RWMutex
	products map[models.Category][]models.Product
}

// NewCatalogStore creates an empty catalog store
func NewCatalogStore(client clients.CatalogClient, publisher events.EventPublisher, imageBaseURL string, logger *logrus.Entry) *CatalogStore {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if publisher == nil {
		publisher = events.Noop()
	}
	return &CatalogStore{
		client:       client,
		publisher:    publisher,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		logger:       logger.WithField("component", "catalog_store"),
		products:     make(map[models.Category][]models.Product),
	}
}

// FetchCategory replaces one category with the backend listing.
// A failed fetch keeps the previous list and is only logged.
func (s *CatalogStore) FetchCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	raw, err := s.client.ListCategory(ctx, category)
	if dErr := dismissed(ctx); dErr != nil {
		return s.List(category), dErr
	}
	if err != nil {
		s.logger.WithError(err).WithField("category", category).Error("Failed to fetch products")
		return s.List(category), nil
	}

	products := make([]models.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, s.toProduct(category, r))
	}

	s.mu.Lock()
	s.products[category] = products
	s.mu.Unlock()

	return s.List(category), nil
}

// FetchAll refreshes every category independently
func (s *CatalogStore) FetchAll(ctx context.Context) error {
	for _, c := range models.AllCategories {
		if _, err := s.FetchCategory(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// AddProduct validates the form, creates the product and appends it locally.
// Invalid forms never reach the backend.
func (s *CatalogStore) AddProduct(ctx context.Context, form models.CreateProductForm) (models.Product, error) {
	req, err := form.Validate()
	if err != nil {
		return models.Product{}, err
	}

	resp, err := s.client.CreateProduct(ctx, req)
	if dErr := dismissed(ctx); dErr != nil {
		return models.Product{}, dErr
	}
	if err != nil {
		return models.Product{}, err
	}
	if isDuplicateMessage(resp.Message) {
		return models.Product{}, &ConflictError{Message: resp.Message}
	}

	category := models.Category(req.Category)
	product := models.Product{
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		Category:           category,
		UnitPrice:          req.UnitPrice,
		ImageURL:           s.imageURL(""),
	}

	s.mu.Lock()
	s.products[category] = append(s.products[category], product)
	s.mu.Unlock()

	s.publisher.ProductCreated(product)
	s.logger.WithFields(logrus.Fields{
		"product":  product.ProductName,
		"category": category,
	}).Info("Product added")

	return product, nil
}

// EditDescription changes the description of the product identified by key
func (s *CatalogStore) EditDescription(ctx context.Context, key models.ProductKey, description string) (models.Product, error) {
	if err := (models.UpdateDescriptionForm{ProductDescription: description}).Validate(); err != nil {
		return models.Product{}, err
	}

	current, ok := s.Find(key)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}

	req := models.UpdateDetailsRequest{
		ProductName:           current.ProductName,
		ProductDescription:    current.ProductDescription,
		Category:              current.BackendCategory(),
		UnitPrice:             current.UnitPrice,
		NewProductName:        current.ProductName,
		NewProductDescription: description,
		NewCategory:           current.BackendCategory(),
		NewUnitPrice:          current.UnitPrice,
		NewImage:              current.ImagePath,
	}
	_, err := s.client.UpdateDetails(ctx, req)
	if dErr := dismissed(ctx); dErr != nil {
		return models.Product{}, dErr
	}
	if err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	list := s.products[key.Category]
	var updated models.Product
	found := false
	for i := range list {
		if list[i].ProductName == key.Name {
			list[i].ProductDescription = description
			if !found {
				updated = list[i]
				found = true
			}
		}
	}
	s.mu.Unlock()

	if !found {
		// removed by a concurrent refresh while the update was in flight
		return models.Product{}, ErrProductNotFound
	}

	s.publisher.ProductUpdated(key)
	return updated, nil
}

// SoftDelete deactivates a product and removes its first entry from the category.
// When the listing holds duplicate rows the card stays until the next refresh.
func (s *CatalogStore) SoftDelete(ctx context.Context, key models.ProductKey) error {
	current, ok := s.Find(key)
	if !ok {
		return ErrProductNotFound
	}

	resp, err := s.client.SoftDeleteProduct(ctx, current.ProductName, current.BackendCategory())
	if dErr := dismissed(ctx); dErr != nil {
		return dErr
	}
	if err != nil {
		return err
	}
	if resp.Detail != models.ProductSoftDeletedDetail {
		s.logger.WithFields(logrus.Fields{
			"product": key.Name,
			"detail":  resp.Detail,
			"message": resp.Message,
		}).Warn("Soft delete was not confirmed")
		return ErrUnexpectedResponse
	}

	s.mu.Lock()
	list := s.products[key.Category]
	for i := range list {
		if list[i].ProductName == key.Name {
			s.products[key.Category] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.publisher.ProductDeleted(key)
	return nil
}

// List returns a copy of the raw category list, duplicates included
func (s *CatalogStore) List(category models.Category) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products[category]))
	copy(out, s.products[category])
	return out
}

// Cards returns the category list with one entry per product name.
// The first occurrence of a name wins.
func (s *CatalogStore) Cards(category models.Category) []models.Product {
	return uniqueByName(s.List(category))
}

// Find looks a product up by its key
func (s *CatalogStore) Find(key models.ProductKey) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products[key.Category] {
		if p.ProductName == key.Name {
			return p, true
		}
	}
	return models.Product{}, false
}

// Summary returns the count boxes of the products page
func (s *CatalogStore) Summary() models.CatalogSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := models.CatalogSummary{PerCategory: make(map[models.Category]int, len(models.AllCategories))}
	names := make(map[string]struct{})
	for _, c := range models.AllCategories {
		list := s.products[c]
		summary.PerCategory[c] = len(list)
		for _, p := range list {
			names[p.ProductName] = struct{}{}
		}
	}
	summary.TotalUniqueProducts = len(names)
	summary.UniqueWomenProducts = len(uniqueByName(s.products[models.CategoryWomen]))
	return summary
}

func (s *CatalogStore) toProduct(category models.Category, r models.RawProduct) models.Product {
	imagePath := ""
	if r.ImagePath != nil {
		imagePath = strings.ReplaceAll(*r.ImagePath, "\\", "/")
	}
	return models.Product{
		ProductName:        r.ProductName,
		ProductDescription: r.ProductDescription,
		Category:           category,
		UnitPrice:          r.UnitPrice,
		ImagePath:          imagePath,
		ImageURL:           s.imageURL(imagePath),
		CategoryLabel:      r.Category,
	}
}

func (s *CatalogStore) imageURL(path string) string {
	if path == "" {
		path = models.PlaceholderImage
	}
	return s.imageBaseURL + "/" + strings.TrimLeft(path, "/")
}

func uniqueByName(list []models.Product) []models.Product {
	seen := make(map[string]struct{}, len(list))
	out := make([]models.Product, 0, len(list))
	for _, p := range list {
		if _, ok := seen[p.ProductName]; ok {
			continue
		}
		seen[p.ProductName] = struct{}{}
		out = append(out, p)
	}
	return out
}

// isDuplicateMessage recognises the "already exists" answer of the create endpoint
func isDuplicateMessage(message string) bool {
	return strings.Contains(strings.ToLower(message), "already exists")
}
