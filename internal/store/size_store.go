package store

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"vms-admin/internal/clients"
	"vms-admin/internal/events"
	"vms-admin/internal/models"
)

const (
	msgInvalidSizeData = "Invalid size data received."
	msgSizeFetchFailed = "Failed to fetch product size."
	msgSizeFetchError  = "An error occurred while fetching product size."
)

// SizeViews tracks the product edit views that are currently open
type SizeViews struct {
	client    clients.CatalogClient
	publisher events.EventPublisher
	logger    *logrus.Entry

	mu    sync.Mutex
	views map[models.ProductKey]*SizeView
}

// NewSizeViews creates an empty view registry
func NewSizeViews(client clients.CatalogClient, publisher events.EventPublisher, logger *logrus.Entry) *SizeViews {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if publisher == nil {
		publisher = events.Noop()
	}
	return &SizeViews{
		client:    client,
		publisher: publisher,
		logger:    logger.WithField("component", "size_store"),
		views:     make(map[models.ProductKey]*SizeView),
	}
}

// Open returns the view of a product, creating it if needed, and loads
// its sizes and variants. A view opened for an older copy of the product
// is dismissed and replaced.
func (r *SizeViews) Open(ctx context.Context, product models.Product) (*SizeView, error) {
	key := product.Key()

	r.mu.Lock()
	view, ok := r.views[key]
	var stale *SizeView
	if ok && view.product != product {
		// the product was edited since the view opened; its size lookups
		// must use the new identity
		stale, ok = view, false
	}
	if !ok {
		lifetime, cancel := context.WithCancel(context.Background())
		view = &SizeView{
			product:   product,
			client:    r.client,
			publisher: r.publisher,
			logger:    r.logger.WithField("product", key.String()),
			lifetime:  lifetime,
			cancel:    cancel,
			sizes:     []models.SizeStock{},
			variants:  []models.SizeVariant{},
		}
		r.views[key] = view
	}
	r.mu.Unlock()

	if stale != nil {
		stale.cancel()
	}

	var wg sync.WaitGroup
	var sizesErr, variantsErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		sizesErr = view.FetchSizes(ctx)
	}()
	go func() {
		defer wg.Done()
		variantsErr = view.FetchVariants(ctx)
	}()
	wg.Wait()

	if err := errors.Join(sizesErr, variantsErr); err != nil {
		return view, err
	}
	return view, nil
}

// Get returns an open view
func (r *SizeViews) Get(key models.ProductKey) (*SizeView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.views[key]
	return view, ok
}

// Close dismisses a view; responses still in flight for it are dropped
func (r *SizeViews) Close(key models.ProductKey) bool {
	r.mu.Lock()
	view, ok := r.views[key]
	delete(r.views, key)
	r.mu.Unlock()

	if ok {
		view.cancel()
	}
	return ok
}

// CloseAll dismisses every open view
func (r *SizeViews) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[models.ProductKey]*SizeView)
	r.mu.Unlock()

	for _, v := range views {
		v.cancel()
	}
}

// SizeView holds the sizes and unit variants of one product while its edit view is open
type SizeView struct {
	product   models.Product
	client    clients.CatalogClient
	publisher events.EventPublisher
	logger    *logrus.Entry
	lifetime  context.Context
	cancel    context.CancelFunc

	mu          sync.RWMutex
	sizes       []models.SizeStock
	variants    []models.SizeVariant
	sizesErr    string
	variantsErr string
	selected    string
}

// SizeViewSnapshot is a consistent copy of a view's state
type SizeViewSnapshot struct {
	Product       models.Product       `json:"product"`
	Sizes         []models.SizeStock   `json:"sizes"`
	Variants      []models.SizeVariant `json:"variants"`
	SizesError    string               `json:"sizesError,omitempty"`
	VariantsError string               `json:"variantsError,omitempty"`
	Selected      *models.SizeStock    `json:"selected"`
}

// Product returns the product the view was opened for
func (v *SizeView) Product() models.Product {
	return v.product
}

// Closed reports whether the view has been dismissed
func (v *SizeView) Closed() bool {
	return v.lifetime.Err() != nil
}

// FetchSizes reloads the size list. Backend failures leave an empty list
// and an error message; only a dismissed view returns an error.
func (v *SizeView) FetchSizes(ctx context.Context) error {
	ctx, cancel := withLifetime(ctx, v.lifetime)
	defer cancel()

	sizes, err := v.client.ListSizes(ctx, v.product.Identity())
	if dErr := v.dropped(ctx); dErr != nil {
		return dErr
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.logger.WithError(err).Warn("Failed to fetch sizes")
		v.sizes = []models.SizeStock{}
		v.sizesErr = sizeFetchMessage(err)
		v.selected = ""
		return nil
	}

	v.sizes = sizes
	v.sizesErr = ""
	if v.selected != "" && indexOfSize(v.sizes, v.selected) < 0 {
		v.selected = ""
	}
	return nil
}

// FetchVariants reloads the unit variants independently of the sizes
func (v *SizeView) FetchVariants(ctx context.Context) error {
	ctx, cancel := withLifetime(ctx, v.lifetime)
	defer cancel()

	variants, err := v.client.ListSizeVariants(ctx, v.product.Identity())
	if dErr := v.dropped(ctx); dErr != nil {
		return dErr
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.logger.WithError(err).Warn("Failed to fetch size variants")
		v.variants = []models.SizeVariant{}
		v.variantsErr = err.Error()
		return nil
	}
	if variants == nil {
		variants = []models.SizeVariant{}
	}
	v.variants = variants
	v.variantsErr = ""
	return nil
}

// AddSize creates a size for the product, or restocks it when the label
// already exists, and mirrors the result locally
func (v *SizeView) AddSize(ctx context.Context, form models.AddSizeForm) (models.SizeStock, error) {
	size, qty, err := form.Validate()
	if err != nil {
		return models.SizeStock{}, err
	}

	ctx, cancel := withLifetime(ctx, v.lifetime)
	defer cancel()

	req := models.AddSizeRequest{
		ProductName:        v.product.ProductName,
		ProductDescription: v.product.ProductDescription,
		Size:               size,
		Category:           v.product.BackendCategory(),
		UnitPrice:          v.product.UnitPrice,
		Quantity:           qty,
		ImagePath:          v.product.ImagePath,
	}
	resp, err := v.client.AddSize(ctx, req)
	if dErr := v.dropped(ctx); dErr != nil {
		return models.SizeStock{}, dErr
	}
	if err != nil {
		return models.SizeStock{}, err
	}

	// adding an existing label restocks it; the backend answers with the new total
	added := models.SizeStock{Size: size, CurrentStock: qty}
	if resp != nil && resp.Quantity != nil {
		added.CurrentStock = *resp.Quantity
	}
	v.mu.Lock()
	if i := indexOfSize(v.sizes, size); i >= 0 {
		v.sizes[i] = added
	} else {
		v.sizes = append(v.sizes, added)
	}
	v.mu.Unlock()

	v.publisher.SizeAdded(v.product.Key(), size)

	if err := v.FetchVariants(ctx); err != nil {
		return added, err
	}
	return added, nil
}

// EditSize renames a size, keeps it selected under the new label and
// reloads both caches
func (v *SizeView) EditSize(ctx context.Context, oldSize string, form models.EditSizeForm) (models.SizeStock, error) {
	newSize, err := form.Validate()
	if err != nil {
		return models.SizeStock{}, err
	}

	v.mu.RLock()
	idx := indexOfSize(v.sizes, oldSize)
	v.mu.RUnlock()
	if idx < 0 {
		return models.SizeStock{}, ErrSizeNotFound
	}

	ctx, cancel := withLifetime(ctx, v.lifetime)
	defer cancel()

	req := models.UpdateSizeRequest{
		ProductName:        v.product.ProductName,
		ProductDescription: v.product.ProductDescription,
		Size:               oldSize,
		Category:           v.product.BackendCategory(),
		UnitPrice:          v.product.UnitPrice,
		NewSize:            newSize,
	}
	_, err = v.client.UpdateSize(ctx, req)
	if dErr := v.dropped(ctx); dErr != nil {
		return models.SizeStock{}, dErr
	}
	if err != nil {
		return models.SizeStock{}, err
	}

	var renamed models.SizeStock
	v.mu.Lock()
	if i := indexOfSize(v.sizes, oldSize); i >= 0 {
		v.sizes[i].Size = newSize
		renamed = v.sizes[i]
	} else {
		renamed = models.SizeStock{Size: newSize}
	}
	v.selected = newSize
	v.mu.Unlock()

	v.publisher.SizeUpdated(v.product.Key(), oldSize, newSize)

	if err := v.FetchSizes(ctx); err != nil {
		return renamed, err
	}
	if err := v.FetchVariants(ctx); err != nil {
		return renamed, err
	}
	return renamed, nil
}

// DeleteSize soft deletes a size and drops it locally without a re-fetch
func (v *SizeView) DeleteSize(ctx context.Context, size string) error {
	v.mu.RLock()
	idx := indexOfSize(v.sizes, size)
	v.mu.RUnlock()
	if idx < 0 {
		return ErrSizeNotFound
	}

	ctx, cancel := withLifetime(ctx, v.lifetime)
	defer cancel()

	_, err := v.client.SoftDeleteSize(ctx, v.product.Identity(), size)
	if dErr := v.dropped(ctx); dErr != nil {
		return dErr
	}
	if err != nil {
		return err
	}

	v.mu.Lock()
	kept := make([]models.SizeStock, 0, len(v.sizes))
	for _, s := range v.sizes {
		if s.Size != size {
			kept = append(kept, s)
		}
	}
	v.sizes = kept
	v.selected = ""
	v.mu.Unlock()

	v.publisher.SizeDeleted(v.product.Key(), size)
	return nil
}

// Select marks one fetched size as selected
func (v *SizeView) Select(size string) (models.SizeStock, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := indexOfSize(v.sizes, size)
	if idx < 0 {
		return models.SizeStock{}, ErrSizeNotFound
	}
	v.selected = size
	return v.sizes[idx], nil
}

// Selected returns the selected size with its stock
func (v *SizeView) Selected() (models.SizeStock, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.selected == "" {
		return models.SizeStock{}, false
	}
	idx := indexOfSize(v.sizes, v.selected)
	if idx < 0 {
		return models.SizeStock{}, false
	}
	return v.sizes[idx], true
}

// Sizes returns a copy of the size list
func (v *SizeView) Sizes() []models.SizeStock {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.SizeStock, len(v.sizes))
	copy(out, v.sizes)
	return out
}

// Variants returns a copy of the variant list
func (v *SizeView) Variants() []models.SizeVariant {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.SizeVariant, len(v.variants))
	copy(out, v.variants)
	return out
}

// Err returns the message of the last failed size fetch
func (v *SizeView) Err() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sizesErr
}

// Snapshot returns the full state of the view
func (v *SizeView) Snapshot() SizeViewSnapshot {
	snap := SizeViewSnapshot{
		Product:  v.product,
		Sizes:    v.Sizes(),
		Variants: v.Variants(),
	}
	v.mu.RLock()
	snap.SizesError = v.sizesErr
	snap.VariantsError = v.variantsErr
	v.mu.RUnlock()
	if sel, ok := v.Selected(); ok {
		snap.Selected = &sel
	}
	return snap
}

// dropped reports whether a response must be discarded because the view
// was dismissed or the request ended
func (v *SizeView) dropped(ctx context.Context) error {
	if err := dismissed(v.lifetime); err != nil {
		return err
	}
	return dismissed(ctx)
}

func indexOfSize(sizes []models.SizeStock, size string) int {
	for i, s := range sizes {
		if s.Size == size {
			return i
		}
	}
	return -1
}

func sizeFetchMessage(err error) string {
	switch {
	case errors.Is(err, clients.ErrUnexpectedShape):
		return msgInvalidSizeData
	case clients.IsTransport(err):
		return msgSizeFetchError
	default:
		return msgSizeFetchFailed
	}
}
