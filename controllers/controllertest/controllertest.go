// Package controllertest holds in-memory collaborators for handler tests.
package controllertest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/push"
	"github.com/desapego-dos-martins/desapego-backend/search"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// AdminToken is the bearer token Auth accepts.
const AdminToken = "admin-token"

// Admin is who AdminToken authenticates as.
var Admin = services.Admin{ID: "7d0e0b52-1111-4a8e-9c55-6a3d5e0f0001", Email: "admin@desapegodosmartins.com.br"}

// Router returns a bare gin engine in test mode.
func Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// Do serves one request and returns the recorder.
func Do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// JSONRequest builds a request with a JSON body and, when token is set, a
// bearer header.
func JSONRequest(method, target, body, token string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// Auth accepts AdminToken only.
type Auth struct{}

func (Auth) Authenticate(_ context.Context, token string) (services.Admin, error) {
	if token != AdminToken {
		return services.Admin{}, services.ErrUnauthorized
	}
	return Admin, nil
}

// ════════════════════════════════════════════════════════════
// Catalog
// ════════════════════════════════════════════════════════════

// Catalog is an in-memory services.Catalog. Err, when set, fails every call.
type Catalog struct {
	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	Interests  []models.InterestedUser
	Stats      models.DashboardStats
	Err        error
}

func NewCatalog() *Catalog { return &Catalog{} }

// AddCategory stores a category and returns it with an id.
func (f *Catalog) AddCategory(name, slug string) models.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Category{ID: uuid.New(), Name: name, Slug: slug, CreatedAt: time.Now()}
	f.categories = append(f.categories, c)
	return c
}

// AddProduct stores p, filling the id and the category association.
func (f *Catalog) AddProduct(p models.Product) models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = models.StatusAvailable
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().Add(time.Duration(len(f.products)) * time.Second)
	}
	p.Category = f.categoryLocked(p.CategoryID)
	f.products = append(f.products, p)
	return p
}

// Product returns the stored product with id.
func (f *Catalog) Product(id uuid.UUID) (models.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexLocked(id)
	if i < 0 {
		return models.Product{}, false
	}
	return f.products[i], true
}

func (f *Catalog) categoryLocked(id *uuid.UUID) *models.Category {
	if id == nil {
		return nil
	}
	for i := range f.categories {
		if f.categories[i].ID == *id {
			c := f.categories[i]
			return &c
		}
	}
	return nil
}

func (f *Catalog) indexLocked(id uuid.UUID) int {
	return slices.IndexFunc(f.products, func(p models.Product) bool { return p.ID == id })
}

func (f *Catalog) ListProducts(_ context.Context, q services.ProductQuery) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	var all []models.Product
	for _, p := range f.products {
		if q.IncludeHidden || p.Status != models.StatusHidden {
			all = append(all, p)
		}
	}
	slices.SortStableFunc(all, func(a, b models.Product) int { return b.CreatedAt.Compare(a.CreatedAt) })

	state := search.NewState()
	state.SearchTerm = q.Search
	if q.Category != "" {
		state.SelectedCategory = q.Category
	}
	res := search.Filter(state, services.SearchCards(all))
	var out []models.Product
	for i, p := range all {
		if res.Visible[i] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *Catalog) GetProduct(_ context.Context, id uuid.UUID) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.Product{}, f.Err
	}
	i := f.indexLocked(id)
	if i < 0 {
		return models.Product{}, services.ErrNotFound
	}
	return f.products[i], nil
}

func (f *Catalog) IncrementViews(_ context.Context, id uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	i := f.indexLocked(id)
	if i < 0 {
		return 0, services.ErrNotFound
	}
	f.products[i].Views++
	return f.products[i].Views, nil
}

func (f *Catalog) RegisterInterest(_ context.Context, interest *models.InterestedUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if f.indexLocked(interest.ProductID) < 0 {
		return services.ErrNotFound
	}
	interest.ID = uuid.New()
	f.Interests = append(f.Interests, *interest)
	return nil
}

func (f *Catalog) ListCategories(_ context.Context) ([]models.CategoryWithCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]models.CategoryWithCount, 0, len(f.categories))
	for _, c := range f.categories {
		n := 0
		for _, p := range f.products {
			if p.CategoryID != nil && *p.CategoryID == c.ID && p.Status != models.StatusHidden {
				n++
			}
		}
		out = append(out, models.CategoryWithCount{ID: c.ID, Name: c.Name, Slug: c.Slug, ProductCount: n})
	}
	return out, nil
}

func (f *Catalog) GetCategoryBySlug(_ context.Context, slug string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.Category{}, f.Err
	}
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return models.Category{}, services.ErrNotFound
}

func (f *Catalog) CreateCategory(_ context.Context, name, slug string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.Category{}, f.Err
	}
	c, err := services.NewCategory(strings.TrimSpace(name), slug)
	if err != nil {
		return models.Category{}, err
	}
	c.ID = uuid.New()
	for _, existing := range f.categories {
		if existing.Slug == c.Slug {
			return models.Category{}, fmt.Errorf("%w: slug %q", services.ErrConflict, c.Slug)
		}
	}
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *Catalog) DeleteCategory(_ context.Context, id uuid.UUID) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.Category{}, f.Err
	}
	i := slices.IndexFunc(f.categories, func(c models.Category) bool { return c.ID == id })
	if i < 0 {
		return models.Category{}, services.ErrNotFound
	}
	c := f.categories[i]
	f.categories = slices.Delete(f.categories, i, i+1)
	for j := range f.products {
		if f.products[j].CategoryID != nil && *f.products[j].CategoryID == id {
			f.products[j].CategoryID = nil
			f.products[j].Category = nil
		}
	}
	return c, nil
}

func (f *Catalog) CreateProduct(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if p.CategoryID != nil && f.categoryLocked(p.CategoryID) == nil {
		return fmt.Errorf("%w: category", services.ErrNotFound)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = models.StatusAvailable
	}
	p.CreatedAt = time.Now()
	f.products = append(f.products, *p)
	return nil
}

func (f *Catalog) UpdateProductStatus(_ context.Context, id uuid.UUID, status models.ProductStatus) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.Product{}, f.Err
	}
	i := f.indexLocked(id)
	if i < 0 {
		return models.Product{}, services.ErrNotFound
	}
	before := f.products[i]
	f.products[i].Status = status
	return before, nil
}

func (f *Catalog) DeleteProduct(_ context.Context, id uuid.UUID) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.Product{}, f.Err
	}
	i := f.indexLocked(id)
	if i < 0 {
		return models.Product{}, services.ErrNotFound
	}
	p := f.products[i]
	f.products = slices.Delete(f.products, i, i+1)
	return p, nil
}

func (f *Catalog) DashboardStats(_ context.Context) (models.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.DashboardStats{}, f.Err
	}
	return f.Stats, nil
}

func (f *Catalog) Availability(_ context.Context) (models.AvailabilityData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.AvailabilityData{}, f.Err
	}
	var data models.AvailabilityData
	for _, p := range f.products {
		switch p.Status {
		case models.StatusAvailable:
			data.Available++
		case models.StatusSold:
			data.Sold++
		}
	}
	return data, nil
}

func (f *Catalog) PriceRange(_ context.Context) (models.PriceRangeData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.PriceRangeData{}, f.Err
	}
	var pr models.PriceRangeData
	first := true
	for _, p := range f.products {
		if p.Status != models.StatusAvailable {
			continue
		}
		if first || p.Price < pr.Min {
			pr.Min = p.Price
		}
		if first || p.Price > pr.Max {
			pr.Max = p.Price
		}
		first = false
	}
	return pr, nil
}

func (f *Catalog) TopProducts(_ context.Context, limit int) ([]models.TopProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]models.TopProduct, 0, len(f.products))
	for _, p := range f.products {
		tp := models.TopProduct{ProductID: p.ID.String(), Title: p.Title, Status: p.Status, Views: p.Views}
		for _, in := range f.Interests {
			if in.ProductID == p.ID {
				tp.InterestCount++
			}
		}
		if tp.Views > 0 {
			tp.InterestRate = float64(tp.InterestCount) / float64(tp.Views) * 100
		}
		out = append(out, tp)
	}
	slices.SortStableFunc(out, func(a, b models.TopProduct) int {
		if a.Views != b.Views {
			return b.Views - a.Views
		}
		return b.InterestCount - a.InterestCount
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *Catalog) ListInterests(_ context.Context, q services.InterestQuery) ([]models.InterestListRow, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, 0, f.Err
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	var matched []models.InterestListRow
	for i := len(f.Interests) - 1; i >= 0; i-- {
		in := f.Interests[i]
		if q.ProductID != nil && in.ProductID != *q.ProductID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(in.Name), term) &&
			!strings.Contains(strings.ToLower(in.Email), term) && !strings.Contains(in.Phone, term) {
			continue
		}
		row := models.InterestListRow{
			ID:        in.ID.String(),
			ProductID: in.ProductID.String(),
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Message:   in.Message,
			CreatedAt: in.CreatedAt,
		}
		if j := f.indexLocked(in.ProductID); j >= 0 {
			row.ProductTitle = f.products[j].Title
		}
		matched = append(matched, row)
	}
	total := int64(len(matched))
	start := min((q.Page-1)*q.Limit, len(matched))
	end := min(start+q.Limit, len(matched))
	return matched[start:end], total, nil
}

// ════════════════════════════════════════════════════════════
// Images, activity, push
// ════════════════════════════════════════════════════════════

// Images is an in-memory services.ImageStore.
type Images struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	UploadErr error
	DeleteErr error
}

func (f *Images) Upload(_ context.Context, file io.Reader, name, folder string) (services.UploadedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UploadErr != nil {
		return services.UploadedImage{}, f.UploadErr
	}
	if _, err := io.Copy(io.Discard, file); err != nil {
		return services.UploadedImage{}, err
	}
	id := folder + "/" + name
	f.Uploaded = append(f.Uploaded, id)
	return services.UploadedImage{
		URL:      "https://res.cloudinary.test/" + id + ".webp",
		ThumbURL: "https://res.cloudinary.test/thumb/" + id + ".webp",
		PublicID: id,
	}, nil
}

func (f *Images) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, publicID)
	return nil
}

func (f *Images) DeleteFolder(_ context.Context, folder string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, folder)
	return nil
}

// Carousel is an in-memory services.Carousel.
type Carousel struct {
	mu     sync.Mutex
	slides []models.CarouselImage
	Err    error
}

func (f *Carousel) ListCarouselImages(context.Context) ([]models.CarouselImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return slices.Clone(f.slides), nil
}

func (f *Carousel) AddCarouselImages(_ context.Context, images []services.UploadedImage) ([]models.CarouselImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	added := make([]models.CarouselImage, 0, len(images))
	for _, img := range images {
		slide := models.CarouselImage{
			ID:        uuid.New(),
			ImageURL:  img.URL,
			PublicID:  img.PublicID,
			Position:  len(f.slides),
			CreatedAt: time.Now(),
		}
		f.slides = append(f.slides, slide)
		added = append(added, slide)
	}
	return added, nil
}

func (f *Carousel) RemoveCarouselImage(_ context.Context, imageURL string) (models.CarouselImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return models.CarouselImage{}, f.Err
	}
	for i, slide := range f.slides {
		if slide.ImageURL == imageURL {
			f.slides = slices.Delete(f.slides, i, i+1)
			return slide, nil
		}
	}
	return models.CarouselImage{}, services.ErrNotFound
}

// Activity captures recorded admin actions.
type Activity struct {
	mu      sync.Mutex
	Entries []models.ActivityLog
}

func (f *Activity) Record(_ context.Context, entry models.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Entries = append(f.Entries, entry)
	return nil
}

func (f *Activity) Recent(_ context.Context, limit int) ([]models.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.Entries)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PushStore is an in-memory push.Store keyed by endpoint.
type PushStore struct {
	mu      sync.Mutex
	subs    map[string]push.Subscription
	order   []string
	Err     error
	Deleted []string
}

func NewPushStore(subs ...push.Subscription) *PushStore {
	s := &PushStore{subs: map[string]push.Subscription{}}
	for _, sub := range subs {
		_ = s.Upsert(context.Background(), sub)
	}
	return s
}

func (s *PushStore) Upsert(_ context.Context, sub push.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.subs[sub.Endpoint]; !ok {
		s.order = append(s.order, sub.Endpoint)
	}
	s.subs[sub.Endpoint] = sub
	return nil
}

func (s *PushStore) List(_ context.Context) ([]push.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]push.Subscription, 0, len(s.order))
	for _, e := range s.order {
		out = append(out, s.subs[e])
	}
	return out, nil
}

func (s *PushStore) DeleteByEndpoint(_ context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, endpoint)
	s.order = slices.DeleteFunc(s.order, func(e string) bool { return e == endpoint })
	s.Deleted = append(s.Deleted, endpoint)
	return nil
}

func (s *PushStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.order)), nil
}

// Get returns the stored subscription for endpoint.
func (s *PushStore) Get(endpoint string) (push.Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[endpoint]
	return sub, ok
}

// Sender answers every delivery with Status, or with StatusFor[endpoint].
type Sender struct {
	mu        sync.Mutex
	Status    int
	StatusFor map[string]int
	Payloads  [][]byte
}

func (s *Sender) Send(_ context.Context, sub push.Subscription, payload []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Payloads = append(s.Payloads, payload)
	status := s.Status
	if st, ok := s.StatusFor[sub.Endpoint]; ok {
		status = st
	}
	if status == 0 {
		status = http.StatusCreated
	}
	if status < 200 || status > 299 {
		return status, &push.DeliveryError{Endpoint: sub.Endpoint, StatusCode: status}
	}
	return status, nil
}

// Multipart encodes fields and files as a multipart/form-data body.
func Multipart(fields map[string]string, files map[string][]byte) (io.Reader, string) {
	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fw, _ := mw.CreateFormFile("images", name)
		_, _ = fw.Write(files[name])
	}
	_ = mw.Close()
	return strings.NewReader(buf.String()), mw.FormDataContentType()
}

var (
	_ services.Authenticator = Auth{}
	_ services.Catalog       = (*Catalog)(nil)
	_ services.ImageStore    = (*Images)(nil)
	_ services.Carousel      = (*Carousel)(nil)
	_ services.ActivityLog   = (*Activity)(nil)
	_ push.Store             = (*PushStore)(nil)
	_ push.Sender            = (*Sender)(nil)
)
