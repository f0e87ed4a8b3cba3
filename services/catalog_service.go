package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/desapego-dos-martins/desapego-backend/cache"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/search"
	"github.com/desapego-dos-martins/desapego-backend/utils"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidSlug  = errors.New("category name yields an empty slug")
	// ErrSlugMismatch rejects an explicit slug the storefront would never
	// derive from the category badge.
	ErrSlugMismatch = errors.New("slug does not match the category name")
)

// RowQuerier is the slice of pgxpool.Pool the catalog needs for raw SQL.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductQuery narrows the storefront listing. Category is a slug; empty or
// "all" means every category.
type ProductQuery struct {
	Search        string
	Category      string
	IncludeHidden bool
}

// InterestQuery pages through interest requests. Search matches name,
// email or phone.
type InterestQuery struct {
	Search    string
	ProductID *uuid.UUID
	Page      int
	Limit     int
}

// Catalog is what the storefront and admin handlers need.
type Catalog interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)
	RegisterInterest(ctx context.Context, interest *models.InterestedUser) error
	ListCategories(ctx context.Context) ([]models.CategoryWithCount, error)
	GetCategoryBySlug(ctx context.Context, slug string) (models.Category, error)
	CreateCategory(ctx context.Context, name, slug string) (models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (models.Category, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProductStatus(ctx context.Context, id uuid.UUID, status models.ProductStatus) (models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
	Availability(ctx context.Context) (models.AvailabilityData, error)
	PriceRange(ctx context.Context) (models.PriceRangeData, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
	ListInterests(ctx context.Context, q InterestQuery) ([]models.InterestListRow, int64, error)
}

type CatalogService struct {
	db         *gorm.DB
	pool       RowQuerier
	categories *cache.CategoryCache
	log        zerolog.Logger
}

func NewCatalogService(db *gorm.DB, pool RowQuerier, categories *cache.CategoryCache, log zerolog.Logger) *CatalogService {
	if categories == nil {
		categories = cache.NewCategoryCache(cache.DefaultTTL)
	}
	return &CatalogService{db: db, pool: pool, categories: categories, log: log}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

// ════════════════════════════════════════════════════════════
// Products
// ════════════════════════════════════════════════════════════

// ListProducts returns products newest first (featured on top), filtered
// with the same matching rules as the live search on the storefront.
func (s *CatalogService) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	var products []models.Product
	tx := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, created_at ASC")
		}).
		Order("featured DESC, created_at DESC")
	if !q.IncludeHidden {
		tx = tx.Where("status <> ?", models.StatusHidden)
	}
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	state := search.NewState()
	state.SearchTerm = q.Search
	if slug := strings.TrimSpace(q.Category); slug != "" && slug != search.AllCategories {
		state.SelectedCategory = slug
	}
	res := search.Filter(state, SearchCards(products))

	out := make([]models.Product, 0, res.VisibleCount)
	for i, p := range products {
		if res.Visible[i] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, created_at ASC")
		}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return models.Product{}, notFound(err)
	}
	return p, nil
}

// IncrementViews bumps the counter atomically and returns the new value.
func (s *CatalogService) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := s.pool.QueryRow(ctx,
		`UPDATE products SET views = COALESCE(views, 0) + 1 WHERE id = $1 RETURNING views`, id,
	).Scan(&views)
	if err != nil {
		return 0, notFound(err)
	}
	return views, nil
}

func (s *CatalogService) RegisterInterest(ctx context.Context, interest *models.InterestedUser) error {
	if err := s.db.WithContext(ctx).Create(interest).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: product %s", ErrNotFound, interest.ProductID)
		}
		return fmt.Errorf("register interest: %w", err)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: category", ErrNotFound)
		}
		return fmt.Errorf("create product: %w", err)
	}
	s.categories.Invalidate()
	return nil
}

// UpdateProductStatus returns the product as it was before the change.
func (s *CatalogService) UpdateProductStatus(ctx context.Context, id uuid.UUID, status models.ProductStatus) (models.Product, error) {
	var before models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&before, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", id).Update("status", status).Error
	})
	if err != nil {
		return models.Product{}, notFound(err)
	}
	s.categories.Invalidate()
	return before, nil
}

// DeleteProduct removes the product and its image rows and returns what was deleted.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Images").First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return models.Product{}, notFound(err)
	}
	s.categories.Invalidate()
	return p, nil
}

// ════════════════════════════════════════════════════════════
// Categories
// ════════════════════════════════════════════════════════════

const categoriesWithCountSQL = `
SELECT c.id, c.name, c.slug, COUNT(p.id) AS product_count
FROM categories c
LEFT JOIN products p ON p.category_id = c.id AND p.status <> 'hidden'
GROUP BY c.id, c.name, c.slug
ORDER BY c.name ASC`

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.CategoryWithCount, error) {
	if cached, ok := s.categories.Get(); ok {
		return cached, nil
	}
	var out []models.CategoryWithCount
	if err := s.db.WithContext(ctx).Raw(categoriesWithCountSQL).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.categories.Set(out)
	return out, nil
}

// NewCategory builds a category whose slug is derived from name. An explicit
// slug must normalize to the same value.
func NewCategory(name, slug string) (models.Category, error) {
	derived := search.Slugify(name)
	if derived == "" {
		return models.Category{}, ErrInvalidSlug
	}
	if strings.TrimSpace(slug) != "" && search.Slugify(slug) != derived {
		return models.Category{}, fmt.Errorf("%w: want %q", ErrSlugMismatch, derived)
	}
	return models.Category{Name: name, Slug: derived}, nil
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, "slug = ?", slug).Error; err != nil {
		return models.Category{}, notFound(err)
	}
	return c, nil
}

// CreateCategory derives the slug from name. An explicit slug is accepted
// only when it normalizes to the same value, since cards are matched to the
// dropdown by slugifying their badge text.
func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (models.Category, error) {
	name = strings.TrimSpace(name)
	c, err := NewCategory(name, slug)
	if err != nil {
		return models.Category{}, err
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, fmt.Errorf("%w: slug %q", ErrConflict, c.Slug)
		}
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	s.categories.Invalidate()
	return c, nil
}

// DeleteCategory removes a category; its products become uncategorized.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	var c models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
	if err != nil {
		return models.Category{}, notFound(err)
	}
	s.categories.Invalidate()
	return c, nil
}

// ════════════════════════════════════════════════════════════
// Dashboard
// ════════════════════════════════════════════════════════════

const dashboardSQL = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status = 'available'),
	COUNT(*) FILTER (WHERE status = 'sold'),
	COUNT(*) FILTER (WHERE status = 'hidden'),
	COALESCE(SUM(views), 0),
	COUNT(*) FILTER (WHERE category_id IS NULL),
	(SELECT COUNT(*) FROM interested_users)
FROM products`

func (s *CatalogService) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var st models.DashboardStats
	err := s.pool.QueryRow(ctx, dashboardSQL).Scan(
		&st.TotalProducts,
		&st.AvailableProducts,
		&st.SoldProducts,
		&st.HiddenProducts,
		&st.TotalViews,
		&st.Uncategorized,
		&st.InterestedCount,
	)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return st, nil
}

// ════════════════════════════════════════════════════════════
// Filters
// ════════════════════════════════════════════════════════════

const availabilitySQL = `
SELECT
	COUNT(*) FILTER (WHERE status = 'available')::int AS available,
	COUNT(*) FILTER (WHERE status = 'sold')::int AS sold
FROM products`

// Availability counts storefront-visible products by status.
func (s *CatalogService) Availability(ctx context.Context) (models.AvailabilityData, error) {
	var data models.AvailabilityData
	if err := s.db.WithContext(ctx).Raw(availabilitySQL).Scan(&data).Error; err != nil {
		return models.AvailabilityData{}, fmt.Errorf("availability counts: %w", err)
	}
	return data, nil
}

const priceRangeSQL = `
SELECT
	COALESCE(MIN(price), 0)::float8 AS min,
	COALESCE(MAX(price), 0)::float8 AS max
FROM products
WHERE status = 'available'`

// PriceRange spans the products a visitor can still buy; an empty
// catalog yields 0..0.
func (s *CatalogService) PriceRange(ctx context.Context) (models.PriceRangeData, error) {
	var pr models.PriceRangeData
	if err := s.db.WithContext(ctx).Raw(priceRangeSQL).Scan(&pr).Error; err != nil {
		return models.PriceRangeData{}, fmt.Errorf("price range: %w", err)
	}
	return pr, nil
}

// ════════════════════════════════════════════════════════════
// Analytics
// ════════════════════════════════════════════════════════════

const topProductsSQL = `
SELECT
	p.id::text AS product_id,
	p.title,
	p.status,
	COALESCE(p.views, 0) AS views,
	COUNT(iu.id)::int AS interest_count
FROM products p
LEFT JOIN interested_users iu ON iu.product_id = p.id
GROUP BY p.id, p.title, p.status, p.views
ORDER BY views DESC, interest_count DESC
LIMIT ?`

// TopProducts returns the most viewed products with their interest counts.
func (s *CatalogService) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	var out []models.TopProduct
	if err := s.db.WithContext(ctx).Raw(topProductsSQL, limit).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	for i := range out {
		if out[i].Views > 0 {
			out[i].InterestRate = float64(out[i].InterestCount) / float64(out[i].Views) * 100
		}
	}
	return out, nil
}

// ListInterests returns one page of interest requests, newest first, and
// the total matching q.
func (s *CatalogService) ListInterests(ctx context.Context, q InterestQuery) ([]models.InterestListRow, int64, error) {
	db := s.db.WithContext(ctx).
		Table("interested_users iu").
		Joins("JOIN products p ON p.id = iu.product_id")

	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + term + "%"
		db = db.Where("iu.name ILIKE ? OR iu.email ILIKE ? OR iu.phone ILIKE ?", like, like, like)
	}
	if q.ProductID != nil {
		db = db.Where("iu.product_id = ?", *q.ProductID)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count interests: %w", err)
	}

	var rows []models.InterestListRow
	err := db.Session(&gorm.Session{}).
		Select("iu.id::text AS id, iu.product_id::text AS product_id, p.title AS product_title, iu.name, iu.email, iu.phone, iu.message, iu.created_at").
		Order("iu.created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list interests: %w", err)
	}
	return rows, total, nil
}

// ════════════════════════════════════════════════════════════
// Cards
// ════════════════════════════════════════════════════════════

// SearchCards maps products to what the live search matches against.
// Prices use the same BRL text the card shows.
func SearchCards(products []models.Product) []search.Card {
	cards := make([]search.Card, len(products))
	for i, p := range products {
		cards[i] = search.Card{
			ID:      p.ID.String(),
			Title:   p.Title,
			Price:   utils.FormatBRL(p.Price),
			Visible: true,
		}
		if p.Category != nil {
			cards[i].CategorySlug = p.Category.Slug
			cards[i].CategoryName = p.Category.Name
		}
	}
	return cards
}

// ProductCards maps products to the storefront grid.
func ProductCards(products []models.Product) []models.ProductCard {
	cards := make([]models.ProductCard, len(products))
	for i, p := range products {
		cards[i] = models.ProductCard{
			ID:       p.ID.String(),
			Title:    p.Title,
			Price:    utils.FormatBRL(p.Price),
			ListedAt: utils.FormatDate(p.CreatedAt, nil),
			Sold:     p.Status == models.StatusSold,
		}
		if p.Category != nil {
			cards[i].CategorySlug = p.Category.Slug
			cards[i].CategoryName = p.Category.Name
		}
		if img := p.PrimaryImage(); img != nil {
			cards[i].ImageURL = img.ThumbURL
			if cards[i].ImageURL == "" {
				cards[i].ImageURL = img.ImageURL
			}
		}
	}
	return cards
}

var _ Catalog = (*CatalogService)(nil)
