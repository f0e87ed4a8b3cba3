package main

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/logger"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/search"
)

type seedProduct struct {
	title    string
	price    float64
	category string
	status   models.ProductStatus
}

var seedCategories = []string{"Móveis", "Esportes", "Eletrônicos & Games", "Roupas", "Casa e Cozinha"}

var seedProducts = []seedProduct{
	{"Cadeira de madeira", 50, "Móveis", models.StatusAvailable},
	{"Mesa de jantar 4 lugares", 450, "Móveis", models.StatusAvailable},
	{"Bicicleta aro 29", 300, "Esportes", models.StatusAvailable},
	{"Patins infantil", 80, "Esportes", models.StatusSold},
	{"Videogame com dois controles", 900, "Eletrônicos & Games", models.StatusAvailable},
	{"Jaqueta jeans", 60, "Roupas", models.StatusAvailable},
	{"Jogo de panelas", 120, "Casa e Cozinha", models.StatusAvailable},
}

// main fills an empty database with demo categories and products.
// Usage: go run ./cmd/seed
// Re-running is safe: existing slugs and titles are left untouched.
func main() {
	cfg := config.Load()
	log := logger.Init("desapego-seed", !cfg.IsProduction())

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("DESAPEGO DOS MARTINS - Demo Data Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")

	ctx, cancel := config.WithTimeout(context.Background())
	defer cancel()

	db, err := config.NewDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	if err := config.Migrate(db.Gorm); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("✓ Schema up to date")

	tx := db.Gorm.WithContext(ctx)
	bySlug := make(map[string]models.Category, len(seedCategories))
	for _, name := range seedCategories {
		c := models.Category{Name: name, Slug: search.Slugify(name)}
		if err := tx.Where(models.Category{Slug: c.Slug}).FirstOrCreate(&c).Error; err != nil {
			log.Fatal().Err(err).Str("slug", c.Slug).Msg("seed category")
		}
		bySlug[c.Slug] = c
		log.Info().Str("slug", c.Slug).Msg("✓ Category ready")
	}

	created := 0
	for _, sp := range seedProducts {
		var existing models.Product
		err := tx.Where("title = ?", sp.title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal().Err(err).Str("title", sp.title).Msg("look up product")
		}

		category := bySlug[search.Slugify(sp.category)]
		p := models.Product{
			Title:      sp.title,
			Price:      sp.price,
			Status:     sp.status,
			CategoryID: &category.ID,
		}
		if err := tx.Create(&p).Error; err != nil {
			log.Fatal().Err(err).Str("title", sp.title).Msg("seed product")
		}
		created++
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("✅ %d categories, %d new products\n", len(bySlug), created)
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run .")
	fmt.Println("2. Open /categoria/todos to browse the seeded catalog")
}
