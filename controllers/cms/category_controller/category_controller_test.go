package category_controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desapego-dos-martins/desapego-backend/controllers/controllertest"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/search"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

func setup(t *testing.T) (*gin.Engine, *controllertest.Catalog, *controllertest.Activity) {
	t.Helper()
	catalog := controllertest.NewCatalog()
	activity := &controllertest.Activity{}
	h := NewHandler(catalog, zerolog.Nop())

	r := controllertest.Router()
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(controllertest.Auth{}, zerolog.Nop(), middleware.EnvelopeUnauthorized))
	admin.Use(middleware.ActivityLogging(activity))
	admin.POST("/categories", h.CreateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
	return r, catalog, activity
}

func TestCreateCategory(t *testing.T) {
	r, _, activity := setup(t)

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodPost, "/api/admin/categories", `{"name":"Eletrônicos & Games"}`, controllertest.AdminToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env struct {
		Data models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Eletrônicos & Games", env.Data.Name)
	assert.Equal(t, "eletronicos--games", env.Data.Slug)

	require.Len(t, activity.Entries, 1)
	assert.Equal(t, models.ActionCreateCategory, activity.Entries[0].Action)
}

func TestCreateCategoryErrors(t *testing.T) {
	r, catalog, _ := setup(t)
	catalog.AddCategory("Móveis", "moveis")

	tests := []struct {
		name  string
		body  string
		token string
		want  int
	}{
		{"duplicate slug", `{"name":"MÓVEIS"}`, controllertest.AdminToken, http.StatusConflict},
		{"name without letters", `{"name":"!!!"}`, controllertest.AdminToken, http.StatusBadRequest},
		{"slug differs from name", `{"name":"Móveis e Decoração","slug":"moveis"}`, controllertest.AdminToken, http.StatusBadRequest},
		{"missing name", `{}`, controllertest.AdminToken, http.StatusBadRequest},
		{"no token", `{"name":"Livros"}`, "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := controllertest.Do(r, controllertest.JSONRequest(http.MethodPost, "/api/admin/categories", tt.body, tt.token))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	categories, err := catalog.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestCreateCategorySlugMatchesStorefront(t *testing.T) {
	r, catalog, _ := setup(t)

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodPost, "/api/admin/categories",
		`{"name":"Móveis e Decoração","slug":"Moveis e Decoracao"}`, controllertest.AdminToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env struct {
		Data models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "moveis-e-decoracao", env.Data.Slug)
	// the storefront stamps cards from the badge text, so the dropdown slug
	// must be what the badge slugifies to
	assert.Equal(t, search.Slugify(env.Data.Name), env.Data.Slug)

	_, err := catalog.GetCategoryBySlug(context.Background(), "moveis-e-decoracao")
	assert.NoError(t, err)
}

func TestDeleteCategoryKeepsProducts(t *testing.T) {
	r, catalog, activity := setup(t)
	moveis := catalog.AddCategory("Móveis", "moveis")
	chair := catalog.AddProduct(models.Product{Title: "Cadeira", Price: 50, CategoryID: &moveis.ID})

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodDelete, "/api/admin/categories/"+moveis.ID.String(), "", controllertest.AdminToken))
	require.Equal(t, http.StatusOK, w.Code)

	stored, ok := catalog.Product(chair.ID)
	require.True(t, ok)
	assert.Nil(t, stored.CategoryID)

	products, _ := catalog.ListProducts(context.Background(), services.ProductQuery{Category: "moveis"})
	assert.Empty(t, products)
	products, _ = catalog.ListProducts(context.Background(), services.ProductQuery{Category: "all"})
	assert.Len(t, products, 1)

	require.Len(t, activity.Entries, 1)
	assert.Equal(t, "Móveis", activity.Entries[0].ResourceName)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	r, _, _ := setup(t)

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodDelete, "/api/admin/categories/"+uuid.NewString(), "", controllertest.AdminToken))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = controllertest.Do(r, controllertest.JSONRequest(http.MethodDelete, "/api/admin/categories/moveis", "", controllertest.AdminToken))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
