package product_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desapego-dos-martins/desapego-backend/controllers/controllertest"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

type fixture struct {
	router   *gin.Engine
	catalog  *controllertest.Catalog
	images   *controllertest.Images
	activity *controllertest.Activity
}

func setup(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		catalog:  controllertest.NewCatalog(),
		images:   &controllertest.Images{},
		activity: &controllertest.Activity{},
	}
	h := NewHandler(f.catalog, f.images, zerolog.Nop())

	f.router = controllertest.Router()
	admin := f.router.Group("/api/admin")
	admin.Use(middleware.AdminAuth(controllertest.Auth{}, zerolog.Nop(), middleware.EnvelopeUnauthorized))
	admin.Use(middleware.ActivityLogging(f.activity))
	admin.POST("/products", h.CreateProduct)
	admin.PATCH("/products/:id/status", h.UpdateProductStatus)
	admin.DELETE("/products/:id", h.DeleteProduct)
	return f
}

func createRequest(fields map[string]string, files map[string][]byte, token string) *http.Request {
	body, contentType := controllertest.Multipart(fields, files)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func productFrom(t *testing.T, body []byte) models.Product {
	t.Helper()
	var env struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Data
}

func TestCreateProduct(t *testing.T) {
	f := setup(t)
	category := f.catalog.AddCategory("Esportes", "esportes")

	w := controllertest.Do(f.router, createRequest(
		map[string]string{"title": "  Bicicleta aro 29 ", "price": "300.50", "category_id": category.ID.String(), "featured": "true"},
		map[string][]byte{"frente.jpg": []byte("jpeg-1"), "lado.jpg": []byte("jpeg-2")},
		controllertest.AdminToken,
	))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	p := productFrom(t, w.Body.Bytes())
	assert.Equal(t, "Bicicleta aro 29", p.Title)
	assert.Equal(t, 300.50, p.Price)
	assert.True(t, p.Featured)
	assert.Equal(t, models.StatusAvailable, p.Status)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, category.ID, *p.CategoryID)

	require.Len(t, p.Images, 2)
	assert.True(t, p.Images[0].IsPrimary)
	assert.False(t, p.Images[1].IsPrimary)
	assert.Contains(t, p.Images[0].ImageURL, "00_frente.jpg")
	assert.NotEmpty(t, p.Images[0].ThumbURL)

	folder := services.ProductFolder(p.ID.String())
	require.Len(t, f.images.Uploaded, 2)
	assert.True(t, strings.HasPrefix(f.images.Uploaded[0], folder+"/"))

	_, stored := f.catalog.Product(p.ID)
	assert.True(t, stored)

	require.Len(t, f.activity.Entries, 1)
	assert.Equal(t, models.ActionCreateProduct, f.activity.Entries[0].Action)
	assert.Equal(t, p.ID.String(), f.activity.Entries[0].ResourceID)
}

func TestCreateProductWithoutImages(t *testing.T) {
	f := setup(t)

	w := controllertest.Do(f.router, createRequest(map[string]string{"title": "Luminária", "price": "80"}, nil, controllertest.AdminToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	p := productFrom(t, w.Body.Bytes())
	assert.Nil(t, p.CategoryID)
	assert.Empty(t, p.Images)
	assert.Empty(t, f.images.Uploaded)
}

func TestCreateProductUnknownCategoryCleansUp(t *testing.T) {
	f := setup(t)

	w := controllertest.Do(f.router, createRequest(
		map[string]string{"title": "Mesa", "price": "450", "category_id": uuid.NewString()},
		map[string][]byte{"mesa.png": []byte("png")},
		controllertest.AdminToken,
	))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, f.images.Uploaded, 1)
	require.Len(t, f.images.Deleted, 1)
	assert.True(t, strings.HasPrefix(f.images.Uploaded[0], f.images.Deleted[0]+"/"))

	require.Len(t, f.activity.Entries, 0)
}

func TestCreateProductUploadFailure(t *testing.T) {
	f := setup(t)
	f.images.UploadErr = errors.New("cloudinary unavailable")

	w := controllertest.Do(f.router, createRequest(
		map[string]string{"title": "Mesa", "price": "450"},
		map[string][]byte{"mesa.png": []byte("png")},
		controllertest.AdminToken,
	))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, f.images.Deleted, 1)

	products, _ := f.catalog.ListProducts(context.Background(), services.ProductQuery{IncludeHidden: true})
	assert.Empty(t, products)
}

func TestCreateProductValidation(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"missing title", map[string]string{"price": "10"}},
		{"missing price", map[string]string{"title": "Mesa"}},
		{"negative price", map[string]string{"title": "Mesa", "price": "-1"}},
		{"bad category", map[string]string{"title": "Mesa", "price": "10", "category_id": "moveis"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := controllertest.Do(f.router, createRequest(tt.fields, nil, controllertest.AdminToken))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	f := setup(t)

	w := controllertest.Do(f.router, createRequest(map[string]string{"title": "Mesa", "price": "10"}, nil, ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Error)
}

func TestUpdateProductStatus(t *testing.T) {
	f := setup(t)
	p := f.catalog.AddProduct(models.Product{Title: "Bicicleta aro 29", Price: 300})
	target := "/api/admin/products/" + p.ID.String() + "/status"

	w := controllertest.Do(f.router, controllertest.JSONRequest(http.MethodPatch, target, `{"status":"sold"}`, controllertest.AdminToken))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.StatusSold, productFrom(t, w.Body.Bytes()).Status)

	stored, _ := f.catalog.Product(p.ID)
	assert.Equal(t, models.StatusSold, stored.Status)

	require.Len(t, f.activity.Entries, 1)
	assert.JSONEq(t, `{"before":{"status":"available"},"after":{"status":"sold"}}`, string(f.activity.Entries[0].Changes))
}

func TestUpdateProductStatusErrors(t *testing.T) {
	f := setup(t)
	p := f.catalog.AddProduct(models.Product{Title: "Mesa", Price: 10})

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"unknown status", "/api/admin/products/" + p.ID.String() + "/status", `{"status":"reserved"}`, http.StatusBadRequest},
		{"bad id", "/api/admin/products/mesa/status", `{"status":"sold"}`, http.StatusBadRequest},
		{"unknown product", "/api/admin/products/" + uuid.NewString() + "/status", `{"status":"sold"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := controllertest.Do(f.router, controllertest.JSONRequest(http.MethodPatch, tt.target, tt.body, controllertest.AdminToken))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	stored, _ := f.catalog.Product(p.ID)
	assert.Equal(t, models.StatusAvailable, stored.Status)
}

func TestDeleteProduct(t *testing.T) {
	f := setup(t)
	p := f.catalog.AddProduct(models.Product{
		Title:  "Mesa",
		Price:  450,
		Images: []models.ProductImage{{ImageURL: "https://img/1.webp", IsPrimary: true}},
	})

	w := controllertest.Do(f.router, controllertest.JSONRequest(http.MethodDelete, "/api/admin/products/"+p.ID.String(), "", controllertest.AdminToken))
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := f.catalog.Product(p.ID)
	assert.False(t, ok)
	assert.Equal(t, []string{services.ProductFolder(p.ID.String())}, f.images.Deleted)

	require.Len(t, f.activity.Entries, 1)
	assert.Equal(t, models.ActionDeleteProduct, f.activity.Entries[0].Action)
	assert.Equal(t, "Mesa", f.activity.Entries[0].ResourceName)

	w = controllertest.Do(f.router, controllertest.JSONRequest(http.MethodDelete, "/api/admin/products/"+p.ID.String(), "", controllertest.AdminToken))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, f.activity.Entries, 1)
}
