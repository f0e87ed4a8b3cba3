package carousel_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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
	carousel *controllertest.Carousel
	images   *controllertest.Images
	activity *controllertest.Activity
}

func setup(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		carousel: &controllertest.Carousel{},
		images:   &controllertest.Images{},
		activity: &controllertest.Activity{},
	}
	h := NewHandler(f.carousel, f.images, zerolog.Nop())

	f.router = controllertest.Router()
	admin := f.router.Group("/api/admin")
	admin.Use(middleware.AdminAuth(controllertest.Auth{}, zerolog.Nop(), middleware.EnvelopeUnauthorized))
	admin.Use(middleware.ActivityLogging(f.activity))
	admin.POST("/carousel", h.AddCarouselImages)
	admin.POST("/carousel/remove", h.RemoveCarouselImage)
	return f
}

func uploadRequest(files map[string][]byte, token string) *http.Request {
	body, contentType := controllertest.Multipart(nil, files)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/carousel", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAddCarouselImages(t *testing.T) {
	f := setup(t)

	w := controllertest.Do(f.router, uploadRequest(map[string][]byte{
		"banner.jpg": []byte("jpeg-1"),
		"promo.png":  []byte("png-1"),
	}, controllertest.AdminToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env struct {
		Data []models.CarouselImage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 2)
	assert.Contains(t, env.Data[0].ImageURL, services.CarouselFolder+"/00_banner.jpg")
	assert.Equal(t, 0, env.Data[0].Position)
	assert.Equal(t, 1, env.Data[1].Position)

	require.Len(t, f.activity.Entries, 1)
	assert.Equal(t, models.ActionAddCarouselImages, f.activity.Entries[0].Action)
	assert.Equal(t, models.ResourceTypeCarousel, f.activity.Entries[0].ResourceType)
}

func TestAddCarouselImagesErrors(t *testing.T) {
	tooMany := map[string][]byte{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		tooMany[name+".jpg"] = []byte(name)
	}

	tests := []struct {
		name  string
		files map[string][]byte
		token string
		want  int
	}{
		{"no token", map[string][]byte{"a.jpg": []byte("a")}, "", http.StatusUnauthorized},
		{"no files", nil, controllertest.AdminToken, http.StatusBadRequest},
		{"too many files", tooMany, controllertest.AdminToken, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			w := controllertest.Do(f.router, uploadRequest(tt.files, tt.token))
			assert.Equal(t, tt.want, w.Code)
			assert.Empty(t, f.images.Uploaded)
		})
	}
}

func TestAddCarouselImagesSaveFailureDeletesUploads(t *testing.T) {
	f := setup(t)
	f.carousel.Err = errors.New("db down")

	w := controllertest.Do(f.router, uploadRequest(map[string][]byte{"banner.jpg": []byte("jpeg")}, controllertest.AdminToken))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, f.images.Uploaded, f.images.Deleted)
	assert.Empty(t, f.activity.Entries)
}

func TestRemoveCarouselImage(t *testing.T) {
	f := setup(t)
	slides, err := f.carousel.AddCarouselImages(context.Background(), []services.UploadedImage{
		{URL: "https://res.cloudinary.test/desapego/carousel/a.webp", PublicID: "desapego/carousel/a"},
		{URL: "https://res.cloudinary.test/desapego/carousel/b.webp", PublicID: "desapego/carousel/b"},
	})
	require.NoError(t, err)

	w := controllertest.Do(f.router, controllertest.JSONRequest(http.MethodPost, "/api/admin/carousel/remove",
		`{"imageUrl":"https://res.cloudinary.test/desapego/carousel/a.webp"}`, controllertest.AdminToken))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, []string{"desapego/carousel/a"}, f.images.Deleted)
	left, err := f.carousel.ListCarouselImages(context.Background())
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, slides[1].ID, left[0].ID)

	require.Len(t, f.activity.Entries, 1)
	assert.Equal(t, models.ActionRemoveCarouselImage, f.activity.Entries[0].Action)
	assert.Equal(t, slides[0].ID.String(), f.activity.Entries[0].ResourceID)
}

func TestRemoveCarouselImageErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		token string
		want  int
	}{
		{"no token", `{"imageUrl":"https://res.cloudinary.test/a.webp"}`, "", http.StatusUnauthorized},
		{"missing url", `{}`, controllertest.AdminToken, http.StatusBadRequest},
		{"not a url", `{"imageUrl":"banner"}`, controllertest.AdminToken, http.StatusBadRequest},
		{"unknown slide", `{"imageUrl":"https://res.cloudinary.test/missing.webp"}`, controllertest.AdminToken, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			w := controllertest.Do(f.router, controllertest.JSONRequest(http.MethodPost, "/api/admin/carousel/remove", tt.body, tt.token))
			assert.Equal(t, tt.want, w.Code)
			assert.Empty(t, f.images.Deleted)
		})
	}
}

func TestRemoveCarouselImageKeepsGoingWhenAssetDeleteFails(t *testing.T) {
	f := setup(t)
	_, err := f.carousel.AddCarouselImages(context.Background(), []services.UploadedImage{
		{URL: "https://res.cloudinary.test/a.webp", PublicID: "desapego/carousel/a"},
	})
	require.NoError(t, err)
	f.images.DeleteErr = errors.New("cloudinary unavailable")

	w := controllertest.Do(f.router, controllertest.JSONRequest(http.MethodPost, "/api/admin/carousel/remove",
		`{"imageUrl":"https://res.cloudinary.test/a.webp"}`, controllertest.AdminToken))
	assert.Equal(t, http.StatusOK, w.Code)

	left, err := f.carousel.ListCarouselImages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, left)
}
