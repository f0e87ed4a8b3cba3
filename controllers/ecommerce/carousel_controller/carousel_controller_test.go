package carousel_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desapego-dos-martins/desapego-backend/controllers/controllertest"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

func TestGetCarouselImages(t *testing.T) {
	carousel := &controllertest.Carousel{}
	_, err := carousel.AddCarouselImages(context.Background(), []services.UploadedImage{
		{URL: "https://res.cloudinary.test/a.webp", PublicID: "desapego/carousel/a"},
		{URL: "https://res.cloudinary.test/b.webp", PublicID: "desapego/carousel/b"},
	})
	require.NoError(t, err)

	r := controllertest.Router()
	r.GET("/api/carousel", NewHandler(carousel, zerolog.Nop()).GetCarouselImages)

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodGet, "/api/carousel", "", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []models.CarouselImage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 2)
	assert.Equal(t, "https://res.cloudinary.test/a.webp", env.Data[0].ImageURL)
	assert.Equal(t, 1, env.Data[1].Position)
	assert.NotContains(t, w.Body.String(), "public_id")
}

func TestGetCarouselImagesEmptyAndFailing(t *testing.T) {
	carousel := &controllertest.Carousel{}
	r := controllertest.Router()
	r.GET("/api/carousel", NewHandler(carousel, zerolog.Nop()).GetCarouselImages)

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodGet, "/api/carousel", "", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)

	carousel.Err = errors.New("db down")
	w = controllertest.Do(r, controllertest.JSONRequest(http.MethodGet, "/api/carousel", "", ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
