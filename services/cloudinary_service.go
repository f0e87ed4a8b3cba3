package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/search"
)

const (
	// Incoming transformation: originals are capped at 1200px and stored as webp q80.
	productTransformation = "c_limit,w_1200,q_80"
	productFormat         = "webp"
	// Eager 256px square thumbnail for cards and notification icons.
	thumbnailTransformation = "c_fill,g_auto,w_256,h_256,q_auto,f_webp"

	ProductsFolder = "desapego/products"
	CarouselFolder = "desapego/carousel"
)

type UploadedImage struct {
	URL      string
	ThumbURL string
	PublicID string
}

// ImageStore keeps product photos and carousel slides.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, name, folder string) (UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
	DeleteFolder(ctx context.Context, folder string) error
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
	log zerolog.Logger
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string, log zerolog.Logger) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld, log: log}, nil
}

// ProductFolder is where all images of one product live.
func ProductFolder(productID string) string {
	return path.Join(ProductsFolder, productID)
}

func (s *CloudinaryService) Upload(ctx context.Context, file io.Reader, name, folder string) (UploadedImage, error) {
	unique := true
	overwrite := false
	params := uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		Transformation: productTransformation,
		Format:         productFormat,
		Eager:          thumbnailTransformation,
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	}
	if name != "" {
		params.PublicID = publicIDFromFilename(name)
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return UploadedImage{}, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return UploadedImage{}, fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return UploadedImage{}, fmt.Errorf("upload successful but no URL returned")
	}

	img := UploadedImage{URL: result.SecureURL, ThumbURL: result.SecureURL, PublicID: result.PublicID}
	if len(result.Eager) > 0 && result.Eager[0].SecureURL != "" {
		img.ThumbURL = result.Eager[0].SecureURL
	}
	return img, nil
}

// UploadAll uploads every file of a multipart form field in order.
func UploadAll(ctx context.Context, store ImageStore, files []*multipart.FileHeader, folder string) ([]UploadedImage, error) {
	images := make([]UploadedImage, 0, len(files))
	for i, fh := range files {
		img, err := uploadOne(ctx, store, fh, fmt.Sprintf("%02d_%s", i, fh.Filename), folder)
		if err != nil {
			return images, err
		}
		images = append(images, img)
	}
	return images, nil
}

func uploadOne(ctx context.Context, store ImageStore, fh *multipart.FileHeader, name, folder string) (UploadedImage, error) {
	f, err := fh.Open()
	if err != nil {
		return UploadedImage{}, fmt.Errorf("failed to open file %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return store.Upload(ctx, f, name, folder)
}

// Delete removes one asset. An asset that is already gone is not an error.
func (s *CloudinaryService) Delete(ctx context.Context, publicID string) error {
	invalidate := true
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
		Invalidate:   &invalidate,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete image %s: %s", publicID, result.Error.Message)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("failed to delete image %s: %s", publicID, result.Result)
	}
	return nil
}

// DeleteFolder removes every asset under folder, then the folder itself.
func (s *CloudinaryService) DeleteFolder(ctx context.Context, folder string) error {
	if _, err := s.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{folder},
	}); err != nil {
		return fmt.Errorf("failed to delete assets in folder %s: %w", folder, err)
	}

	// Cloudinary usually drops empty folders on its own.
	if _, err := s.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folder}); err != nil {
		s.log.Debug().Err(err).Str("folder", folder).Msg("delete folder")
	}
	return nil
}

// publicIDFromFilename drops the extension, accents and anything Cloudinary would reject.
func publicIDFromFilename(name string) string {
	base := search.Normalize(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		}
		return -1
	}, base)
}
