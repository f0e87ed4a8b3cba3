package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/cache"
	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/notification_controller"
	"github.com/desapego-dos-martins/desapego-backend/logger"
	"github.com/desapego-dos-martins/desapego-backend/metrics"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/push"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// app holds every long-lived dependency the router needs.
type app struct {
	catalog     services.Catalog
	carousel    services.Carousel
	activity    services.ActivityLog
	images      services.ImageStore
	auth        services.Authenticator
	pushStore   push.Store
	broadcaster notification_controller.Broadcaster
	limiter     middleware.WindowCounter
	metrics     *metrics.Metrics

	closers []func()
}

func newApp(ctx context.Context, cfg config.Config, log zerolog.Logger) (*app, error) {
	a := &app{metrics: metrics.New()}

	startCtx, cancel := config.WithTimeout(ctx)
	defer cancel()

	db, err := config.NewDatabase(startCtx, cfg, logger.Component("database"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	if err := config.Migrate(db.Gorm); err != nil {
		a.Close()
		return nil, err
	}

	rdb, err := config.NewRedis(startCtx, cfg.RedisURL)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	a.limiter = middleware.NewRedisCounter(rdb, logger.Component("ratelimit"))

	if a.auth, err = newAuthenticator(cfg); err != nil {
		a.Close()
		return nil, err
	}

	images, err := services.NewCloudinaryService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, logger.Component("images"))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.images = images

	categories := cache.NewCategoryCache(cfg.CategoryCacheTTL)
	a.catalog = services.NewCatalogService(db.Gorm, db.Pool, categories, logger.Component("catalog"))
	a.activity = services.NewActivityLogService(db.Gorm, logger.Component("activity"))
	a.carousel = services.NewCarouselService(db.Gorm, logger.Component("carousel"))

	store := push.NewGormStore(db.Gorm)
	a.pushStore = store
	a.broadcaster = newBroadcaster(cfg, store, a.metrics, log)

	return a, nil
}

// newAuthenticator prefers verifying tokens locally and falls back to asking
// Supabase, so tokens signed with a rotated secret still work.
func newAuthenticator(cfg config.Config) (services.Authenticator, error) {
	var chain services.ChainAuthenticator
	if cfg.SupabaseJWTSecret != "" {
		jwtAuth, err := services.NewJWTAuthenticator(cfg.SupabaseJWTSecret)
		if err != nil {
			return nil, err
		}
		chain = append(chain, jwtAuth)
	}
	if cfg.SupabaseURL != "" {
		client, err := config.NewSupabase(cfg)
		if err != nil {
			return nil, err
		}
		chain = append(chain, services.NewSupabaseAuthenticator(client))
	}
	if len(chain) == 0 {
		return nil, errors.New("no admin authentication configured: set SUPABASE_JWT_SECRET or SUPABASE_URL")
	}
	return chain, nil
}

var errPushDisabled = errors.New("push notifications are not configured")

type disabledBroadcaster struct{}

func (disabledBroadcaster) Broadcast(context.Context, push.Message) (push.Result, error) {
	return push.Result{}, errPushDisabled
}

func newBroadcaster(cfg config.Config, store push.Store, recorder push.Recorder, log zerolog.Logger) notification_controller.Broadcaster {
	if !cfg.PushEnabled() {
		log.Warn().Msg("VAPID keys missing, push broadcasts disabled")
		return disabledBroadcaster{}
	}
	sender := push.NewWebPushSender(push.VAPIDConfig{
		PublicKey:  cfg.VAPIDPublicKey,
		PrivateKey: cfg.VAPIDPrivateKey,
		Subject:    cfg.VAPIDSubject,
		TTL:        push.DefaultTTL,
	}, &http.Client{Timeout: cfg.PushTimeout})

	return push.NewBroadcaster(store, sender,
		push.WithConcurrency(cfg.PushConcurrency),
		push.WithDeliveryTimeout(cfg.PushTimeout),
		push.WithLogger(logger.Component("push")),
		push.WithRecorder(recorder),
	)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
