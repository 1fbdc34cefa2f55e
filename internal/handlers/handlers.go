package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"justforkidz/siteapi/internal/audit"
	"justforkidz/siteapi/internal/config"
	"justforkidz/siteapi/internal/repository"
	"justforkidz/siteapi/internal/service"
	"justforkidz/siteapi/internal/storage"
)

type HandlerSet struct {
	log     zerolog.Logger
	cfg     *config.AppConfig
	intake  *service.IntakeService
	leads   *service.LeadService
	gallery *service.GalleryService
	db      *pgxpool.Pool
	cache   *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	leadRepo := repository.NewLeadRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	orphans := audit.NewRecorder(cache, log)

	return HandlerSet{
		log:     log,
		cfg:     cfg,
		intake:  service.NewIntakeService(leadRepo, log),
		leads:   service.NewLeadService(leadRepo, log),
		gallery: service.NewGalleryService(galleryRepo, store, orphans, cfg.Storage.PathPrefix, log),
		db:      db,
		cache:   cache,
	}
}

// Register wires the public surface (intake + gallery feed) and the
// admin surface. The admin app is operated by a single trusted user;
// there is no auth layer in front of it.
func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		v1.POST("/leads", h.SubmitLead)
		v1.GET("/gallery", h.PublicGallery)

		admin := v1.Group("/admin")
		admin.GET("/leads", h.ListLeads)
		admin.PATCH("/leads/:id/status", h.UpdateLeadStatus)
		admin.GET("/summary", h.Summary)

		admin.GET("/gallery", h.ListGalleryImages)
		admin.POST("/gallery", h.UploadGalleryImages)
		admin.PUT("/gallery/:id", h.UpdateGalleryImage)
		admin.DELETE("/gallery/:id", h.DeleteGalleryImage)
	}
}
