package app

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/deepjyoti31/spec10x/internal/middleware"
	"github.com/deepjyoti31/spec10x/internal/modules/ai"
	"github.com/deepjyoti31/spec10x/internal/modules/analysis"
	"github.com/deepjyoti31/spec10x/internal/modules/ask"
	"github.com/deepjyoti31/spec10x/internal/modules/auth"
	"github.com/deepjyoti31/spec10x/internal/modules/embedding"
	"github.com/deepjyoti31/spec10x/internal/modules/export"
	"github.com/deepjyoti31/spec10x/internal/modules/gateway"
	"github.com/deepjyoti31/spec10x/internal/modules/health"
	"github.com/deepjyoti31/spec10x/internal/modules/insight"
	"github.com/deepjyoti31/spec10x/internal/modules/interview"
	"github.com/deepjyoti31/spec10x/internal/modules/pipeline"
	"github.com/deepjyoti31/spec10x/internal/modules/qa"
	"github.com/deepjyoti31/spec10x/internal/modules/synthesis"
	"github.com/deepjyoti31/spec10x/internal/modules/theme"
	"github.com/deepjyoti31/spec10x/internal/modules/usage"
	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"github.com/deepjyoti31/spec10x/internal/pkg/storage"
	"github.com/deepjyoti31/spec10x/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	log := a.logger
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.Use(middleware.RateLimit(a.rc.Raw()))

	// Shared services
	taskSvc := taskqueue.NewService(a.rc)
	aiClient := ai.NewClient(a.cfg.AI)

	// Each component gets its own source; the components serialize their own
	// draws, but a rand.Rand must not be shared between them.
	seed := time.Now().UnixNano()
	extractorRng := rand.New(rand.NewSource(seed))
	embedderRng := rand.New(rand.NewSource(seed + 1))

	var store *storage.Uploader
	if a.cfg.Storage.Enable {
		up, err := storage.New(a.cfg.Storage)
		if err != nil {
			log.Warn("object storage disabled", zap.Error(err))
		} else {
			store = up
		}
	}

	extractor := analysis.NewExtractor(aiClient, a.cfg.AI.ExtractionModel, extractorRng, log)
	embedder := embedding.NewEmbedder(aiClient, embedderRng, a.cfg.AI.EmbeddingDimensions, log)
	embedSvc := embedding.NewService(db, embedder, log)
	synthSvc := synthesis.NewService(db, log)
	pipelineSvc := pipeline.NewService(db, taskSvc, a.hub, store, extractor, embedSvc, synthSvc, log)
	usageSvc := usage.NewService(db, a.cfg.Limits)
	qaSvc := qa.NewService(db, aiClient, embedder, a.cfg.AI.AnswerModel, log)

	// Versioned API
	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	usage.NewHandler(usageSvc, db).RegisterRoutes(api, authMW)
	interview.NewHandler(interview.NewService(db, store, pipelineSvc, usageSvc, log)).RegisterRoutes(api, authMW)
	insight.NewHandler(insight.NewService(db)).RegisterRoutes(api, authMW)
	theme.NewHandler(theme.NewService(db)).RegisterRoutes(api, authMW)
	ask.NewHandler(db, qaSvc, usageSvc, log).RegisterRoutes(api, authMW)
	export.NewHandler(db).RegisterRoutes(api, authMW)
	health.NewHandler(db, a.rc).RegisterRoutes(api)

	// Socket.IO event gateway lives outside the versioned prefix.
	gateway.RegisterRoutes(r.Group(""), a.hub)
}
