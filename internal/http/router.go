package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	httpH "github.com/yungbote/knowledge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/knowledge-backend/internal/http/middleware"
	"github.com/yungbote/knowledge-backend/internal/observability"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics
	// TracerProvider backs the otelgin server spans; nil uses the global one.
	TracerProvider trace.TracerProvider

	HealthHandler    *httpH.HealthHandler
	DatasetHandler   *httpH.DatasetHandler
	DocumentHandler  *httpH.DocumentHandler
	KnowledgeHandler *httpH.KnowledgeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "knowledge-backend"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	var otelOpts []otelgin.Option
	if cfg.TracerProvider != nil {
		otelOpts = append(otelOpts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	r.Use(otelgin.Middleware(serviceName, otelOpts...))
	r.Use(httpMW.RequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api/v1")
	{
		// Datasets
		if cfg.DatasetHandler != nil {
			api.POST("/datasets", cfg.DatasetHandler.Create)
			api.GET("/datasets", cfg.DatasetHandler.List)
			api.GET("/datasets/:id", cfg.DatasetHandler.Get)
			api.PUT("/datasets/:id", cfg.DatasetHandler.Update)
			api.PATCH("/datasets/:id", cfg.DatasetHandler.Update)
			api.DELETE("/datasets/:id", cfg.DatasetHandler.Delete)
		}

		// Documents
		if cfg.DocumentHandler != nil {
			api.POST("/documents", cfg.DocumentHandler.Create)
			api.GET("/documents", cfg.DocumentHandler.List)
			api.GET("/documents/:id", cfg.DocumentHandler.Get)
			api.PUT("/documents/:id", cfg.DocumentHandler.Update)
			api.PATCH("/documents/:id", cfg.DocumentHandler.Update)
			api.DELETE("/documents/:id", cfg.DocumentHandler.Delete)
		}

		// Knowledge
		if cfg.KnowledgeHandler != nil {
			api.POST("/knowledges", cfg.KnowledgeHandler.Create)
			api.GET("/knowledges", cfg.KnowledgeHandler.List)
			api.GET("/knowledges/:id", cfg.KnowledgeHandler.Get)
			api.PUT("/knowledges/:id", cfg.KnowledgeHandler.Update)
			api.PATCH("/knowledges/:id", cfg.KnowledgeHandler.Update)
			api.DELETE("/knowledges/:id", cfg.KnowledgeHandler.Delete)
		}
	}

	return r
}
