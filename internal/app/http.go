package app

import (
	kbhttp "github.com/yungbote/knowledge-backend/internal/http"
	"github.com/yungbote/knowledge-backend/internal/http/handlers"
	"github.com/yungbote/knowledge-backend/internal/observability"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Dataset   *handlers.DatasetHandler
	Document  *handlers.DocumentHandler
	Knowledge *handlers.KnowledgeHandler
}

func wireHandlers(log *logger.Logger, uc UseCases, db handlers.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    handlers.NewHealthHandler(log, db),
		Dataset:   handlers.NewDatasetHandler(log, uc.Datasets),
		Document:  handlers.NewDocumentHandler(log, uc.Documents),
		Knowledge: handlers.NewKnowledgeHandler(log, uc.Knowledges),
	}
}

func wireServer(cfg *Config, log *logger.Logger, h Handlers, metrics *observability.Metrics, tracing *observability.Tracing) *kbhttp.Server {
	return kbhttp.NewServer(
		kbhttp.ServerConfig{
			Addr:              cfg.HTTP.Addr,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
			ShutdownTimeout:   cfg.HTTP.ShutdownTimeout.Duration,
		},
		kbhttp.RouterConfig{
			Log:              log,
			ServiceName:      cfg.Otel.ServiceName,
			CORSOrigins:      cfg.HTTP.CORSOrigins,
			Metrics:          metrics,
			TracerProvider:   tracing.Provider(),
			HealthHandler:    h.Health,
			DatasetHandler:   h.Dataset,
			DocumentHandler:  h.Document,
			KnowledgeHandler: h.Knowledge,
		},
	)
}
