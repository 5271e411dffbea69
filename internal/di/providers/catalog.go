package providers

import (
	"github.com/samber/do/v2"

	"github.com/chapterlog/chapterlog-server/internal/catalog/googlebooks"
	"github.com/chapterlog/chapterlog-server/internal/config"
	"github.com/chapterlog/chapterlog-server/internal/logger"
)

// CatalogClientHandle wraps the Google Books client with Shutdownable.
type CatalogClientHandle struct {
	*googlebooks.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCatalogClient provides the external book catalog client.
func ProvideCatalogClient(i do.Injector) (*CatalogClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.NewClient(googlebooks.Options{
		BaseURL: cfg.Catalog.BaseURL,
		APIKey:  cfg.Catalog.APIKey,
		Timeout: cfg.Catalog.Timeout,
	}, log.Logger)

	log.Info("Catalog client initialized", "base_url", cfg.Catalog.BaseURL)

	return &CatalogClientHandle{Client: client}, nil
}
