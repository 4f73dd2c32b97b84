package paapiclient

import (
	"context"
	"net/http"

	amazondomain "github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/product-feed-api/internal/config"
)

type Client interface {
	GetItems(ctx context.Context, itemIDs []string) (*amazondomain.GetItemsResponse, error)
}

type PAAPIClient struct {
	httpClient *http.Client
	cfg        *config.Config
	signer     *Signer
}

func NewClient(cfg *config.Config) Client {
	return &PAAPIClient{
		httpClient: &http.Client{
			Timeout: cfg.Amazon.Timeout(),
		},
		cfg:    cfg,
		signer: NewSigner(cfg.Amazon.AccessKey, cfg.Amazon.SecretKey, cfg.Amazon.Region),
	}
}
