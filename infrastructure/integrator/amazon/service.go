package amazon

import (
	"context"

	amazondomain "github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/domain"
	"github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/paapiclient"
	"github.com/vfg2006/product-feed-api/internal/config"
)

type AmazonIntegrator interface {
	GetItemsByASINs(ctx context.Context, asins []string) (*amazondomain.GetItemsResponse, error)
}

type AmazonService struct {
	cfg    *config.Config
	Client paapiclient.Client
}

func New(cfg *config.Config, client paapiclient.Client) AmazonIntegrator {
	return &AmazonService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *AmazonService) GetItemsByASINs(ctx context.Context, asins []string) (*amazondomain.GetItemsResponse, error) {
	resp, err := s.Client.GetItems(ctx, asins)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
