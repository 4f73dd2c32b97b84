package paapiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	amazondomain "github.com/vfg2006/product-feed-api/infrastructure/integrator/amazon/domain"
)

const (
	getItemsPath   = "/paapi5/getitems"
	getItemsTarget = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.GetItems"
)

func (c *PAAPIClient) GetItems(ctx context.Context, itemIDs []string) (*amazondomain.GetItemsResponse, error) {
	request := amazondomain.GetItemsRequest{
		ItemIds:     itemIDs,
		PartnerTag:  c.cfg.Amazon.PartnerTag,
		PartnerType: c.cfg.Amazon.PartnerType,
		Marketplace: c.cfg.Amazon.Marketplace,
		Resources:   amazondomain.DefaultResources,
	}

	// A serialização de struct é determinística: os mesmos bytes são
	// assinados e enviados
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar o corpo da requisição GetItems")
	}

	url := fmt.Sprintf("https://%s%s", c.cfg.Amazon.Host, getItemsPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição GetItems")
	}

	req.Host = c.cfg.Amazon.Host
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", getItemsTarget)

	c.signer.Sign(req, payload, time.Now())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, normalizeTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, normalizeTransportError(err)
	}

	// 404 com lista de Errors significa que nenhum dos itens está acessível:
	// é um desfecho definitivo item a item, não uma falha da requisição
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		reqErr := normalizeResponseError(resp.StatusCode, body)

		logrus.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"error_code":  reqErr.Code,
			"item_count":  len(itemIDs),
		}).Warn("PA-API: requisição GetItems falhou")

		return nil, reqErr
	}

	var response amazondomain.GetItemsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta GetItems")
	}

	return &response, nil
}
