package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

type ResponsePermissions struct {
	Data []metadomain.Permission `json:"data"`
}

// GetPermissions lista os escopos concedidos ao token
func (c *MetaClient) GetPermissions(ctx context.Context, accessToken string) ([]metadomain.Permission, error) {
	params := url.Values{}
	params.Add("access_token", accessToken)

	reqURL := fmt.Sprintf("%s/me/permissions?%s", c.Cfg.Meta.URL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &domain.TransientFetchError{Message: "erro ao fazer a requisição", Err: err}
	}
	defer resp.Body.Close()

	body, err := c.HandleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response ResponsePermissions
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &domain.TransientFetchError{Message: "erro ao decodificar JSON de permissões", Err: err}
	}

	return response.Data, nil
}
