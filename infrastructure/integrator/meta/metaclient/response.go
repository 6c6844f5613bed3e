package metaclient

import (
	"fmt"
	"io"
	"net/http"

	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

// HandleResponse lê o corpo da resposta e converte o envelope de erro do Meta
// em PermissionError ou TransientFetchError.
func (c *MetaClient) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransientFetchError{Message: "erro ao ler resposta do Meta", Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == nil {
		return nil, &domain.TransientFetchError{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("status %d inesperado: %s", resp.StatusCode, truncate(string(body), 200)),
		}
	}

	return nil, ClassifyError(errResp.Error)
}

// ClassifyError converte o erro do Graph API no erro de domínio correspondente
func ClassifyError(details *metadomain.ErrorDetails) error {
	if details.IsPermissionError() {
		return &domain.PermissionError{Code: details.Code, Message: details.Message}
	}
	return &domain.TransientFetchError{Code: details.Code, Message: details.Message}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
