package syncing

import (
	"errors"
	"strings"

	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

// Erros específicos para o contexto de sincronização
var (
	// Erros de validação
	ErrUserIDRequired      = errors.New("user ID is required")
	ErrAdAccountIDRequired = errors.New("ad account ID is required")
	ErrEntityIDRequired    = errors.New("entity ID is required when entity type is set")
	ErrAccountNotFound     = errors.New("ad account not found")
	ErrMissingAccessToken  = errors.New("ad account has no access token")

	// Erros do ciclo de vida do job
	ErrJobNotFound       = errors.New("sync job not found")
	ErrInvalidTransition = errors.New("invalid sync job transition")
)

// isPermissionFailure reconhece erros de permissão tipados e também os que só
// trazem a indicação na mensagem.
func isPermissionFailure(err error) bool {
	if err == nil {
		return false
	}
	if domain.IsPermissionError(err) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "permission")
}
