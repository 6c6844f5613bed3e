package domain

import (
	"errors"
	"fmt"
)

// PermissionError indica que o token não tem os escopos necessários.
// Não falha o job: vira details.permission_issues.
type PermissionError struct {
	Code    int
	Message string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permissão insuficiente (código %d): %s", e.Code, e.Message)
}

// TransientFetchError cobre falhas de rede, rate limit e respostas inesperadas do Meta
type TransientFetchError struct {
	Code    int
	Message string
	Err     error
}

func (e *TransientFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("falha temporária ao buscar insights: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("falha temporária ao buscar insights (código %d): %s", e.Code, e.Message)
}

func (e *TransientFetchError) Unwrap() error {
	return e.Err
}

// StoreWriteError indica que um lote de upsert falhou
type StoreWriteError struct {
	Table string
	Chunk int
	Size  int
	Err   error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("erro ao gravar lote %d (%d registros) em %s: %v", e.Chunk, e.Size, e.Table, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// OrchestrationError é a única classe de erro que marca o job como failed
type OrchestrationError struct {
	JobID string
	Op    string
	Err   error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("%s (job %s): %v", e.Op, e.JobID, e.Err)
}

func (e *OrchestrationError) Unwrap() error {
	return e.Err
}

func IsPermissionError(err error) bool {
	var permErr *PermissionError
	return errors.As(err, &permErr)
}

func IsTransientFetchError(err error) bool {
	var fetchErr *TransientFetchError
	return errors.As(err, &fetchErr)
}
