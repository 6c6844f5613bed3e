package metadomain

import "strings"

// PermissionErrorCode é o código do Graph API para permissão insuficiente
const PermissionErrorCode = 200

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error *ErrorDetails `json:"error,omitempty"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsPermissionError verifica se o token não tem os escopos exigidos.
// Além do código 200, o Meta usa 10 e a faixa 200-299 para permissões.
func (e *ErrorDetails) IsPermissionError() bool {
	if e == nil {
		return false
	}
	if e.Code == 10 || (e.Code >= PermissionErrorCode && e.Code <= 299) {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "permission")
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorDetails) IsTokenExpired() bool {
	if e == nil {
		return false
	}
	// 190 é "token expirado"; subcódigos 460, 463 e 467 também indicam token inválido
	return e.Code == 190 ||
		(e.Type == "OAuthException" && (e.ErrorSubcode == 460 || e.ErrorSubcode == 463 || e.ErrorSubcode == 467))
}

// IsRateLimited cobre os códigos de limite de chamadas do Graph API
func (e *ErrorDetails) IsRateLimited() bool {
	if e == nil {
		return false
	}
	switch e.Code {
	case 4, 17, 32, 613, 80000, 80003, 80004:
		return true
	}
	return false
}
