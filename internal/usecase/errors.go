package usecase

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidRule       = "INVALID_RULE"
	CodeLeadLocked        = "LEAD_LOCKED"
	CodeHistoryFetch      = "HISTORY_FETCH_FAILED"
	CodeGatewaySendFailed = "GATEWAY_SEND_FAILED"
)

// ErrLeadLocked indica que outra execução já está processando o lead.
var ErrLeadLocked = &DomainError{Code: CodeLeadLocked, Message: "lead is being processed by another pass"}

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError embrulha falhas de colaboradores externos (banco, gateway, LLM).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode devolve o Code de um DomainError/TechnicalError, ou "UNKNOWN".
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return "UNKNOWN"
}
