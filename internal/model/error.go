package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeProductSoldOut    = "PRODUCT_SOLD_OUT"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductSoldOut    = NewDomainError(ErrCodeProductSoldOut, "Product sold out")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Invalid quantity")
	ErrTransactionFailed = NewDomainError(ErrCodeTransactionFailed, "Transaction failed")
)
