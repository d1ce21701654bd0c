package types

import "fmt"

// Error types reported in the "type" field of the error envelope
const (
	ErrorTypeAdminAuth       = "content.authorization.admin"
	ErrorTypeInput           = "content.validation.input"
	ErrorTypeLocale          = "content.validation.locale"
	ErrorTypeMailCredentials = "content.mail.credentials"
	ErrorTypeMailDelivery    = "content.mail.delivery"
	ErrorTypeVersion         = "content.version.unsupported"
	ErrorTypeUnknown         = "unknown"
)

// CustomError carries an HTTP status and an error type through Fiber's error handler
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Err     error  `json:"-"`
}

// NewCustomError wraps cause, which may be nil
func NewCustomError(code int, errorType, message string, cause error) *CustomError {
	return &CustomError{Code: code, Message: message, Type: errorType, Err: cause}
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s [type: %s]: %v", e.Code, e.Message, e.Type, e.Err)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}
