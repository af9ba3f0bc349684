package models

// Response structures

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Modal     *Modal `json:"modal,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// Modal is a dialog the admin UI shows for a failed action.
// A blocking modal must be dismissed before the form can be resubmitted.
type Modal struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Blocking bool   `json:"blocking"`
}

// Error codes returned by the view API
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeProductExists     = "PRODUCT_EXISTS"
	CodeBackend           = "BACKEND_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotFound          = "NOT_FOUND"
	CodeViewDismissed     = "VIEW_DISMISSED"
	CodeUnexpected        = "UNEXPECTED_RESPONSE"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeNotShippable      = "NOT_SHIPPABLE"
	CodeInternal          = "INTERNAL_ERROR"
)
