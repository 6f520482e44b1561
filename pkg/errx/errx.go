// Package errx provides typed, registry-backed errors that carry an HTTP
// status. Domain packages declare their codes once through a Registry and
// the transport layer maps an *Error to a response without string matching.
package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of its domain code.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code is a fully qualified error code, e.g. "CANDIDATE.NOT_FOUND".
type Code string

func (c Code) String() string { return string(c) }

// Error is the error value shared by every layer of the service.
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code so errors.Is works against registry
// values built with Registry.New.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail attaches a key/value pair to the error and returns it.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges details into the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// ToHTTPResponse renders the error as a JSON-friendly body.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error": e.Message,
		"code":  e.Code,
		"type":  e.Type,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// ============================================================================
// Registry
// ============================================================================

type definition struct {
	typ     Type
	status  int
	message string
}

// Registry holds the codes of one domain under a common prefix.
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. It panics on duplicates since codes are
// declared at package init.
func (r *Registry) Register(code string, t Type, status int, message string) Code {
	full := Code(r.prefix + "." + code)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: duplicate code %s", full))
	}
	r.defs[full] = definition{typ: t, status: status, message: message}
	return full
}

// New builds a fresh *Error for a registered code.
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       code,
		Type:       def.typ,
		Message:    def.message,
		HTTPStatus: def.status,
	}
}

// NewWithCause is New plus WithCause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// ============================================================================
// Helpers
// ============================================================================

// New creates an unregistered error of the given type.
func New(message string, t Type) *Error {
	return &Error{
		Code:       Code(t),
		Type:       t,
		Message:    message,
		HTTPStatus: StatusForType(t),
	}
}

// Wrap wraps err with a message and type. An existing *Error is returned
// unchanged so the original classification survives.
func Wrap(err error, message string, t Type) error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return New(message, t).WithCause(err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether err carries an *Error of type t.
func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

// IsCode reports whether err carries an *Error with the given code.
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// StatusForType is the default HTTP status of a type.
func StatusForType(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
