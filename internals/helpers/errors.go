package helper

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindDuplicate
	KindReference
	KindReferencedElsewhere
	KindAuthentication
	KindAuthorization
	KindUpstreamStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindReference:
		return "reference"
	case KindReferencedElsewhere:
		return "referenced_elsewhere"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindUpstreamStorage:
		return "upstream_storage"
	default:
		return "internal"
	}
}

func (k ErrorKind) Status() int {
	switch k {
	case KindValidation, KindDuplicate, KindReference, KindReferencedElsewhere:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAuthorization:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func (k ErrorKind) Title() string {
	switch k {
	case KindValidation:
		return "Validation error"
	case KindNotFound:
		return "Not found"
	case KindDuplicate:
		return "Duplicate entry"
	case KindReference:
		return "Invalid reference"
	case KindReferencedElsewhere:
		return "Cannot delete"
	case KindAuthentication:
		return "Authentication failed"
	case KindAuthorization:
		return "Access denied"
	case KindUpstreamStorage:
		return "Storage error"
	default:
		return "Server error"
	}
}

// AppError is the typed failure that repositories, services and guards
// return. The HTTP boundary turns it into a status code via Kind.
type AppError struct {
	Kind    ErrorKind
	Title   string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *AppError) Unwrap() error { return e.Err }

// WithTitle returns a copy carrying a response title.
func (e *AppError) WithTitle(title string) *AppError {
	cp := *e
	cp.Title = title
	return &cp
}

func (e *AppError) ResponseTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Kind.Title()
}

func NewValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewDuplicateError(msg string) *AppError {
	return &AppError{Kind: KindDuplicate, Message: msg}
}

func NewReferenceError(msg string) *AppError {
	return &AppError{Kind: KindReference, Message: msg}
}

func NewReferencedElsewhereError(msg string) *AppError {
	return &AppError{Kind: KindReferencedElsewhere, Message: msg}
}

func NewAuthenticationError(msg string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: msg}
}

func NewAuthorizationError(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func NewUpstreamStorageError(msg string, err error) *AppError {
	return &AppError{Kind: KindUpstreamStorage, Message: msg, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf reports the kind of err. *fiber.Error codes are mapped back so
// framework errors (body parse, 404 route) render through the same path.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge, fiber.StatusUnsupportedMediaType:
			return KindValidation
		case fiber.StatusNotFound:
			return KindNotFound
		case fiber.StatusUnauthorized:
			return KindAuthentication
		case fiber.StatusForbidden:
			return KindAuthorization
		}
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
