package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Personnel errors
var (
	ErrWorkerNotFound      = fmt.Errorf("worker %w", ErrNotFound)
	ErrContractNotFound    = fmt.Errorf("contract %w", ErrNotFound)
	ErrAffiliationNotFound = fmt.Errorf("affiliation %w", ErrNotFound)
)

// Catalog and vigency record errors
var (
	ErrCourseTypeNotFound    = fmt.Errorf("course type %w", ErrNotFound)
	ErrEquipmentTypeNotFound = fmt.Errorf("equipment type %w", ErrNotFound)
	ErrDocumentTypeNotFound  = fmt.Errorf("document type %w", ErrNotFound)
	ErrCourseNotFound        = fmt.Errorf("course %w", ErrNotFound)
	ErrIssuanceNotFound      = fmt.Errorf("equipment issuance %w", ErrNotFound)
	ErrDocumentNotFound      = fmt.Errorf("document %w", ErrNotFound)
	ErrInvalidStatus         = fmt.Errorf("%w: unknown status", ErrInvalidInput)
)

// Inventory errors
var (
	ErrSupplierNotFound = fmt.Errorf("supplier %w", ErrNotFound)
	ErrMaterialNotFound = fmt.Errorf("material %w", ErrNotFound)
)

// Project errors
var (
	ErrProjectNotFound  = fmt.Errorf("project %w", ErrNotFound)
	ErrActivityNotFound = fmt.Errorf("activity %w", ErrNotFound)
	ErrLinkNotFound     = fmt.Errorf("link %w", ErrNotFound)
)

// Export errors
var (
	ErrUnknownExportKind = fmt.Errorf("export kind %w", ErrNotFound)
)

// Invalid wraps ErrInvalidInput with a field-level message
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
