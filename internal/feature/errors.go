// FILE: internal/feature/errors.go
package feature

import (
	"errors"
	"fmt"
)

// Sentinel errors for the gating taxonomy. Controllers map these onto
// problem-details responses with matching machine codes.
var (
	ErrFeatureUnknown      = errors.New("feature_unknown")
	ErrFeatureNotAvailable = errors.New("feature_not_available")
	ErrCoreModuleProtected = errors.New("core_module_protected")
	ErrParentUnavailable   = errors.New("parent_module_unavailable")
)

// NotAvailableError names the first disabled feature that denied a request.
type NotAvailableError struct {
	Feature string
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("feature %q is not available for this tenant", e.Feature)
}

func (e *NotAvailableError) Unwrap() error {
	return ErrFeatureNotAvailable
}
