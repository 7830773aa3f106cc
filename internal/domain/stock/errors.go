package stock

import "errors"

var (
	// ErrUnauthenticated means the acting employee id is missing, unknown or
	// deactivated. Nothing is recorded.
	ErrUnauthenticated = errors.New("no active acting employee")

	// ErrInvalidQuantity means the requested quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrMissingPromoter means a take-out, return or burn was requested
	// without a promoter.
	ErrMissingPromoter = errors.New("movement requires a promoter")

	// ErrUnknownKind means the movement kind is not one of the four.
	ErrUnknownKind = errors.New("unknown movement kind")
)
