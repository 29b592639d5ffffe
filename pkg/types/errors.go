package types

import "errors"

// Standard errors. Handlers branch on these with errors.Is; every one of them
// is recoverable and leaves stored state untouched.
var (
	// ErrValidation reports user input that does not parse as the required
	// numeric type. Raised before any store access.
	ErrValidation = errors.New("invalid value")

	// ErrNotFound reports a SKU with no matching record.
	ErrNotFound = errors.New("sku not found")

	// ErrAuthentication reports a rejected mail login. The reminder batch is
	// aborted; no messages are sent.
	ErrAuthentication = errors.New("mail authentication failed")

	// ErrUnknownChoice reports a menu selection outside the known set.
	ErrUnknownChoice = errors.New("unknown menu choice")
)
