package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInsufficientFunds indicates a withdrawal larger than the current balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrPayloadTooLarge indicates an encoded image payload exceeding the configured cap.
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrOracleUnavailable indicates the vision oracle could not be reached or
// returned no output text.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// ErrMalformedVerdict indicates the oracle responded but its output could not
// be parsed into a verdict. Callers must degrade this to a recorded rejection,
// never abort the deposit request on it.
var ErrMalformedVerdict = errors.New("malformed oracle verdict")
