package signal

import "errors"

// Error kinds shared across the library. Callers classify failures with
// errors.Is; every package wraps one of these with call-site context.
var (
	// ErrInvalidParameter reports caller-supplied configuration that
	// violates a stated constraint. Correct the input and retry.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateSignal reports that the requested quantity is
	// mathematically undefined for the given signal (zero energy, silent
	// frame, unvoiced segment). It is never approximated with 0 or Inf.
	ErrDegenerateSignal = errors.New("degenerate signal")

	// ErrUnsupportedFormat reports an input container the loaders do not
	// understand.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptFile reports an input that matched a known container but
	// failed to decode.
	ErrCorruptFile = errors.New("corrupt file")
)
