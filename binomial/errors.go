package binomial

import "errors"

var (
	// ErrInvalidParameter is returned when n or p cannot describe a distribution.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrOutOfRange is returned for an outcome outside [0,n].
	ErrOutOfRange = errors.New("outcome out of range")
	// ErrInvalidRange is returned when a range has left > right.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidMode is returned for an unrecognized cumulative mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidArgument is returned for a bad batch size or sample count.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDegenerateDistribution is returned by normal approximation queries when σ = 0.
	ErrDegenerateDistribution = errors.New("degenerate distribution")
)
