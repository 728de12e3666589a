package nse

import "github.com/mcmc-tools/go-nse/series"

// Error kinds raised by the estimators, matchable with errors.Is. They are
// caller programming errors, raised before any partial computation.
var (
	// ErrInvalidDimension reports multivariate input to a univariate-only
	// estimator (iseq, iseq.bm, Spec0, Hirukawa).
	ErrInvalidDimension = series.ErrInvalidDimension
	// ErrInvalidType reports an unrecognized type, kernel or scheme tag; the
	// message enumerates the valid set.
	ErrInvalidType = series.ErrInvalidType
	// ErrInvalidSize reports a series too short for the requested batch
	// count, block length or lag range.
	ErrInvalidSize = series.ErrInvalidSize
)
