// Package nse computes the numerical standard error of a sample mean drawn
// from a stationary, weakly dependent series, such as MCMC output.
//
// Every estimator returns the estimated variance of the mean; the numerical
// standard error is its square root. Six long-run variance strategies are
// provided: batch means and Geyer's initial-sequence estimator (Geyer), the
// AR spectral density at zero (Spec0), kernel HAC estimation with fixed
// (NeweyWest) and automatic (Andrews, Hirukawa) bandwidths, and the block
// bootstrap (Bootstrap). Multivariate input yields the d×d covariance of the
// mean vector; univariate input always collapses to a scalar at the public
// boundary.
package nse
