// Package decompose splits a paired yearly dataset into trend and cyclical
// components and projects both through a configurable horizon year.
//
// The trend comes from any of the regression strategies; the cycle is a
// frequency-domain reconstruction of the detrended residual, tiled forward
// to cover the extended axis. Decompose recombines the two into a forecast
// whose trend and cycle arrays stay equal in length at every stage.
package decompose
