// Package types defines the TableAPI interface, the roster record and
// location types, configuration, and standard error values for the wallet
// collector.
package types
