// Package pkg provides shared utilities for the softwire two-wire stack.
//
// This package contains common functionality used across the controller
// core and the bus HAL implementations, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for two-wire bus errors
//   - Transaction status codes reported by write transactions
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with bus-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentController, "controller enabled", "clockHz", 100000)
//
// # Errors
//
// Common bus errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrAddressNack) {
//	    // Target did not acknowledge its address
//	}
package pkg
