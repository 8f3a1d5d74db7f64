// Package modules contains reusable application building blocks that plug
// long-running servers into an errgroup.
package modules

import "mercado/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
