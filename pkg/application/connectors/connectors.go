// Package connectors owns lazily-initialized clients to external systems.
// Each connector builds its client exactly once, even under concurrent
// first-use.
package connectors

import "mercado/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
