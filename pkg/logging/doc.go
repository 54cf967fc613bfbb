// Package logging wraps zerolog for dirx.
//
// SetupLogger is called once by the CLI. Packages obtain their logger with
// GetLogger, which tags every event with a component field:
//
//	logger := logging.GetLogger("resolve")
//	logger.Debug().Str("node", id).Msg("excluded")
package logging
