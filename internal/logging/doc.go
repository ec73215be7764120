// Package logging provides structured logging for loadcoord.
//
// This package wraps Go's log/slog to emit JSON-formatted logs with
// persistent attributes, so that every line written on behalf of a
// coordinator or a single operation can be filtered after the fact.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Child loggers
// created via With* methods share the underlying writer.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	coordLogger := logger.WithCoordinator("settings-screen")
//	opLogger := coordLogger.WithOperation("6f0c...")
//	opLogger.Debug("operation started", "active", 1)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"operation started","coordinator":"settings-screen","op_id":"6f0c...","active":1}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] to capture it:
//
//	var buf bytes.Buffer
//	logger := logging.NewWriterLogger(&buf, logging.LevelDebug)
//
// # Log Levels
//
//   - [LevelDebug]: visibility transitions and per-operation bookkeeping
//   - [LevelInfo]: lifecycle messages (default)
//   - [LevelWarn]: recoverable problems such as a rejected config reload
//   - [LevelError]: failures that affect functionality
package logging
