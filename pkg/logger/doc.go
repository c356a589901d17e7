// Package logger provides a structured logging interface for the Instagram client.
//
// It wraps zerolog behind the Logger interface so that every component takes a
// Logger and tests can substitute NewNopLogger or NewTestLogger.
//
// Basic Usage:
//
//	log, err := logger.New(&config.LoggingConfig{Level: "debug"})
//	log.WithField("username", "kevin").Info("Fetching account")
//	log.DebugWithFields("Page fetched", map[string]interface{}{
//	    "cursor": cursor,
//	    "nodes":  len(nodes),
//	})
//
// The command line installs a process-wide logger with Initialize and reads it
// back with GetLogger.
package logger
