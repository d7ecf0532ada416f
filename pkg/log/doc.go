// Package log provides the logging abstraction used by httprequest.
//
// Requests log connection setup at debug level and teardown failures at warn
// level. Nothing is logged by default: a request starts with a [NoopLogger]
// until a logger is supplied with httprequest.WithLogger.
//
// # Usage
//
// Log through zerolog on stderr:
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.DebugLevel)
//
// Or wrap a zerolog.Logger you already configured:
//
//	logger := log.NewZerologAdapterWithLogger(myZerolog)
//
// # Custom Loggers
//
// Implement the Logger interface to plug in another logging library:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) With(fields ...log.Field) log.Logger { ... }
package log
