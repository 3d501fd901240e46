package logger

import "go.uber.org/zap"

// Symbol-aware logging helpers.
// These functions log with the symbol as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(SymbolProvider + " read started", "filter_expr", expr)
//
//	// Use:
//	logger.ProviderInfow("read started", "filter_expr", expr)
//
// This makes logs queryable by symbol and keeps messages clean.
const (
	SymbolProvider = "⊚" // Provider.Read / HisRead / PointWrite
	SymbolDB       = "⊔" // sqlite connection, migrations
	SymbolCodec    = "⎘" // Zinc/JSON/CSV/Trio encode/decode
	SymbolFilter   = "⋈" // filter parse, eval, SQL translation
)

// ProviderInfow logs an info message with the Provider symbol (⊚)
func ProviderInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolProvider}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// ProviderErrorw logs an error message with the Provider symbol (⊚)
func ProviderErrorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolProvider}, keysAndValues...)
		Logger.Errorw(msg, fields...)
	}
}

// DBInfow logs an info message with the DB symbol (⊔)
func DBInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolDB}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// DBDebugw logs a debug message with the DB symbol (⊔)
func DBDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolDB}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// DBErrorw logs an error message with the DB symbol (⊔)
func DBErrorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolDB}, keysAndValues...)
		Logger.Errorw(msg, fields...)
	}
}

// FilterDebugw logs a debug message with the Filter symbol (⋈)
func FilterDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolFilter}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// FilterWarnw logs a warning message with the Filter symbol (⋈)
func FilterWarnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolFilter}, keysAndValues...)
		Logger.Warnw(msg, fields...)
	}
}

// CodecDebugw logs a debug message with the Codec symbol (⎘)
func CodecDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolCodec}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// WithSymbol returns a logger with the given symbol as a field.
// For ad-hoc symbol usage not covered by the helpers above.
//
// Example:
//
//	symbolLogger := logger.WithSymbol(logger.SymbolDB)
//	symbolLogger.Infow("opened connection", "path", path)
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// SymbolInfow logs with any symbol - for dynamic symbol usage
func SymbolInfow(symbol, msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, symbol}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// AddDBSymbol wraps a logger with the DB symbol (⊔)
func AddDBSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, SymbolDB)
}

// AddProviderSymbol wraps a logger with the Provider symbol (⊚)
func AddProviderSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, SymbolProvider)
}
