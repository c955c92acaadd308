package data

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-kratos/kratos/v2/log"
)

// watermillLogger adapts the Kratos logger to Watermill's LoggerAdapter.
type watermillLogger struct {
	logger *log.Helper
	fields watermill.LogFields
}

// NewWatermillLogger creates a Watermill logger adapter backed by the
// process-wide Kratos logger.
func NewWatermillLogger(logger log.Logger) watermill.LoggerAdapter {
	return &watermillLogger{
		logger: log.NewHelper(logger),
		fields: make(watermill.LogFields),
	}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Log(log.LevelError, append([]interface{}{"msg", msg}, l.toKeyvals(fields, err)...)...)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Log(log.LevelInfo, append([]interface{}{"msg", msg}, l.toKeyvals(fields, nil)...)...)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Log(log.LevelDebug, append([]interface{}{"msg", msg}, l.toKeyvals(fields, nil)...)...)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Log(log.LevelDebug, append([]interface{}{"msg", msg}, l.toKeyvals(fields, nil)...)...)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	merged := make(watermill.LogFields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &watermillLogger{
		logger: l.logger,
		fields: merged,
	}
}

func (l *watermillLogger) toKeyvals(fields watermill.LogFields, err error) []interface{} {
	keyvals := make([]interface{}, 0, (len(l.fields)+len(fields))*2+2)
	for k, v := range l.fields {
		keyvals = append(keyvals, k, v)
	}
	for k, v := range fields {
		keyvals = append(keyvals, k, v)
	}
	if err != nil {
		keyvals = append(keyvals, "error", err)
	}
	return keyvals
}
