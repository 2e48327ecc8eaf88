package server

import (
	"fmt"

	"github.com/framp/framp-backend/internal/utils/logger"
)

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	logger *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("[cron] "+msg, keyValueFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := keyValueFields(keysAndValues)
	fields["error"] = err.Error()
	l.logger.Error("[cron] "+msg, fields)
}

func keyValueFields(keysAndValues []interface{}) map[string]string {
	fields := make(map[string]string, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = fmt.Sprint(keysAndValues[i+1])
	}
	return fields
}
