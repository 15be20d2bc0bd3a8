package middleware

import (
	"fmt"
	"net/http"

	"github.com/api-sage/banco-digital/src/internal/logger"
	"github.com/gorilla/handlers"
)

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...any) {
	logger.Error("http handler panic recovered", nil, logger.Fields{
		"panic": fmt.Sprint(v...),
	})
}

func Recover() func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))
}
