package errorhandler

import (
	"context"
	"net/http"

	"github.com/shootdesk/shootdesk-api/internal/pkg/logger"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
)

// HandleInternal logs err with the request-scoped logger and answers with an
// opaque 500. The error text never reaches the client.
func HandleInternal(ctx context.Context, w http.ResponseWriter, message string, err error) {
	logger.FromContext(ctx).Error().
		Err(err).
		Int("status_code", http.StatusInternalServerError).
		Msg(message)

	response.InternalError(w)
}

// HandlePanic logs a recovered panic with its stack trace and answers with a 500.
func HandlePanic(ctx context.Context, w http.ResponseWriter, panicErr interface{}, stackTrace string) {
	logger.FromContext(ctx).Error().
		Interface("panic_error", panicErr).
		Str("panic_stack", stackTrace).
		Msg("Request panic error")

	response.InternalError(w)
}

// LogValidationError logs rejected payloads at warn level.
func LogValidationError(ctx context.Context, fieldErrors interface{}) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}
