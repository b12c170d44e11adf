package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

// NewRouter mounts every route behind tracing, access logging, CORS and panic
// recovery, in that order from the outside in.
func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPointsRoutes(mux, handler)
	registerExportRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, RequireInternalJobToken(internalJobToken))

	return chain(mux,
		RequestTracing(),
		RequestLogging(logger),
		CORS(corsAllowedOrigins),
		recoverPanic(logger),
	)
}
