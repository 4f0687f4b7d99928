package httpapi

import (
	"net/http"

	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
)

type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	AdminToken         string
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.SwaggerEnabled)
	registerRosterRoutes(mux, handler, opts.AdminToken)
	registerSessionRoutes(mux, handler)
	registerMatchRoutes(mux, handler, opts.AdminToken)

	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}
