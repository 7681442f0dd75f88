package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
	"github.com/gorilla/handlers"

	"github.com/iWorld-y/report_scribe/internal/conf"
	"github.com/iWorld-y/report_scribe/internal/pkg/requestid"
	"github.com/iWorld-y/report_scribe/internal/service"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// NewHTTPServer 创建 HTTP 服务
func NewHTTPServer(c *conf.Server, s *service.ReportService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			requestid.Server(),
			logging.Server(logger),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			} else {
				log.NewHelper(logger).Warnf("invalid server timeout %q, using default: %v", c.Http.Timeout, err)
			}
		}
	}
	if c != nil && c.Cors != nil && len(c.Cors.AllowedOrigins) > 0 {
		opts = append(opts, http.Filter(handlers.CORS(
			handlers.AllowedOrigins(c.Cors.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", requestid.Header}),
			handlers.AllowCredentials(),
		)))
	}

	srv := http.NewServer(opts...)
	service.RegisterReportHTTPServer(srv, s)
	return srv
}
