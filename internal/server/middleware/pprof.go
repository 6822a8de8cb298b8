package middleware

import (
	"net/http"
	"net/http/pprof"

	"github.com/labstack/echo/v4"
)

type PprofConfig struct {
	PathPrefix string
}

var DefaultPprofConfig = PprofConfig{
	PathPrefix: "",
}

func fromHandlerFunc(serveHTTP func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(serveHTTP))
}

func fromHTTPHandler(h http.Handler) echo.HandlerFunc {
	return echo.WrapHandler(h)
}

func PprofWrap(e *echo.Echo, opts ...PprofConfig) {
	conf := DefaultPprofConfig
	if len(opts) > 0 {
		conf.PathPrefix = opts[0].PathPrefix
	}

	pprofGroup := e.Group(conf.PathPrefix)
	pprofGroup.GET("/debug/pprof/", fromHandlerFunc(pprof.Index))
	pprofGroup.GET("/debug/pprof/heap", fromHTTPHandler(pprof.Handler("heap")))
	pprofGroup.GET("/debug/pprof/goroutine", fromHTTPHandler(pprof.Handler("goroutine")))
	pprofGroup.GET("/debug/pprof/block", fromHTTPHandler(pprof.Handler("block")))
	pprofGroup.GET("/debug/pprof/threadcreate", fromHTTPHandler(pprof.Handler("threadcreate")))
	pprofGroup.GET("/debug/pprof/cmdline", fromHandlerFunc(pprof.Cmdline))
	pprofGroup.GET("/debug/pprof/profile", fromHandlerFunc(pprof.Profile))
	pprofGroup.GET("/debug/pprof/symbol", fromHandlerFunc(pprof.Symbol))
	pprofGroup.GET("/debug/pprof/trace", fromHandlerFunc(pprof.Trace))
}
