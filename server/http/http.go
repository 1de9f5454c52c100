package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/w-h-a/doculyzer"
	"github.com/w-h-a/doculyzer/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpServer struct {
	options server.Options
	server  *http.Server
}

func (s *httpServer) Run() error {
	return s.server.ListenAndServe()
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func NewServer(agent *doculyzer.Agent, opts ...server.Option) server.Server {
	if agent == nil {
		panic("agent is required")
	}

	options := server.NewOptions(opts...)

	router := mux.NewRouter()

	h := &handler{agent: agent}

	router.HandleFunc("/api/v1/agent", h.query).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/feedback", h.feedback).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/documents/process", h.process).Methods(http.MethodPost)

	var root http.Handler = otelhttp.NewHandler(router, "doculyzer")

	if ms, ok := MiddlewareFrom(options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			root = ms[i](root)
		}
	}

	return &httpServer{
		options: options,
		server: &http.Server{
			Addr:    options.Address,
			Handler: root,
		},
	}
}
