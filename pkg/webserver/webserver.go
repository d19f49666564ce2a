package webserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"f1standings/pkg/resources"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

type Manager struct {
	r            *mux.Router
	addr         string
	resourcesDir string
}

func NewManager(addr, resourcesDir string) *Manager {
	if resourcesDir == "" {
		resourcesDir = resources.ResourcesDir
	}
	m := &Manager{
		r:            mux.NewRouter(),
		addr:         addr,
		resourcesDir: resourcesDir,
	}

	m.rootHandlers()
	return m
}

func (m *Manager) Router() *mux.Router {
	return m.r
}

func (m *Manager) rootHandlers() {
	fs := http.FileServer(http.Dir(m.resourcesDir))
	m.r.PathPrefix(resources.URLPrefix).Handler(http.StripPrefix(resources.URLPrefix, fs))
}

// Debug prints every registered route.
func (m *Manager) Debug(w io.Writer) {
	_ = m.r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			fmt.Fprintln(w, "ROUTE:", pathTemplate)
		}
		pathRegexp, err := route.GetPathRegexp()
		if err == nil {
			fmt.Fprintln(w, "Path regexp:", pathRegexp)
		}
		queriesTemplates, err := route.GetQueriesTemplates()
		if err == nil {
			fmt.Fprintln(w, "Queries templates:", strings.Join(queriesTemplates, ","))
		}
		methods, err := route.GetMethods()
		if err == nil {
			fmt.Fprintln(w, "Methods:", strings.Join(methods, ","))
		}
		fmt.Fprintln(w)
		return nil
	})
}

func (m *Manager) server() *http.Server {
	return &http.Server{
		Addr:         m.addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}
}

// Serve listens until ctx is done and then shuts down gracefully.
func (m *Manager) Serve(ctx context.Context) error {
	srv := m.server()

	errc := make(chan error, 1)
	go func() {
		log.Printf("webserver listening on %s\n", m.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Println("webserver shutting down")
	return srv.Shutdown(shutdownCtx)
}
