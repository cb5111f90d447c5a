package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynamicform"
	"github.com/goliatone/go-dynamicform/internal/logging"
	"github.com/goliatone/go-dynamicform/pkg/model"
	"github.com/goliatone/go-dynamicform/pkg/page"
	"github.com/goliatone/go-dynamicform/pkg/render/template"
	"github.com/goliatone/go-dynamicform/pkg/widget"
)

const contactForm = "Contact"

var contactField = regexp.MustCompile(`^` + contactForm + `\[(\d+)\]\[(\w+)\]$`)

func serveCmd() *cobra.Command {
	var (
		addr      string
		logLevel  string
		logFormat string
		scripts   []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the contacts demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(logging.Options{Level: logLevel, Format: logFormat})

			views, err := newViews()
			if err != nil {
				return err
			}
			handler := newRouter(&demoServer{logger: logger, views: views, scripts: scripts})

			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("listen: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("server shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().StringSliceVar(&scripts, "script", []string{jQueryURL}, "Script files loaded before the runtime")

	return cmd
}

type demoServer struct {
	logger  *slog.Logger
	views   template.TemplateRenderer
	scripts []string
}

type contact map[string]any

func newRouter(s *demoServer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(pageScope)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/dynamicform/*", http.StripPrefix("/assets/dynamicform/", http.FileServer(http.FS(dynamicform.AssetsFS()))))

	r.Get("/", s.showContacts)
	r.Post("/", s.saveContacts)

	return r
}

// requestLogger puts a request scoped logger on the context and logs every
// request once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With("request_id", middleware.GetReqID(r.Context()))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logging.WithLogger(r.Context(), reqLogger)))

			reqLogger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// pageScope gives each request its own page so widget registrations never
// leak between responses.
func pageScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(page.WithPage(r.Context(), page.New())))
	})
}

func (s *demoServer) showContacts(w http.ResponseWriter, r *http.Request) {
	s.renderContacts(w, r, []contact{{"name": "", "email": ""}}, true, 0)
}

func (s *demoServer) saveContacts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	rows := parseContacts(r.PostForm)
	logging.From(r.Context()).Debug("contacts submitted", "rows", len(rows))
	if len(rows) == 0 {
		s.renderContacts(w, r, []contact{{"name": "", "email": ""}}, true, 0)
		return
	}
	s.renderContacts(w, r, rows, false, len(rows))
}

func (s *demoServer) renderContacts(w http.ResponseWriter, r *http.Request, rows []contact, isNew bool, saved int) {
	logger := logging.From(r.Context())
	p, ok := page.FromContext(r.Context())
	if !ok {
		p = page.New()
	}

	wgt, err := widget.New(contactsConfig(isNew),
		widget.WithScriptFiles(s.scripts...),
		widget.WithTemplatePolicy(widget.FormPolicy()),
	)
	if err != nil {
		s.fail(w, r, "configure widget", err)
		return
	}

	markup, err := wgt.CaptureTemplate(s.views, "contacts", map[string]any{"contacts": rows})
	if err != nil {
		s.fail(w, r, "capture contacts", err)
		return
	}
	out, err := wgt.Run(p, markup)
	if err != nil {
		s.fail(w, r, "render widget", err)
		return
	}
	id, _ := p.Lookup(wgt.Config().Container)
	logger.Debug("widget rendered", "container", wgt.Config().Container, "id", id, "new", isNew)

	form, err := s.views.RenderTemplate("form", map[string]any{
		"title":  "Contacts",
		"formId": wgt.Config().FormID,
		"widget": out,
		"saved":  saved,
	})
	if err != nil {
		s.fail(w, r, "render form", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writeDocument(s.views, w, pageDocument("Contacts", form, p)); err != nil {
		logger.Error("write document", "error", err)
	}
}

func (s *demoServer) fail(w http.ResponseWriter, r *http.Request, step string, err error) {
	logging.From(r.Context()).Error(step, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func contactsConfig(isNew bool) widget.Config {
	cfg := widget.DefaultConfig()
	cfg.Container = "contacts"
	cfg.Body = ".container-items"
	cfg.Item = ".item"
	cfg.FormID = "contact-form"
	cfg.InsertButton = ".add-item"
	cfg.DeleteButton = ".remove-item"
	cfg.Min = 0
	cfg.Limit = 10
	cfg.Fields = []string{"name", "email"}
	cfg.Record = model.NewRecord(contactForm, isNew)
	return cfg
}

// parseContacts groups Contact[i][field] values into rows ordered by index.
// Gaps left by rows deleted in the browser are closed.
func parseContacts(values map[string][]string) []contact {
	byIndex := make(map[int]contact)
	for key, vals := range values {
		match := contactField.FindStringSubmatch(key)
		if match == nil || len(vals) == 0 {
			continue
		}
		idx, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		row, ok := byIndex[idx]
		if !ok {
			row = contact{"name": "", "email": ""}
			byIndex[idx] = row
		}
		row[match[2]] = vals[0]
	}

	indexes := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	rows := make([]contact, 0, len(indexes))
	for _, idx := range indexes {
		rows = append(rows, byIndex[idx])
	}
	return rows
}
