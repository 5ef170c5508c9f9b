package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quizframe/pkg/cache"
	"github.com/matzehuels/quizframe/pkg/errors"
	"github.com/matzehuels/quizframe/pkg/manifest"
)

// shutdownTimeout bounds graceful shutdown when the context is canceled.
const shutdownTimeout = 5 * time.Second

// headerDocumentID carries the id under which a render was stored.
const headerDocumentID = "X-Document-ID"

// server handles render requests and retrieval of stored documents.
type server struct {
	store cache.Cache
	ttl   time.Duration
}

// servedDocument is a stored render: the response body plus the content
// type it should be served with.
type servedDocument struct {
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// newServeCmd creates the serve command running the HTTP render service.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	if addr == "" {
		addr = cfg.Serve.Addr
	}

	store, err := openCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()

	s := &server{store: store, ttl: cfg.Cache.TTL.Duration}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// routes builds the service's router.
func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/documents/{id}", s.handleDocument)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleRender renders the manifest in the request body. Query params:
// format (html, json, jsonz; default html) and compact (true/false).
// The render is stored under a fresh document id, returned in the
// X-Document-ID header, and served back as the response body.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatHTML
	}
	if err := validateFormats([]string{format}); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	compact := r.URL.Query().Get("compact") == "true"

	doc, err := manifest.Read(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	comp, err := doc.Composer()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := renderFormat(comp, format, compact)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	contentType := "application/json"
	if format == FormatHTML {
		contentType = "text/html; charset=utf-8"
	}

	id := uuid.NewString()
	stored, err := json.Marshal(servedDocument{ContentType: contentType, Body: body})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.store.Set(r.Context(), cache.DocumentKey(id), stored, s.ttl); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(headerDocumentID, id)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(body))
}

// handleDocument serves a previously rendered document by id.
func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, found, err := s.store.Get(r.Context(), cache.DocumentKey(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "document not found: %s", id))
		return
	}

	var doc servedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	_, _ = w.Write([]byte(doc.Body))
}

// writeError responds with a JSON error body carrying the error code
// (when the error is structured) and a user-facing message.
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
