package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docchat"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Replies sent by the router itself.
const (
	MsgNoURL          = "No URL provided."
	MsgScraped        = "Website scraped successfully."
	MsgNoFile         = "No file uploaded."
	MsgNoSelectedFile = "No selected file."
	MsgUploaded       = "PDF uploaded successfully. You can now ask questions based on it."
	MsgInvalidBody    = "Invalid request body."
	MsgFileTooLarge   = "File too large."
)

// Prefixes for failures that are not application errors.
const (
	prefixScrape = "Error scraping website"
	prefixPDF    = "Error extracting text from PDF"
	prefixSave   = "Error saving file"
	prefixAsk    = "Error generating response"
)

// DefaultMaxUploadBytes caps the size of an upload request body.
const DefaultMaxUploadBytes = 32 << 20

// ShutdownTimeout bounds how long Close waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// multipartMemory is how much of a multipart form is held in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

//go:embed assets
var assets embed.FS

var indexTmpl = template.Must(template.ParseFS(assets, "assets/index.html"))

// Server serves the chat page and its JSON endpoints.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address, e.g. ":5000".
	Addr string

	// Upper bound on /upload_pdf request bodies.
	MaxUploadBytes int64

	Logger *slog.Logger

	Content  docchat.ContentStore
	Websites docchat.WebsiteReader
	PDFs     docchat.PDFReader
	Uploads  docchat.UploadStore
	Asker    docchat.Asker
}

// NewServer returns a Server with its routes registered. Services must be
// assigned before the server handles requests.
func NewServer() *Server {
	s := &Server{
		server:         &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router:         chi.NewRouter(),
		MaxUploadBytes: DefaultMaxUploadBytes,
		Logger:         slog.New(slog.DiscardHandler),
	}
	s.server.Handler = s.router

	s.router.Use(requestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		panic(err)
	}
	s.router.Get("/", s.handleIndex)
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	s.router.Post("/scrape_website", s.handleScrapeWebsite)
	s.router.Post("/upload_pdf", s.handleUploadPDF)
	s.router.Post("/chat", s.handleChat)

	return s
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open binds the listen address.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	return nil
}

// Serve accepts connections until Close is called. It must follow Open.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("server not open")
	}
	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	addr := s.ln.Addr().(*net.TCPAddr)
	host := "localhost"
	if ip := addr.IP; ip != nil && !ip.IsUnspecified() {
		host = ip.String()
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(addr.Port)))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		MaxUploadMB int64
	}{
		MaxUploadMB: s.MaxUploadBytes >> 20,
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.Logger.ErrorContext(r.Context(), "render index", "err", err)
	}
}

type scrapeRequest struct {
	WebsiteURL string `json:"website_url"`
}

func (s *Server) handleScrapeWebsite(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReply(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	url := strings.TrimSpace(req.WebsiteURL)
	if url == "" {
		writeReply(w, http.StatusBadRequest, MsgNoURL)
		return
	}

	text, err := s.Websites.ReadWebsite(r.Context(), url)
	if err != nil {
		s.renderError(w, r, prefixScrape, http.StatusUnprocessableEntity, err)
		return
	}
	s.Content.SetScraped(text)
	writeReply(w, http.StatusOK, MsgScraped)
}

func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.MaxUploadBytes {
		writeReply(w, http.StatusRequestEntityTooLarge, MsgFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeReply(w, http.StatusRequestEntityTooLarge, MsgFileTooLarge)
		case errors.Is(err, http.ErrNotMultipart):
			writeReply(w, http.StatusBadRequest, MsgNoFile)
		default:
			writeReply(w, http.StatusBadRequest, MsgInvalidBody)
		}
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	// A part with an empty filename is parsed as a plain value.
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		if _, ok := r.MultipartForm.Value["file"]; ok {
			writeReply(w, http.StatusBadRequest, MsgNoSelectedFile)
			return
		}
		writeReply(w, http.StatusBadRequest, MsgNoFile)
		return
	}
	fh := files[0]
	if fh.Filename == "" {
		writeReply(w, http.StatusBadRequest, MsgNoSelectedFile)
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.renderError(w, r, prefixSave, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	path, err := s.Uploads.SaveUpload(r.Context(), fh.Filename, f)
	if err != nil {
		s.renderError(w, r, prefixSave, http.StatusInternalServerError, err)
		return
	}

	s.Content.ClearPDF()
	text, err := s.PDFs.ReadPDF(r.Context(), path)
	if err != nil {
		s.renderError(w, r, prefixPDF, http.StatusUnprocessableEntity, err)
		return
	}
	s.Content.SetPDF(text)
	writeReply(w, http.StatusOK, MsgUploaded)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReply(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	question := strings.TrimSpace(req.Message)
	if question == "" {
		writeReply(w, http.StatusBadRequest, docchat.MsgEmptyQuestion)
		return
	}

	passage := s.Content.SelectActive()
	answer, err := s.Asker.Ask(r.Context(), question, passage.Text)
	if err != nil {
		s.renderError(w, r, prefixAsk, http.StatusBadGateway, err)
		return
	}
	writeReply(w, http.StatusOK, answer)
}

type replyResponse struct {
	Reply string `json:"reply"`
}

func writeReply(w http.ResponseWriter, status int, reply string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(replyResponse{Reply: reply})
}

// renderError replies with the message of an application error, or with
// prefix and the error text otherwise. Codes without a dedicated status use
// fallback.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, prefix string, fallback int, err error) {
	if docchat.IsError(err) {
		writeReply(w, errorStatus(docchat.ErrorCode(err), fallback), docchat.ErrorMessage(err))
		return
	}
	s.Logger.ErrorContext(r.Context(), strings.ToLower(prefix),
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"err", err,
	)
	writeReply(w, fallback, fmt.Sprintf("%s: %s", prefix, err))
}

func errorStatus(code string, fallback int) int {
	switch code {
	case docchat.EINVALID:
		return http.StatusBadRequest
	case docchat.ENOTFOUND:
		return http.StatusUnprocessableEntity
	case docchat.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return fallback
	}
}

// requestID stores the caller's X-Request-Id, or a new UUID, in the request
// context where middleware.GetReqID finds it, and echoes it in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs one record per request once the response is written.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}
