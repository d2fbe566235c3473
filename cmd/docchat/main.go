package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docchat"
	dcfs "github.com/fwojciec/docchat/fs"
	"github.com/fwojciec/docchat/gemini"
	"github.com/fwojciec/docchat/goquery"
	"github.com/fwojciec/docchat/groq"
	"github.com/fwojciec/docchat/htmltomarkdown"
	dchttp "github.com/fwojciec/docchat/http"
	"github.com/fwojciec/docchat/inmem"
	"github.com/fwojciec/docchat/pdf"
	"github.com/fwojciec/docchat/readability"
	"github.com/fwojciec/docchat/rod"
	"github.com/fwojciec/docchat/scrape"
	dcslog "github.com/fwojciec/docchat/slog"
	"github.com/fwojciec/docchat/trafilatura"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// HTTP server. Set by Run once services are wired.
	Server *dchttp.Server

	// Fetcher used by the website reader; closed by Close.
	Fetcher docchat.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources held by the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run parses args, wires the services and serves until ctx is canceled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docchat"),
		kong.Description("Chat with a website or a PDF through an LLM"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, arg := range args {
		if arg == "help" || arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	// The env file has to be loaded before kong resolves env bindings.
	if err := loadEnvFile(envFileFromArgs(args)); err != nil {
		return err
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.APIKey() == "" {
		fmt.Fprintln(stderr, apiKeyHint(cli.Provider))
		return fmt.Errorf("%s API key not set", cli.Provider)
	}

	logger := newLogger(stderr, cli.LogLevel, cli.LogFormat)

	fetcher, err := newFetcher(cli)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --fetcher=rod")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	m.Fetcher = fetcher
	defer m.Close()

	uploads, err := dcfs.NewUploadStore(cli.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory %q: %w", cli.UploadDir, err)
	}

	asker, err := newAsker(ctx, cli)
	if err != nil {
		return err
	}

	websites := scrape.NewScraper(
		dcslog.NewLoggingFetcher(fetcher, logger),
		newExtractor(cli.Extractor),
		newConverter(cli.Format),
		scrape.WithMaxChars(cli.MaxChars),
	)
	pdfs := pdf.NewReader(pdf.WithMaxChars(cli.MaxChars))

	s := dchttp.NewServer()
	s.Addr = cli.Addr
	s.MaxUploadBytes = cli.MaxUploadMB << 20
	s.Logger = logger
	s.Content = dcslog.NewLoggingContentStore(inmem.NewContentStore(), logger)
	s.Websites = dcslog.NewLoggingWebsiteReader(websites, logger)
	s.PDFs = dcslog.NewLoggingPDFReader(pdfs, logger)
	s.Uploads = uploads
	s.Asker = dcslog.NewLoggingAsker(asker, logger)
	m.Server = s

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", cli.Addr, err)
	}
	logger.Info("listening",
		"url", s.URL(),
		"provider", cli.Provider,
		"fetcher", cli.Fetcher,
		"extractor", cli.Extractor,
		"upload_dir", cli.UploadDir,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.Serve)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return s.Close()
	})
	return g.Wait()
}

// envFileFromArgs returns the --env-file value from args, falling back to
// DOCCHAT_ENV_FILE and then ".env".
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("DOCCHAT_ENV_FILE"); v != "" {
		return v
	}
	return ".env"
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

func apiKeyHint(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY not set. Get an API key at https://aistudio.google.com/apikey"
	}
	return "GROQ_API_KEY not set. Get an API key at https://console.groq.com/keys"
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(level))
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newFetcher(cli *CLI) (docchat.Fetcher, error) {
	if cli.Fetcher == "rod" {
		return rod.NewFetcher(rod.WithFetchTimeout(cli.FetchTimeout))
	}
	return dchttp.NewFetcher(dchttp.WithTimeout(cli.FetchTimeout)), nil
}

func newExtractor(name string) docchat.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewParagraphExtractor()
	}
}

func newConverter(format string) docchat.Converter {
	if format == "markdown" {
		return htmltomarkdown.NewConverter()
	}
	return goquery.NewTextConverter()
}

func newAsker(ctx context.Context, cli *CLI) (docchat.Asker, error) {
	if cli.Provider == ProviderGemini {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewAsker(client,
			gemini.WithModel(cli.Model),
			gemini.WithTemperature(cli.Temperature),
			gemini.WithMaxTokens(cli.MaxTokens),
		), nil
	}
	return groq.NewAsker(cli.GroqAPIKey,
		groq.WithModel(cli.Model),
		groq.WithTemperature(cli.Temperature),
		groq.WithMaxTokens(cli.MaxTokens),
	), nil
}
