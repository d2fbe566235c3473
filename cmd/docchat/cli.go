package main

import (
	"fmt"
	"time"
)

// Provider names accepted by --provider.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// CLI defines the command-line interface. Every flag can also be set through
// its environment variable or a .env file.
type CLI struct {
	Addr         string        `name:"addr" env:"DOCCHAT_ADDR" default:":5000" help:"Listen address."`
	UploadDir    string        `name:"upload-dir" env:"DOCCHAT_UPLOAD_DIR" default:"uploads" help:"Directory for uploaded PDFs."`
	MaxChars     int           `name:"max-chars" env:"DOCCHAT_MAX_CHARS" default:"4000" help:"Maximum passage length in characters (0 disables truncation)."`
	MaxUploadMB  int64         `name:"max-upload-mb" env:"DOCCHAT_MAX_UPLOAD_MB" default:"32" help:"Maximum upload size in MiB."`
	FetchTimeout time.Duration `name:"fetch-timeout" env:"DOCCHAT_FETCH_TIMEOUT" default:"10s" help:"Timeout for fetching a website."`

	Fetcher   string `name:"fetcher" env:"DOCCHAT_FETCHER" enum:"http,rod" default:"http" help:"How pages are fetched: plain HTTP or headless Chrome (${enum})."`
	Extractor string `name:"extractor" env:"DOCCHAT_EXTRACTOR" enum:"paragraphs,readability,trafilatura" default:"paragraphs" help:"How content is selected from a page (${enum})."`
	Format    string `name:"format" env:"DOCCHAT_FORMAT" enum:"text,markdown" default:"text" help:"Passage format (${enum})."`

	Provider     string  `name:"provider" env:"DOCCHAT_PROVIDER" enum:"groq,gemini" default:"groq" help:"Completion provider (${enum})."`
	GroqAPIKey   string  `name:"groq-api-key" env:"GROQ_API_KEY" help:"Groq API key."`
	GeminiAPIKey string  `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key."`
	Model        string  `name:"model" env:"DOCCHAT_MODEL" help:"Model name (provider default if empty)."`
	Temperature  float64 `name:"temperature" env:"DOCCHAT_TEMPERATURE" default:"0.7" help:"Sampling temperature."`
	MaxTokens    int     `name:"max-tokens" env:"DOCCHAT_MAX_TOKENS" default:"1024" help:"Maximum tokens in an answer."`

	LogLevel  string `name:"log-level" env:"DOCCHAT_LOG_LEVEL" enum:"debug,info,warn,error" default:"info" help:"Log level (${enum})."`
	LogFormat string `name:"log-format" env:"DOCCHAT_LOG_FORMAT" enum:"text,json" default:"text" help:"Log format (${enum})."`

	EnvFile string `name:"env-file" env:"DOCCHAT_ENV_FILE" default:".env" help:"Optional dotenv file loaded before flags are read."`
}

// Validate is called by kong after parsing.
func (c *CLI) Validate() error {
	if c.MaxChars < 0 {
		return fmt.Errorf("--max-chars must not be negative")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("--max-upload-mb must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("--fetch-timeout must be positive")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("--max-tokens must be positive")
	}
	return nil
}

// APIKey returns the key for the selected provider.
func (c *CLI) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}
