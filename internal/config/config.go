package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
	"github.com/xavierca1/ligue-attio-sync/internal/usecase"
)

// Config é lido uma vez no boot e não muda mais.
type Config struct {
	AttioAPIKey  string
	AttioBaseURL string
	AttioTimeout time.Duration
	AttioList    string
	OwnerEmail   string
	NoteTitle    string

	Port               string
	AllowedOrigins     []string
	RateLimitPerMinute int

	Mail MailConfig
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled é true só quando há host SMTP configurado.
func (m MailConfig) Enabled() bool {
	return strings.TrimSpace(m.Host) != ""
}

// Load lê o ambiente. ATTIO_API_KEY e OWNER_EMAIL são obrigatórios; sem eles o serviço não sobe.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		AttioAPIKey:  get("ATTIO_API_KEY", ""),
		AttioBaseURL: get("ATTIO_BASE_URL", attio.DefaultBaseURL),
		AttioList:    get("ATTIO_LIST", usecase.DefaultSalesList),
		OwnerEmail:   get("OWNER_EMAIL", ""),
		NoteTitle:    get("NOTE_TITLE", usecase.DefaultNoteTitle),
		Port:         get("PORT", "8080"),
		Mail: MailConfig{
			Host:     get("MAIL_HOST", ""),
			User:     get("MAIL_USER", ""),
			Password: get("MAIL_PASS", ""),
			From:     get("MAIL_FROM", "nao-responda@liguemedicina.com"),
		},
	}

	var errs []error
	if cfg.AttioAPIKey == "" {
		errs = append(errs, errors.New("ATTIO_API_KEY is missing"))
	}
	if cfg.OwnerEmail == "" {
		errs = append(errs, errors.New("OWNER_EMAIL is missing"))
	}

	timeout, err := time.ParseDuration(get("ATTIO_TIMEOUT", attio.DefaultTimeout.String()))
	if err != nil || timeout <= 0 {
		errs = append(errs, errors.New("ATTIO_TIMEOUT must be a positive duration (e.g. 30s)"))
	}
	cfg.AttioTimeout = timeout

	cfg.RateLimitPerMinute, err = strconv.Atoi(get("RATE_LIMIT_PER_MINUTE", "10"))
	if err != nil || cfg.RateLimitPerMinute <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be a positive integer"))
	}

	cfg.Mail.Port, err = strconv.Atoi(get("MAIL_PORT", "587"))
	if err != nil {
		errs = append(errs, errors.New("MAIL_PORT must be an integer"))
	}

	for _, origin := range strings.Split(get("ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
