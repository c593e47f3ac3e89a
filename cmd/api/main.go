package main

import (
	"log"
	"net/http"
	"time"

	"github.com/goliatone/go-logger/glog"
	"github.com/joho/godotenv"

	"github.com/xavierca1/ligue-attio-sync/internal/config"
	"github.com/xavierca1/ligue-attio-sync/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
	"github.com/xavierca1/ligue-attio-sync/internal/infra/mail"
	"github.com/xavierca1/ligue-attio-sync/internal/usecase"
)

func main() {
	godotenv.Load()

	// Sem ATTIO_API_KEY / OWNER_EMAIL o serviço não sobe.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	_, logger := glog.Resolve("attio-sync", nil, nil)
	logger = glog.Ensure(logger)

	// 1. Gateway do Attio
	attioClient := attio.NewClient(attio.Config{
		APIKey:  cfg.AttioAPIKey,
		BaseURL: cfg.AttioBaseURL,
		Timeout: cfg.AttioTimeout,
		Logger:  logger,
	})

	// 2. Writers e orquestração
	recordWriter := usecase.NewRecordWriter(attioClient, logger)
	listWriter := usecase.NewListEntryWriter(attioClient, cfg.AttioList, cfg.OwnerEmail, logger)
	noteWriter := usecase.NewNoteWriter(attioClient, logger)
	syncUC := usecase.NewSyncSubmissionUseCase(recordWriter, listWriter, noteWriter, cfg.NoteTitle, logger)

	// 3. Aviso ao owner quando um envio para no meio (opcional)
	var notifier handlers.PartialFailureNotifier
	var mailChecker handlers.Checker = mailStatus(false)
	if cfg.Mail.Enabled() {
		notifier = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From, cfg.OwnerEmail)
		mailChecker = mailStatus(true)
	}

	// 4. Handlers e router
	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    handlers.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
		RequestTimeout: 3*cfg.AttioTimeout + 5*time.Second,
		Submissions:    handlers.NewSubmissionHandler(syncUC, notifier, logger),
		Notes:          handlers.NewNoteHandler(noteWriter, logger),
		Health: handlers.NewHealthHandler(map[string]handlers.Checker{
			"attio": attioClient,
			"mail":  mailChecker,
		}),
	})

	addr := ":" + cfg.Port
	logger.Info("🔥 Attio sync rodando", "addr", addr, "list", cfg.AttioList)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}

type mailStatus bool

func (m mailStatus) Configured() bool { return bool(m) }
