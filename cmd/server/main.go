package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aasthachits/chitfund/modules/auctions"
	"github.com/aasthachits/chitfund/modules/brochure"
	"github.com/aasthachits/chitfund/modules/credentials"
	"github.com/aasthachits/chitfund/modules/enroll"
	"github.com/aasthachits/chitfund/modules/notification"
	"github.com/aasthachits/chitfund/modules/plans"
	"github.com/aasthachits/chitfund/modules/realtime"
	"github.com/aasthachits/chitfund/modules/stats"
	"github.com/aasthachits/chitfund/modules/transactions"
	"github.com/aasthachits/chitfund/modules/users"
	"github.com/aasthachits/chitfund/pkg/accesstoken"
	"github.com/aasthachits/chitfund/pkg/broadcast"
	"github.com/aasthachits/chitfund/pkg/config"
	"github.com/aasthachits/chitfund/pkg/email"
	"github.com/aasthachits/chitfund/pkg/file"
	"github.com/aasthachits/chitfund/pkg/httpserver"
	"github.com/aasthachits/chitfund/pkg/logger"
	"github.com/aasthachits/chitfund/pkg/mongo"
	"github.com/aasthachits/chitfund/pkg/whatsapp"
)

type appConfig struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	Database   string `env:"MONGODB_DATABASE" envDefault:"aasthachits"`
	PublicURL  string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	LoginURL   string `env:"LOGIN_URL" envDefault:"http://localhost:8080/login"`
	AdminEmail string `env:"ADMIN_EMAIL,required"`
	DevMailDir string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`

	HTTP     httpserver.Config
	Mongo    mongo.Config
	Email    email.Config
	WhatsApp whatsapp.Config
	Storage  file.Config
	Tokens   accesstoken.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Env, "chitfund"))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mongo.NewWithDatabase(ctx, cfg.Mongo, cfg.Database)
	if err != nil {
		log.Error("connect mongodb", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	storage, err := file.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Error("init storage", logger.Error(err))
		os.Exit(1)
	}

	// Outbound channels. Development falls back to on-disk mail so the
	// flows stay end-to-end testable without provider credentials.
	var sender email.EmailSender
	if cfg.Email.PostmarkServerToken != "" {
		sender = email.MustNewPostmarkClient(cfg.Email)
	} else {
		sender = email.NewDevSender(cfg.DevMailDir)
		log.Warn("postmark token missing, writing emails to disk",
			logger.Component("email"))
	}

	channels := []notification.Channel{notification.NewEmailChannel(sender)}
	if cfg.WhatsApp.AccessToken != "" {
		channels = append(channels, notification.NewWhatsAppChannel(whatsapp.MustNewClient(cfg.WhatsApp)))
	} else {
		log.Warn("whatsapp token missing, credential delivery is email only",
			logger.Component("whatsapp"))
	}
	dispatcher := notification.NewDispatcher(channels, notification.WithLogger(log))

	// Live rooms and download tokens.
	hub := broadcast.NewHub[any]()
	defer func() { _ = hub.Close() }()

	tokens := accesstoken.NewFromConfig(cfg.Tokens)
	tokens.StartSweeper(ctx, cfg.Tokens.SweepInterval)

	// Stores.
	userStore, err := users.NewMongoStore(ctx, db)
	if err != nil {
		log.Error("init user store", logger.Error(err))
		os.Exit(1)
	}
	txStore, err := transactions.NewMongoStore(ctx, db)
	if err != nil {
		log.Error("init transaction store", logger.Error(err))
		os.Exit(1)
	}
	planStore := plans.NewMongoStore(db)
	brochureStore := brochure.NewMongoStore(db)

	// Services, wired through the cmd-level adapters.
	planSvc := plans.NewService(planStore,
		plans.WithStorage(storage),
		plans.WithPublisher(hub),
		plans.WithServiceLogger(log),
	)

	txSvc := transactions.NewService(txStore,
		transactions.WithPlanDirectory(planDirectory{plans: planSvc}),
		transactions.WithNotifier(dispatcher),
		transactions.WithPublisher(hub),
		transactions.WithServiceLogger(log),
	)

	userSvc := users.NewService(userStore,
		users.WithPlanDirectory(planDirectory{plans: planSvc}),
		users.WithTransactionLog(transactionLog{txs: txSvc, plans: planSvc}),
		users.WithServiceLogger(log),
	)

	// Late-bound: transactions needs user contacts, users needs nothing
	// back, so the directory is attached after both services exist.
	transactions.WithUserDirectory(userDirectory{users: userSvc})(txSvc)
	plans.WithMemberDirectory(memberDirectory{users: userSvc})(planSvc)

	issuer := credentials.NewIssuer(userStore, dispatcher, cfg.LoginURL,
		credentials.WithLogger(log))

	auctionSvc := auctions.NewService(hub, auctions.WithServiceLogger(log))
	brochureSvc := brochure.NewService(brochureStore, storage, tokens, dispatcher, cfg.PublicURL,
		brochure.WithServiceLogger(log))
	enrollSvc := enroll.NewService(dispatcher, cfg.AdminEmail,
		enroll.WithServiceLogger(log))
	statsSvc := stats.NewService(db)

	// HTTP surface.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, mongo.Healthcheck(db.Client())))

	// Brochure and enroll share the bare /api prefix, matching the paths
	// the public site already calls.
	public := chi.NewRouter()
	brochure.NewHandler(brochureSvc).Routes(public)
	enroll.NewHandler(enrollSvc).Routes(public)

	r.Mount("/api/users", users.NewHandler(userSvc).Router())
	r.Mount("/api/credentials", credentials.NewHandler(issuer).Router())
	r.Mount("/api/chit-plans", plans.NewHandler(planSvc).Router())
	r.Mount("/api/transactions", transactions.NewHandler(txSvc).Router())
	r.Mount("/api/auctions", auctions.NewHandler(auctionSvc).Router())
	r.Mount("/api/stats", stats.NewHandler(statsSvc).Router())
	r.Mount("/api/realtime", realtime.NewHandler(hub, realtime.WithLogger(log)).Router())
	r.Mount("/api", public)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("http server stopped", logger.Error(err))
		os.Exit(1)
	}
}
