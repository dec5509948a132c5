package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/finbolt/payment-initiation-api/internal/account"
	acctrepo "github.com/finbolt/payment-initiation-api/internal/account/repo"
	"github.com/finbolt/payment-initiation-api/internal/auth"
	"github.com/finbolt/payment-initiation-api/internal/instruction"
	instrrepo "github.com/finbolt/payment-initiation-api/internal/instruction/repo"
	"github.com/finbolt/payment-initiation-api/internal/organization"
	orgrepo "github.com/finbolt/payment-initiation-api/internal/organization/repo"
	"github.com/finbolt/payment-initiation-api/internal/router"
	"github.com/finbolt/payment-initiation-api/internal/statement"
	stmtrepo "github.com/finbolt/payment-initiation-api/internal/statement/repo"
	"github.com/finbolt/payment-initiation-api/pkg/database"
	"github.com/finbolt/payment-initiation-api/pkg/notify"
	"github.com/finbolt/payment-initiation-api/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LoggerConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting payment-initiation-api")

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	// repos
	orgRepo := orgrepo.NewOrganizationRepo(sqlxDB)
	userRepo := orgrepo.NewUserRepo(sqlxDB)
	accountRepo := acctrepo.NewAccountRepo(sqlxDB)
	statementRepo := stmtrepo.NewStatementRepo(sqlxDB)
	instructionRepo := instrrepo.NewInstructionRepo(sqlxDB)

	// ensure schema; organizations first, the rest reference it
	ensureCtx, ensureCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer ensureCancel()
	for _, ensure := range []func(context.Context) error{
		orgRepo.EnsureTable,
		userRepo.EnsureTable,
		accountRepo.EnsureTable,
		statementRepo.EnsureTable,
		instructionRepo.EnsureTable,
	} {
		if err := ensure(ensureCtx); err != nil {
			sugar.Fatalf("ensure schema: %v", err)
		}
	}

	// settlement handoff publisher (optional)
	var publisher notify.Publisher = notify.Nop{}
	if brokerCfg := notify.AMQPConfigFromEnv(); brokerCfg.URL != "" {
		p, err := notify.DialAMQP(brokerCfg)
		if err != nil {
			sugar.Fatalf("broker connect: %v", err)
		}
		defer p.Close()
		publisher = p
		sugar.Info("settlement handoff publisher connected")
	}

	// services
	orgSvc := organization.NewService(orgRepo, userRepo)
	adminSvc := auth.NewService(auth.ConfigFromEnv())
	accountSvc := account.NewService(accountRepo)
	statementSvc := statement.NewService(statementRepo)
	instructionSvc := instruction.NewService(instructionRepo, publisher, sugar)

	clock := clockwork.NewRealClock()

	handlers := router.Handlers{
		Auth:          auth.NewHandler(adminSvc, sugar),
		Organizations: organization.NewHandler(orgSvc, adminSvc, sugar),
		Accounts:      account.NewHandler(orgSvc, accountSvc, adminSvc, sugar),
		Instructions:  instruction.NewHandler(orgSvc, accountSvc, instructionSvc, clock, sugar),
		Statements:    statement.NewHandler(orgSvc, accountSvc, statementSvc, sugar),
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: router.RegisterRoutes(sugar, handlers),
	}

	// run server in background
	go func() {
		sugar.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server first so in-flight writes finish
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	// ping db once more
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
