package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hris-service/internal/api/http"
	"github.com/spec-kit/hris-service/internal/api/http/handlers"
	"github.com/spec-kit/hris-service/internal/config"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/invite"
	"github.com/spec-kit/hris-service/internal/mail"
	"github.com/spec-kit/hris-service/internal/observability"
	"github.com/spec-kit/hris-service/internal/persistence"
	"github.com/spec-kit/hris-service/internal/realtime"
	"github.com/spec-kit/hris-service/internal/repository"
	"github.com/spec-kit/hris-service/internal/service"
	"github.com/spec-kit/hris-service/internal/storage"
	"github.com/spec-kit/hris-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewAsyncDispatcher(logger, 256)

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var (
		feed       realtime.Feed
		redisCheck handlers.Pinger
	)
	if redis != nil {
		feed = realtime.NewRedisFeed(redis.Client, logger)
		redisCheck = redis
	} else {
		feed = realtime.NewLocalFeed()
	}

	resolver := repository.NewResolver(repository.ResolverConfig{
		Enabled:         cfg.Postgres.Configured(),
		Preferred:       cfg.Backend.Preferred,
		ProbeTimeout:    cfg.Backend.ProbeTimeout(),
		ReprobeInterval: cfg.Backend.ReprobeInterval(),
	}, connectPostgres(cfg.Postgres, logger), logger,
		repository.WithMetrics(metrics),
		repository.WithChangeNotifier(feed),
	)
	defer resolver.Close()

	lister, err := storage.NewGCSLister(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to init document storage", zap.Error(err))
	}
	defer lister.Close() //nolint:errcheck

	var sender mail.Sender = mail.NewLogSender(logger)
	if cfg.Mail.Configured() {
		sender = mail.NewHTTPSender(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.From, logger)
	}

	companyService := service.NewCompanyService(repository.For(resolver, repository.Companies))
	leaveTypeService := service.NewLeaveTypeService(repository.For(resolver, repository.LeaveTypes))
	leaveService := service.NewLeaveService(service.LeaveDependencies{
		Requests:   repository.For(resolver, repository.LeaveRequests),
		Dispatcher: dispatcher,
	})
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		Employees:  repository.For(resolver, repository.Employees),
		Companies:  repository.For(resolver, repository.Companies),
		Tokens:     invite.NewTokenManager(cfg.Invite.TokenSecret, cfg.Invite.InviteTTL()),
		PortalURL:  cfg.Mail.PortalURL,
		Dispatcher: dispatcher,
	})
	recruitmentService := service.NewRecruitmentService(service.RecruitmentDependencies{
		Postings:   repository.For(resolver, repository.JobPostings),
		Candidates: repository.For(resolver, repository.Candidates),
		Interviews: repository.For(resolver, repository.Interviews),
		Offers:     repository.For(resolver, repository.Offers),
		Dispatcher: dispatcher,
	})
	payrollService := service.NewPayrollService(service.PayrollDependencies{
		Records:    repository.For(resolver, repository.PayrollRecords),
		Dispatcher: dispatcher,
	})
	documentService := service.NewDocumentService(repository.For(resolver, repository.Documents), lister)
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Notifications: repository.For(resolver, repository.Notifications),
		Employees:     repository.For(resolver, repository.Employees),
		Sender:        sender,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
		Logger:        logger,
		Config:        cfg.Mail,
	})

	workerDone := worker.Start(ctx, worker.Dependencies{
		Notifications:   notificationService,
		Events:          dispatcher,
		EventWorkers:    4,
		Backend:         resolver,
		MonitorInterval: cfg.Backend.ReprobeInterval(),
		Logger:          logger,
	})

	leaveHandler := handlers.NewLeaveHandler(leaveService, feed, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:          cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, resolver, redisCheck),
		Metrics:       metrics,
		Companies:     handlers.NewRecordsHandler(companyService.Records, repository.Companies.New, nil),
		Employees:     handlers.NewRecordsHandler(employeeService.Records, repository.Employees.New, nil),
		LeaveTypes:    handlers.NewRecordsHandler(leaveTypeService, repository.LeaveTypes.New, nil),
		LeaveRequests: handlers.NewRecordsHandler(leaveService.Records, repository.LeaveRequests.New, leaveHandler.DecodeCreate),
		JobPostings:   handlers.NewRecordsHandler(recruitmentService.Postings, repository.JobPostings.New, nil),
		Candidates:    handlers.NewRecordsHandler(recruitmentService.Candidates, repository.Candidates.New, nil),
		Interviews:    handlers.NewRecordsHandler(recruitmentService.Interviews, repository.Interviews.New, nil),
		Offers:        handlers.NewRecordsHandler(recruitmentService.Offers, repository.Offers.New, nil),
		Payroll:       handlers.NewRecordsHandler(payrollService.Records, repository.PayrollRecords.New, nil),
		Documents:     handlers.NewRecordsHandler(documentService.Records, repository.Documents.New, nil),
		Notifications: handlers.NewRecordsHandler(notificationService.Records, repository.Notifications.New, nil),
		Leave:         leaveHandler,
		Invitations:   handlers.NewEmployeesHandler(employeeService),
		Recruitment:   handlers.NewRecruitmentHandler(recruitmentService),
		PayrollOps:    handlers.NewPayrollHandler(payrollService),
		Inbox:         handlers.NewNotificationsHandler(notificationService),
		DocumentFiles: handlers.NewDocumentsHandler(documentService, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	<-workerDone
}

// connectPostgres opens the live store, applying migrations first when enabled.
func connectPostgres(cfg config.PostgresConfig, logger *zap.Logger) repository.Connector {
	return func(ctx context.Context) (repository.Backend, error) {
		pg, err := persistence.NewPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if cfg.RunMigrations {
			if err := persistence.RunMigrations(cfg.DSN, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return pg.PoolHandle(), nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
