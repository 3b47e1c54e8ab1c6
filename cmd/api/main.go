package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ospteam/marketplace/internal/config"
	"github.com/ospteam/marketplace/internal/handlers"
	"github.com/ospteam/marketplace/internal/mailer"
	"github.com/ospteam/marketplace/internal/repository"
	"github.com/ospteam/marketplace/internal/services"
	"github.com/ospteam/marketplace/internal/session"
	xhttp "github.com/ospteam/marketplace/pkg/http"
	"github.com/ospteam/marketplace/pkg/logger"
	"github.com/ospteam/marketplace/pkg/pg"
	"github.com/ospteam/marketplace/pkg/prom"
	"github.com/ospteam/marketplace/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	mailClient, err := mailer.NewClient(&mailer.Config{
		ProviderURL: config.Get().MailProviderUrl,
		FromAddress: config.Get().MailFromAddress,
		Timeout:     config.Get().MailProviderTimeout,
	})
	if err != nil {
		logger.Error("failed creating mail client", "error", err)
		return
	}

	sessions := session.NewStore(redisAdap, config.Get().SessionTTL)

	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// services
	accountService := services.NewAccountService(userRepo, addressRepo, itemRepo, orderRepo, mailClient)
	authService := services.NewAuthService(userRepo, sessions)
	catalogService := services.NewCatalogService(categoryRepo, itemRepo, orderRepo)
	orderService := services.NewOrderService(orderRepo, itemRepo, userRepo, transactionRepo, mailClient)

	// handlers
	accountHandler := handlers.NewAccountHandler(accountService, authService, config.Get().ManagerSignupKey, config.Get().SessionTTL)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)

	handlers.Register(s.Router, authService, accountHandler, catalogHandler, orderHandler)

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		go func() {
			prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	logger.Info("marketplace api is up", "addr", config.Get().HttpListenAddr, "version", version, "commit", commit, "built", date)

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
