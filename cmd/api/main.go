package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"staylix/internal/config"
	"staylix/internal/database"
	"staylix/internal/middleware"
	"staylix/internal/modules/booking"
	"staylix/internal/modules/catalog"
	"staylix/internal/modules/discount"
	"staylix/internal/modules/livefeed"
	"staylix/internal/modules/notification"
	"staylix/internal/modules/payment"
	jwtsvc "staylix/internal/pkg/jwt"
	"staylix/internal/pkg/lock"
	"staylix/internal/pkg/mq"
	"staylix/internal/repository"
)

func main() {
	log := logrus.New()
	if err := run(log); err != nil {
		log.WithError(err).Fatal("api failed")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.IsDev() {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{Debug: cfg.DBDebug, Log: log})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	locker, closeLocker, err := newLocker(cfg, log)
	if err != nil {
		return err
	}
	defer closeLocker()

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	gateway, err := newGateway(cfg, log)
	if err != nil {
		return fmt.Errorf("init payment gateway: %w", err)
	}

	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	bookingRepo := repository.NewBookingRepository(db, locker)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	auth := middleware.NewAuthenticator(j, userRepo)

	hub := livefeed.NewHub()
	defer hub.Close()

	dispatcher := notification.NewDispatcher(mailer, hub, publisher, cfg.Notification.Timeout, log)

	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo))

	discountService := discount.NewService(discountRepo, log)
	discountHandler := discount.NewHandler(discountService)

	paymentService := payment.NewService(gateway, log)
	paymentHandler := payment.NewHandler(paymentService)

	bookingService := booking.NewService(bookingRepo, catalogRepo, gateway, dispatcher, booking.Options{
		AllowPayLater:  cfg.Booking.AllowPayLater,
		StrictDiscount: cfg.Booking.StrictDiscount,
	}, log)
	bookingHandler := booking.NewHandler(bookingService)

	feedHandler := livefeed.NewHandler(hub, auth, cfg.CORSAllowedOrigins, log)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "feed_owners_online": hub.GetOnlineCount()})
	})
	feedHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		catalogHandler.RegisterRoutes(v1)
		discountHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(auth))
		{
			bookingHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			discountHandler.RegisterProtectedRoutes(protected)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     cfg.HTTPAddr,
			"env":      cfg.AppEnv,
			"provider": cfg.Payment.Provider,
		}).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-ch:
	case err := <-serveErr:
		if err != nil {
			dispatcher.Wait()
			return fmt.Errorf("http server: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	dispatcher.Wait()
	log.Info("api stopped")
	return nil
}

func newLocker(cfg *config.Config, log *logrus.Logger) (lock.Locker, func(), error) {
	if cfg.Booking.RedisURL == "" {
		return lock.NewLocal(), func() {}, nil
	}
	opt, err := redis.ParseURL(cfg.Booking.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info("using redis room lock")
	return lock.NewRedis(client, "staylix:lock:", cfg.Booking.LockTTL), func() { _ = client.Close() }, nil
}

func newPublisher(cfg *config.Config, log *logrus.Logger) (mq.Publisher, error) {
	if cfg.Notification.AMQPURL == "" {
		return mq.Noop{}, nil
	}
	p, err := mq.NewPublisher(cfg.Notification.AMQPURL, cfg.Notification.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("init rabbitmq: %w", err)
	}
	log.WithField("exchange", cfg.Notification.AMQPExchange).Info("publishing booking events")
	return p, nil
}

func newGateway(cfg *config.Config, log *logrus.Logger) (payment.Gateway, error) {
	if cfg.Payment.Provider == config.ProviderRazorpay {
		return payment.NewRazorpayClient(payment.RazorpayConfig{
			KeyID:     cfg.Payment.KeyID,
			KeySecret: cfg.Payment.KeySecret,
			BaseURL:   cfg.Payment.BaseURL,
			Currency:  cfg.Payment.Currency,
			Timeout:   cfg.Payment.Timeout,
		}, log)
	}
	log.Warn("using sandbox payment gateway")
	return payment.NewSandbox(cfg.Payment.SandboxKey, cfg.Payment.Currency), nil
}

func newMailer(cfg *config.Config, log *logrus.Logger) (notification.Mailer, error) {
	if cfg.Mail.SMTPHost == "" {
		return notification.NewConsoleMailer(log), nil
	}
	m, err := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Username: cfg.Mail.SMTPUser,
		Password: cfg.Mail.SMTPPass,
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
	})
	if err != nil {
		return nil, fmt.Errorf("init smtp mailer: %w", err)
	}
	return m, nil
}
