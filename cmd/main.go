package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	cancelBookingHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_booking"
	createOrderHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_order"
	createPaymentHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_payment"
	createShopHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_shop"
	deleteShopHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/delete_shop"
	getBookingHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_booking"
	getDeliveryTimeslotsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_delivery_timeslots"
	getOrderHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_order"
	getPaymentHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_payment"
	getPickupTimeslotsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_pickup_timeslots"
	getShopHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_shop"
	getUserBookingsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_user_bookings"
	getUserOrdersHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_user_orders"
	paymentCallbackHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/payment_callback"
	refreshTimeslotsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/refresh_timeslots"
	regenerateTimeslotsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/regenerate_timeslots"
	updateOrderStatusHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/update_order_status"
	updateShopHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/update_shop"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/config"
	addressRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/address"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
	cartRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/cart"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
	paymentRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/payment"
	shopRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/shop"
	timeslotRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-LaundryService/internal/integrations/events"
	"github.com/m04kA/SMC-LaundryService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-LaundryService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-LaundryService/internal/service/bookings"
	ordersService "github.com/m04kA/SMC-LaundryService/internal/service/orders"
	paymentsService "github.com/m04kA/SMC-LaundryService/internal/service/payments"
	shopsService "github.com/m04kA/SMC-LaundryService/internal/service/shops"
	timeslotsService "github.com/m04kA/SMC-LaundryService/internal/service/timeslots"
	bookTimeslotUC "github.com/m04kA/SMC-LaundryService/internal/usecase/book_timeslot"
	confirmPaymentUC "github.com/m04kA/SMC-LaundryService/internal/usecase/confirm_payment"
	createOrderUC "github.com/m04kA/SMC-LaundryService/internal/usecase/create_order_from_cart"
	getDeliveryTimeslotsUC "github.com/m04kA/SMC-LaundryService/internal/usecase/get_delivery_timeslots"
	getPickupTimeslotsUC "github.com/m04kA/SMC-LaundryService/internal/usecase/get_pickup_timeslots"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
	"github.com/m04kA/SMC-LaundryService/pkg/metrics"
	"github.com/m04kA/SMC-LaundryService/pkg/txmanager"
)

// EventPublisher публикует доменные события после коммита
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-LaundryService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Timeslots.LoadLocation()
	if err != nil {
		log.Fatal("Failed to load timeslots location %q: %v", cfg.Timeslots.Location, err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка только передает транзакцию через контекст
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем публикацию событий
	var publisher EventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Event publishing enabled (exchange=%s)", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	shopRepository := shopRepo.NewRepository(wrappedDB)
	timeslotRepository := timeslotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	addressRepository := addressRepo.NewRepository(wrappedDB)
	cartRepository := cartRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	timeslotSvc := timeslotsService.NewService(
		shopRepository,
		timeslotRepository,
		txMgr,
		metricsCollector,
		cfg.Timeslots.HorizonDays,
		location,
		log,
	)
	shopSvc := shopsService.NewService(
		shopRepository,
		timeslotRepository,
		bookingRepository,
		timeslotSvc,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		timeslotRepository,
		orderRepository,
		shopRepository,
		txMgr,
		log,
	)
	orderSvc := ordersService.NewService(orderRepository, log)
	paymentSvc := paymentsService.NewService(orderRepository, paymentRepository, cfg.Payments.Currency, log)

	// Инициализируем use cases
	getPickupTimeslotsUseCase := getPickupTimeslotsUC.NewUseCase(
		timeslotRepository,
		cfg.Timeslots.HorizonDays,
		location,
		log,
	)
	getDeliveryTimeslotsUseCase := getDeliveryTimeslotsUC.NewUseCase(
		timeslotRepository,
		bookingRepository,
		shopRepository,
		location,
		log,
	)
	bookTimeslotUseCase := bookTimeslotUC.NewUseCase(
		timeslotRepository,
		shopRepository,
		bookingRepository,
		addressRepository,
		txMgr,
		metricsCollector,
		time.Duration(cfg.Booking.LockTimeoutMs)*time.Millisecond,
		log,
	)
	createOrderUseCase := createOrderUC.NewUseCase(
		cartRepository,
		orderRepository,
		bookingRepository,
		shopRepository,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		paymentRepository,
		orderRepository,
		txMgr,
		publisher,
		metricsCollector,
		cfg.Payments.Currency,
		log,
	)

	// Инициализируем handlers
	getPickupTimeslots := getPickupTimeslotsHandler.NewHandler(getPickupTimeslotsUseCase, location, log)
	getDeliveryTimeslots := getDeliveryTimeslotsHandler.NewHandler(getDeliveryTimeslotsUseCase, log)
	refreshTimeslots := refreshTimeslotsHandler.NewHandler(timeslotSvc, log)
	createBooking := createBookingHandler.NewHandler(bookTimeslotUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	createShop := createShopHandler.NewHandler(shopSvc, log)
	getShop := getShopHandler.NewHandler(shopSvc, log)
	updateShop := updateShopHandler.NewHandler(shopSvc, log)
	deleteShop := deleteShopHandler.NewHandler(shopSvc, log)
	regenerateTimeslots := regenerateTimeslotsHandler.NewHandler(shopSvc, log)
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(orderSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(orderSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentSvc, log)
	paymentCallback := paymentCallbackHandler.NewHandler(
		paymentgateway.NewVerifier(cfg.Payments.WebhookSecret),
		confirmPaymentUseCase,
		log,
	)

	// Запускаем фоновое обновление горизонта слотов
	var scheduler *jobs.Scheduler
	if cfg.Timeslots.RefreshEnabled {
		scheduler, err = jobs.NewScheduler(timeslotSvc, cfg.Timeslots.RefreshCron, location, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		scheduler.Start()
		log.Info("Timeslots refresh scheduled (cron=%q, location=%s)", cfg.Timeslots.RefreshCron, location)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestContext(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты забора
	api.HandleFunc("/timeslots/pickup", getPickupTimeslots.Handle).Methods(http.MethodGet, http.MethodPost)

	// Карточка прачечной
	api.HandleFunc("/shops/{shopId}", getShop.Handle).Methods(http.MethodGet)

	// Callback платежного шлюза (проверяется подпись)
	api.HandleFunc("/payments/callback", paymentCallback.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT или X-User-ID от gateway)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Слоты ---
	protected.HandleFunc("/timeslots/delivery", getDeliveryTimeslots.Handle).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/timeslots/refresh", refreshTimeslots.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Прачечные (для владельцев) ---
	protected.HandleFunc("/shops", createShop.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopId}", updateShop.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/shops/{shopId}", deleteShop.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/shops/{shopId}/timeslots", regenerateTimeslots.Handle).Methods(http.MethodPut)

	// --- Заказы ---
	protected.HandleFunc("/orders/from-cart", createOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders", getUserOrders.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)

	// --- Платежи ---
	protected.HandleFunc("/orders/{orderId}/payments", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}/payments", getPayment.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.Error("Failed to stop scheduler: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
