package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_settings"
	listEmployeeAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_employee_appointments"
	updateAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	updateSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	userServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/migrate"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily reconciliation sweep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			if migrateUp {
				if _, err := migrate.Up(ctx, a.db, a.log); err != nil {
					a.log.Error("Failed to apply migrations: %v", err)
					return err
				}
			}

			return serve(ctx, a)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply embedded database migrations on startup")
	return cmd
}

// serve запускает HTTP сервер и, если включено, сверку до получения сигнала завершения
func serve(ctx context.Context, a *app) error {
	a.log.Info("Starting SMC-AppointmentService...")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.HTTPPort),
		Handler:      newRouter(a),
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
		a.log.Info("Server stopped gracefully")
		return nil
	})

	if a.cfg.Reconciliation.Enabled {
		sweeper := a.newSweeper()
		g.Go(func() error {
			a.log.Info("Reconciliation sweep enabled, interval=%s", a.cfg.Reconciliation.Interval.Duration)
			return sweeper.Run(gctx, a.cfg.Reconciliation.Interval.Duration)
		})
	}

	return g.Wait()
}

// newRouter собирает сервисы, use cases и handlers и регистрирует маршруты
func newRouter(a *app) *mux.Router {
	cfg := a.cfg

	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		a.log,
	)
	a.log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	var conflicts createAppointmentUC.ConflictRecorder
	if a.metrics != nil {
		conflicts = a.metrics
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		a.appointments,
		a.tenants,
		a.directory,
		a.txManager,
		a.location,
		a.log,
	)
	settingsSvc := settingsService.NewService(a.tenants, a.log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		a.appointments,
		a.catalog,
		a.directory,
		userClient,
		a.txManager,
		conflicts,
		a.log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		a.schedule,
		a.appointments,
		a.catalog,
		a.directory,
		a.txManager,
		a.location,
		a.log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, a.log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, a.log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, a.log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentSvc, a.log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, a.log)
	listEmployeeAppointments := listEmployeeAppointmentsHandler.NewHandler(appointmentSvc, a.log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, a.log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, a.log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(a.log))

	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		a.log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Tenant)

	// Чтение (нужен только X-Tenant-ID)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId:[0-9]+}/appointments", listEmployeeAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// Изменения (дополнительно требуют X-User-ID)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	return r
}
