package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"irrigation_panel/internal/handlers"
	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/metrics"
	"irrigation_panel/internal/mqtt"
	"irrigation_panel/internal/repository"
	"irrigation_panel/internal/repository/db"
	"irrigation_panel/internal/server"
	"irrigation_panel/internal/service"

	_ "irrigation_panel/docs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the panel API and the background synchronisation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serve()
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func serve() {
	log := initLogger()
	defer func() { _ = log.Sync() }()

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Options{
		Defaults:       deviceDefaults(),
		CheckTimeout:   viper.GetDuration("device.check_timeout"),
		RequestTimeout: viper.GetDuration("device.request_timeout"),
		SimLatency:     viper.GetDuration("device.sim_latency"),
		Metrics:        metrics.NewMetrics(reg),
		Log:            log,
	})
	apiHandler := handlers.NewHandler(services, reg, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services.Init(ctx)
	services.Start(ctx, viper.GetDuration("intervals.connection"), viper.GetDuration("intervals.schedule"))

	publisher := startMQTT(ctx, services, log)
	if publisher != nil {
		defer publisher.Close()
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// startMQTT mirrors snapshots and notifications to a broker when one is configured.
func startMQTT(ctx context.Context, services *service.Service, log *logger.Logger) *mqtt.Publisher {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		return nil
	}
	p := mqtt.NewPublisher(mqtt.Options{
		Broker:   broker,
		ClientID: viper.GetString("mqtt.client_id"),
		Username: viper.GetString("mqtt.username"),
		Password: viper.GetString("mqtt.password"),
		Topic:    viper.GetString("mqtt.topic"),
	}, log)
	if err := p.Connect(); err != nil {
		// paho keeps retrying in the background
		log.Errorw("mqtt_connect_failed", "err", err, "broker", broker)
	}
	services.Notifications.Subscribe(p)
	go p.Run(ctx, viper.GetDuration("mqtt.interval"), services.Monitoring.Snapshot)
	return p
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_server_starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && err != http.ErrServerClosed {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
