package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sirh/internal/db"
	"sirh/internal/domain/adeudos"
	"sirh/internal/domain/audit"
	"sirh/internal/domain/auth"
	"sirh/internal/domain/calendar"
	"sirh/internal/domain/catalog"
	"sirh/internal/domain/empleados"
	"sirh/internal/domain/notifications"
	"sirh/internal/domain/requests"
	"sirh/internal/platform/config"
	adeudoshandler "sirh/internal/transport/http/handlers/adeudos"
	audithandler "sirh/internal/transport/http/handlers/audit"
	authhandler "sirh/internal/transport/http/handlers/auth"
	cataloghandler "sirh/internal/transport/http/handlers/catalog"
	empleadoshandler "sirh/internal/transport/http/handlers/empleados"
	justificanteshandler "sirh/internal/transport/http/handlers/justificantes"
	notificationshandler "sirh/internal/transport/http/handlers/notifications"
	prestacioneshandler "sirh/internal/transport/http/handlers/prestaciones"
	"sirh/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	festivos, err := calendar.ParseFestivos(cfg.FestivosExtra)
	if err != nil {
		log.Fatalf("FESTIVOS_EXTRA: %v", err)
	}
	vacaciones, err := calendar.ParseVacaciones(cfg.Vacaciones)
	if err != nil {
		log.Fatalf("VACACIONES: %v", err)
	}
	cal := calendar.New(festivos, vacaciones)
	catalogo := catalog.NewStore()

	auditStore := audit.NewStore(pool, logger)
	empleadosStore := empleados.NewStore(pool)
	notifService := notifications.New(notifications.NewStore(pool), logger)

	evaluator := requests.NewEvaluator(cal, catalogo, requests.Reglas{
		EconomicosMaxSolicitudes:    cfg.EconomicosMaxSolicitudes,
		EconomicosDiasPorSolicitud:  cfg.EconomicosDiasPorSolicitud,
		EconomicosSeparacionDias:    cfg.EconomicosSeparacionDias,
		EconomicosBloqueoVacaciones: cfg.EconomicosBloqueoVacacion,
		PermisosHorasMaxQuincena:    cfg.PermisosHorasMaxQuincena,
	})
	requestsService := requests.NewService(requests.NewStore(pool), empleadosStore, evaluator, notifService, logger)

	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret)
	adeudosStore := adeudos.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		cataloghandler.NewHandler(catalogo, cal).RegisterRoutes(r)
		justificanteshandler.NewHandler(requestsService, empleadosStore, auditStore).RegisterRoutes(r)
		prestacioneshandler.NewHandler(requestsService, auditStore).RegisterRoutes(r)
		empleadoshandler.NewHandler(empleadosStore, auditStore).RegisterRoutes(r)
		adeudoshandler.NewHandler(adeudosStore, auditStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifService).RegisterRoutes(r)
		audithandler.NewHandler(auditStore).RegisterRoutes(r)
	})

	logger.Info("servidor escuchando", slog.String("addr", cfg.Addr), slog.String("env", cfg.Environment))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
