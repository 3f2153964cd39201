package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	Environment    string
	AllowedOrigins []string
	MigrationsDir  string
	RunMigrations  bool

	// Reglas de días económicos
	EconomicosMaxSolicitudes   int
	EconomicosDiasPorSolicitud int
	EconomicosSeparacionDias   int
	EconomicosBloqueoVacacion  int

	// Reglas de permisos por horas
	PermisosHorasMaxQuincena int

	// Calendario laboral: festivos extra "YYYY-MM-DD,..." y periodos de
	// vacaciones "YYYY-MM-DD:YYYY-MM-DD;...".
	FestivosExtra string
	Vacaciones    string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                       getEnv("APP_ADDR", ":8080"),
		DatabaseURL:                getEnv("DATABASE_URL", ""),
		JWTSecret:                  getEnv("JWT_SECRET", ""),
		Environment:                getEnv("APP_ENV", "development"),
		AllowedOrigins:             getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		MigrationsDir:              getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:              getEnvBool("RUN_MIGRATIONS", true),
		EconomicosMaxSolicitudes:   getEnvInt("ECONOMICOS_MAX_SOLICITUDES", 3),
		EconomicosDiasPorSolicitud: getEnvInt("ECONOMICOS_DIAS_POR_SOLICITUD", 3),
		EconomicosSeparacionDias:   getEnvInt("ECONOMICOS_SEPARACION_DIAS", 30),
		EconomicosBloqueoVacacion:  getEnvInt("ECONOMICOS_BLOQUEO_VACACIONES", 15),
		PermisosHorasMaxQuincena:   getEnvInt("PERMISOS_HORAS_MAX_QUINCENA", 2),
		FestivosExtra:              getEnv("FESTIVOS_EXTRA", ""),
		Vacaciones:                 getEnv("VACACIONES", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.EconomicosMaxSolicitudes <= 0 {
		return fmt.Errorf("ECONOMICOS_MAX_SOLICITUDES must be positive")
	}
	if c.PermisosHorasMaxQuincena <= 0 {
		return fmt.Errorf("PERMISOS_HORAS_MAX_QUINCENA must be positive")
	}
	return nil
}
