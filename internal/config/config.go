package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"brawl-missions/pkg/logger"
)

type Config struct {
	HTTPPort       string
	Env            string
	CORSOrigins    []string
	MetricsEnabled bool
	DB             DBConfig
	Missions       MissionsConfig
	JWT            JWTConfig
	Cloudinary     CloudinaryConfig
	NATS           NATSConfig
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type MissionsConfig struct {
	MaxCrewPerMission int64
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type CloudinaryConfig struct {
	URL string
}

type NATSConfig struct {
	URL string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func defaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "brawl_missions")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_timezone", "UTC")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", 30*time.Minute)
	v.SetDefault("db_auto_migrate", false)
	v.SetDefault("jwt_ttl_days", 1)
}

// Load reads configuration from the environment, falling back to the nearest
// .env file and then to defaults. Required values are validated.
func Load(log logger.Logger) (Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if err := readDotEnv(v, log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	maxCrew, maxCrewErr := parseCount(v.GetString("max_crew_per_mission"))

	cfg := Config{
		HTTPPort:       v.GetString("http_port"),
		Env:            v.GetString("env"),
		CORSOrigins:    splitList(v.GetString("cors_allowed_origins")),
		MetricsEnabled: v.GetBool("metrics_enabled"),
		DB: DBConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
			DSN:             v.GetString("db_dsn"),
			Host:            v.GetString("db_host"),
			Port:            v.GetString("db_port"),
			User:            v.GetString("db_user"),
			Password:        v.GetString("db_password"),
			Name:            v.GetString("db_name"),
			SSLMode:         v.GetString("db_sslmode"),
			TimeZone:        v.GetString("db_timezone"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
			AutoMigrate:     v.GetBool("db_auto_migrate"),
		},
		Missions: MissionsConfig{
			MaxCrewPerMission: maxCrew,
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			TTL:    time.Duration(v.GetInt("jwt_ttl_days")) * 24 * time.Hour,
		},
		Cloudinary: CloudinaryConfig{
			URL: v.GetString("cloudinary_url"),
		},
		NATS: NATSConfig{
			URL: v.GetString("nats_url"),
		},
	}

	if err := errors.Join(maxCrewErr, cfg.Validate()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Missions.MaxCrewPerMission <= 0 {
		errs = append(errs, errors.New("MAX_CREW_PER_MISSION must be a positive integer"))
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL_DAYS must be positive"))
	}
	switch c.DB.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.DB.Driver))
	}
	return errors.Join(errs...)
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

// parseCount reads a plain base-10 integer. Empty means unset.
func parseCount(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("MAX_CREW_PER_MISSION %q is not a base-10 integer", value)
	}
	return n, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
