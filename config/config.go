package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Postgres Postgres
	Redis    Redis
	HTTP     HTTP
	API      API
	Cache    Cache
	Jobs     Jobs
}

type Postgres struct {
	Host            string        `env:"PG_HOST"`
	Port            int           `env:"PG_PORT"`
	DbName          string        `env:"PG_DB_NAME"`
	Password        string        `env:"PG_PASSWORD"`
	User            string        `env:"PG_USER"`
	SSLMode         string        `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"1m"`
	ConnAttempts    int           `env:"PG_CONN_ATTEMPTS" envDefault:"10"`
	ConnRetryDelay  time.Duration `env:"PG_CONN_RETRY_DELAY" envDefault:"1s"`
	MigrationDir    string        `env:"PG_MIGRATION_DIR" envDefault:"migrations"`
}

func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s password=%s",
		p.Host, p.Port, p.User, p.DbName, p.SSLMode, p.Password)
}

type Redis struct {
	Host         string        `env:"REDIS_HOST"`
	Port         int           `env:"REDIS_PORT"`
	Password     string        `env:"REDIS_PASSWORD" envDefault:""`
	DB           int           `env:"REDIS_DB" envDefault:"0"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	BasePath        string        `env:"HTTP_BASE_PATH" envDefault:"/api"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AppName         string        `env:"HTTP_APP_NAME" envDefault:"portfolioApp"`
	DefaultPageSize int           `env:"HTTP_DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int           `env:"HTTP_MAX_PAGE_SIZE" envDefault:"200"`
}

type API struct {
	Debug        bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout      time.Duration `env:"API_TIMEOUT" envDefault:"5s"`
	AlphaVantage AlphaVantage
}

type AlphaVantage struct {
	Url    string `env:"ALPHA_VANTAGE_URL" envDefault:"https://www.alphavantage.co"`
	ApiKey string `env:"ALPHA_VANTAGE_API_KEY" envDefault:"demo"`
}

type Cache struct {
	EntityExpiration time.Duration `env:"CACHE_ENTITY_EXPIRATION" envDefault:"10m"`
}

type Jobs struct {
	PriceFeedProbeEnabled  bool          `env:"PRICE_FEED_PROBE_JOB_ENABLED" envDefault:"false"`
	PriceFeedProbeInterval time.Duration `env:"PRICE_FEED_PROBE_JOB_INTERVAL" envDefault:"6h"`
	PriceFeedProbeTicker   string        `env:"PRICE_FEED_PROBE_TICKER" envDefault:"IBM"`
	Timeout                time.Duration `env:"JOB_TIMEOUT" envDefault:"30s"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
