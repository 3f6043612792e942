package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// DefaultEnvFile is read before the process environment when it exists.
const DefaultEnvFile = ".env"

type Config struct {
	Port string `env:"PORT" env-default:"3000"`

	StoreDriver   string `env:"STORE_DRIVER" env-default:"mongo"`
	MongoURI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" env-default:"courses"`

	DBHost         string `env:"DB_HOST" env-default:"localhost"`
	DBPort         string `env:"DB_PORT" env-default:"3306"`
	DBName         string `env:"DB_NAME" env-default:"courses"`
	DBUser         string `env:"DB_USER" env-default:"appuser"`
	DBPassword     string `env:"DB_PASSWORD" env-default:"apppass"`
	DBTimeout      string `env:"DB_TIMEOUT" env-default:"5s"`
	DBReadTimeout  string `env:"DB_READ_TIMEOUT" env-default:"5s"`
	DBWriteTimeout string `env:"DB_WRITE_TIMEOUT" env-default:"5s"`

	JWTSecret  string        `env:"JWT_SECRET" env-default:"supersecretkey"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"10"`

	RedisURL       string        `env:"REDIS_URL"`
	CourseCacheTTL time.Duration `env:"COURSE_CACHE_TTL" env-default:"30s"`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","`

	CORSOrigin        string `env:"CORS_ORIGIN" env-default:"*"`
	AuthRatePerMinute int    `env:"AUTH_RATE_PER_MINUTE" env-default:"30"`
	LogLevel          string `env:"LOG_LEVEL" env-default:"info"`
	MetricsEnabled    bool   `env:"METRICS_ENABLED" env-default:"true"`
}

// Load reads path as a dotenv file when it exists and falls back to the
// process environment otherwise.
func Load(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case DriverMongo, DriverMySQL, DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of mongo, mysql, memory (got %q)", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive (got %s)", c.TokenTTL)
	}
	if c.BcryptCost <= 0 {
		return fmt.Errorf("BCRYPT_COST must be positive (got %d)", c.BcryptCost)
	}
	for _, p := range c.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: %q is neither an IP nor a CIDR", p)
			}
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// DSN builds the MySQL connection string from the DB_* settings.
func (c Config) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.DBUser
	cfg.Passwd = c.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = c.DBHost + ":" + c.DBPort
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	cfg.Params["charset"] = "utf8mb4"
	cfg.Params["timeout"] = c.DBTimeout
	cfg.Params["readTimeout"] = c.DBReadTimeout
	cfg.Params["writeTimeout"] = c.DBWriteTimeout
	return cfg.FormatDSN()
}
