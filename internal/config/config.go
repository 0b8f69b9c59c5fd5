package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"wastage-backend/internal/logger"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=wastage port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	CORSOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:9002"`
	Timezone    string `env:"TIMEZONE" envDefault:"Local"` // gün gruplaması bu bölgeye göre yapılır

	// Kayıt deposu: postgres | firestore | mongo | memory | none
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres password=postgres dbname=wastage port=5432 sslmode=disable"`

	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"wastage"`

	// Kimlik doğrulama: jwt (yerleşik login) | firebase (ID token)
	AuthProvider string `env:"AUTH_PROVIDER" envDefault:"jwt"`
	JWTSecret    string `env:"JWT_SECRET"`

	// AI: gemini | openai | none
	AIProvider   string        `env:"AI_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	OpenAIAPIKey string        `env:"OPENAI_API_KEY"`
	OpenAIModel  string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogOutput string `env:"LOG_OUTPUT" envDefault:"stdout"`
	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
}

// Parse: ortam değişkenlerinden Config üretir, güvenlik kontrolü yapmaz
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config parse edilemedi: %w", err)
	}
	return cfg, nil
}

// Validate: production için zorunlu kontroller
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "postgres", "firestore", "mongo", "memory", "none":
	default:
		return fmt.Errorf("STORE_DRIVER geçersiz: %q", c.StoreDriver)
	}
	switch c.AuthProvider {
	case "jwt":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET environment değişkeni tanımlanmamış")
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET en az 32 karakter olmalıdır")
		}
	case "firebase":
		if c.FirebaseProjectID == "" {
			return fmt.Errorf("AUTH_PROVIDER=firebase için FIREBASE_PROJECT_ID zorunlu")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER geçersiz: %q", c.AuthProvider)
	}
	switch c.AIProvider {
	case "gemini", "openai", "none":
	default:
		return fmt.Errorf("AI_PROVIDER geçersiz: %q", c.AIProvider)
	}
	return nil
}

// Location: TIMEZONE çözümlenemezse sunucu yerel saati kullanılır
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logrus.Warnf("TIMEZONE %q yüklenemedi, Local kullanılıyor: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.LogLevel
	lc.Format = c.LogFormat
	lc.Output = c.LogOutput
	lc.Path = c.LogPath
	return lc
}

// Load: .env (varsa) + ortam değişkenleri. Hatalı config'de süreç durur.
func Load() *Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("%s yüklenemedi: %v", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		logrus.Fatalf("[FATAL] %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("[FATAL] %v", err)
	}

	if cfg.StoreDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		logrus.Warn("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:9002" {
		logrus.Warn("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor.")
	}
	return cfg
}
