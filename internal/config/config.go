package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	MinIO  MinIOConfig
	CORS   CORSConfig
	SMTP   SMTPConfig
	OTP    OTPConfig
	Upload UploadConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string
func (d DBConfig) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode
}

// URL returns the PostgreSQL connection URL (for golang-migrate)
func (d DBConfig) URL() string {
	return "postgres://" + d.User + ":" + d.Password +
		"@" + d.Host + ":" + d.Port +
		"/" + d.Name + "?sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CORSConfig struct {
	Origins []string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Configured reports whether SMTP credentials are present. Without them,
// verification codes are echoed to the server console instead of emailed.
func (s SMTPConfig) Configured() bool {
	return s.Username != "" && s.Password != ""
}

type OTPConfig struct {
	CodeLength      int
	ValidityMinutes int
}

type UploadConfig struct {
	MaxSizeMB int64
}

// MaxBytes returns the request body limit for multipart uploads
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if not exists - e.g. in Docker)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading from environment variables")
	}

	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "720h"))
	if err != nil {
		jwtExpiry = 720 * time.Hour
	}

	return &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Port: getEnv("APP_PORT", "5001"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "helplink"),
			Password: getEnv("DB_PASSWORD", "helplink"),
			Name:     getEnv("DB_NAME", "helplink"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("SECRET_KEY", "default-secret"),
			Expiry: jwtExpiry,
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "helplink-media"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		CORS: CORSConfig{
			Origins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM_ADDRESS", "noreply@helplink.local"),
			FromName: getEnv("SMTP_FROM_NAME", "HelpLink Team"),
		},
		OTP: OTPConfig{
			CodeLength:      getEnvInt("OTP_CODE_LENGTH", 6),
			ValidityMinutes: getEnvInt("OTP_VALIDITY_MINUTES", 3),
		},
		Upload: UploadConfig{
			MaxSizeMB: int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 16)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
