package config

import (
	"os"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Mail        MailConfig
	MercadoPago MercadoPagoConfig
	Cloudinary  CloudinaryConfig
	QR          QRConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// PublicBaseURL is the externally reachable base used to build the
	// gateway notification URL, e.g. https://api.coronaclubxp.com
	PublicBaseURL string
	// FrontendBaseURL is where the gateway sends the payer back after checkout.
	FrontendBaseURL string
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

type MailConfig struct {
	ResendAPIKey string
	From         string
	// AdminEmail receives a copy of every confirmation email.
	AdminEmail string
}

type MercadoPagoConfig struct {
	BaseURL string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type QRConfig struct {
	// Secret keys the registration fingerprint inside the QR payload.
	Secret string
}

type CORSConfig struct {
	AllowOrigins []string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            envOr("PORT", "8080"),
			Env:             envOr("ENV", "development"),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			PublicBaseURL:   envOr("PUBLIC_BASE_URL", "https://api.coronaclubxp.com"),
			FrontendBaseURL: envOr("FRONTEND_BASE_URL", "https://coronaclubxp.com"),
		},
		Database: DatabaseConfig{
			DSN:             envOr("DB_DSN", "supergp:supergp@tcp(localhost:3306)/supergp?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret: envOr("JWT_SECRET", "change-me-in-production"),
			AccessExpiry: 24 * time.Hour,
			Issuer:       "supergp",
		},
		Mail: MailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			From:         envOr("MAIL_FROM", "inscripciones@coronaclubxp.com"),
			AdminEmail:   envOr("MAIL_ADMIN", "contacto@coronaclubxp.com"),
		},
		MercadoPago: MercadoPagoConfig{
			BaseURL: envOr("MP_BASE_URL", "https://api.mercadopago.com"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		QR: QRConfig{
			Secret: envOr("QR_SECRET", "super-gp-qr-secret-2026"),
		},
		CORS: CORSConfig{
			AllowOrigins: []string{envOr("CORS_ORIGIN", "*")},
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
