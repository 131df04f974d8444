package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type (
	APP struct {
		Name        string
		Host        string
		Port        string
		Env         string
		JWTSecret   string
		JWTTTL      time.Duration
		AdminAPIKey string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		SSLMode  string
	}
	S3 struct {
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		BucketUploads   string
		Endpoint        string
		PathStyle       bool
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
		TLS      bool
	}
	Razorpay struct {
		KeyID     string
		KeySecret string
	}
	Stripe struct {
		SecretKey     string
		PublicKey     string
		WebhookSecret string
	}
	Files struct {
		DefaultSizeLimitGB   int
		DefaultValidityHours int
		UploadURLTTL         time.Duration
		SweepInterval        time.Duration
		USDConversionDivisor int64
	}

	Config struct {
		App      APP
		DB       DB
		S3       S3
		MQ       MQ
		SMTP     SMTP
		Razorpay Razorpay
		Stripe   Stripe
		Files    Files
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func Load() Config {
	app := APP{
		Name:        getEnv("SERVICE_NAME", "fileshare"),
		Host:        getEnv("SERVICE_HOST", ""),
		Port:        getEnv("SERVICE_PORT", "5000"),
		Env:         getEnv("SERVICE_ENV", ""),
		JWTSecret:   getEnv("SERVICE_JWT_SECRET", ""),
		JWTTTL:      getEnvDuration("SERVICE_JWT_TTL", 7*24*time.Hour),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
	s3 := S3{
		Region:          getEnv("S3_REGION", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		BucketUploads:   getEnv("S3_BUCKET_UPLOADS", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		PathStyle:       getEnvBool("S3_PATH_STYLE", false),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "fileshare.notifications"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "fileshare.emails"),
	}
	smtp := SMTP{
		Host:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
		Port:     getEnvInt("EMAIL_PORT", 587),
		Username: getEnv("EMAIL_API_KEY", ""),
		Password: getEnv("EMAIL_API_SECRET", ""),
		From:     getEnv("EMAIL_USER", ""),
		TLS:      getEnvBool("EMAIL_SECURE", false),
	}
	rzp := Razorpay{
		KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
	}
	stripe := Stripe{
		SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		PublicKey:     getEnv("STRIPE_PUBLIC_KEY", ""),
		WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
	}
	files := Files{
		DefaultSizeLimitGB:   getEnvInt("DEFAULT_FILE_SIZE_LIMIT", 2),
		DefaultValidityHours: getEnvInt("DEFAULT_FILE_VALIDITY_HOURS", 4),
		UploadURLTTL:         getEnvDuration("UPLOAD_URL_TTL", time.Hour),
		SweepInterval:        getEnvDuration("SWEEP_INTERVAL", time.Hour),
		USDConversionDivisor: int64(getEnvInt("INR_PER_USD", 75)),
	}

	return Config{
		App:      app,
		DB:       db,
		S3:       s3,
		MQ:       mq,
		SMTP:     smtp,
		Razorpay: rzp,
		Stripe:   stripe,
		Files:    files,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
