package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	Env     string
	BaseURL string

	DBDriver        string
	PostgresConnStr string
	ReplicaConnStrs []string
	AutoMigrate     bool

	MongoURI      string
	MongoDatabase string

	StorageDriver  string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	MinIOPublicURL string

	RedisAddr          string
	RedisPassword      string
	RateLimitPerMinute int64

	KafkaBrokers            string
	KafkaNotificationsTopic string

	JWTSecret               string
	JWTTTL                  time.Duration
	FirebaseCredentialsPath string

	OTELEndpoint    string
	OTELServiceName string
	OTELSampleRatio float64
}

// Load reads .env when present, then the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	port := getEnv("PORT", "8080")
	return &Config{
		Port:    port,
		Env:     getEnv("ENV", "development"),
		BaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),

		DBDriver:        getEnv("DB_DRIVER", "postgres"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		ReplicaConnStrs: splitList(getEnv("DB_REPLICA_URLS", "")),
		AutoMigrate:     getBool("AUTO_MIGRATE", true),

		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "clubhouse"),

		StorageDriver:  getEnv("STORAGE_DRIVER", "gridfs"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "clubhouse-images"),
		MinIOUseSSL:    getBool("MINIO_USE_SSL", false),
		MinIOPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RateLimitPerMinute: int64(getInt("RATE_LIMIT_PER_MINUTE", 60)),

		KafkaBrokers:            getEnv("KAFKA_BROKERS", ""),
		KafkaNotificationsTopic: getEnv("KAFKA_NOTIFICATIONS_TOPIC", "notifications"),

		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		JWTTTL:                  getDuration("JWT_TTL", 72*time.Hour),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),

		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELServiceName: getEnv("OTEL_SERVICE_NAME", "clubhouse-api"),
		OTELSampleRatio: getFloat("OTEL_TRACES_SAMPLER_ARG", 1),
	}
}

// MediaBaseURL is where the media route serves stored images
func (c *Config) MediaBaseURL() string {
	if c.StorageDriver == "minio" && c.MinIOPublicURL != "" {
		return c.MinIOPublicURL
	}
	return strings.TrimSuffix(c.BaseURL, "/") + "/media"
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
