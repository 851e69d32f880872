package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port                string
	Env                 string
	MetricsInternalOnly bool
}

// DatabaseConfig happy_hours 테이블용 데이터베이스 설정
type DatabaseConfig struct {
	Enabled  bool
	URLValue string // DATABASE_URL이 있으면 그대로 사용
	User     string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

// URL 데이터베이스 URL 생성
func (d *DatabaseConfig) URL() string {
	if d.URLValue != "" {
		return d.URLValue
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// StoreConfig key/value 저장소 설정
type StoreConfig struct {
	Backend     string // memory | postgres | dynamodb
	TableName   string // postgres kv 테이블
	DynamoTable string // dynamodb 테이블
}

// PlacesConfig Google Places API 설정
type PlacesConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Enabled API 키가 있을 때만 외부 검색 사용
func (p *PlacesConfig) Enabled() bool {
	return p.APIKey != ""
}

// RegionConfig 좌표 합성에 사용할 지역 설정
type RegionConfig struct {
	Default     string
	RegionsFile string
}

// AWSConfig DynamoDB / S3(R2) 접속 설정
type AWSConfig struct {
	Region      string
	Endpoint    string
	AccessKey   string
	SecretKey   string
	ImageBucket string
	ImagePrefix string
}

// TelemetryConfig OpenTelemetry 설정
type TelemetryConfig struct {
	Endpoint    string
	ServiceName string
	Environment string
}

// Config 애플리케이션의 모든 설정을 통합 관리하는 메인 구조체
type Config struct {
	Server    ServerConfig
	DB        DatabaseConfig
	Store     StoreConfig
	Places    PlacesConfig
	Region    RegionConfig
	AWS       AWSConfig
	Telemetry TelemetryConfig
}

var validBackends = map[string]bool{
	"memory":   true,
	"postgres": true,
	"dynamodb": true,
}

// Load 환경변수에서 설정을 로드
func Load() (*Config, error) {
	// .env 파일 로드 (없어도 에러 무시)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:                getEnv("SERVER_PORT", "3000"),
			Env:                 getEnv("SERVER_ENV", "development"),
			MetricsInternalOnly: getEnvBool("METRICS_INTERNAL_ONLY", false),
		},
		DB: DatabaseConfig{
			Enabled:  getEnvBool("HAPPY_HOURS_DB_ENABLED", os.Getenv("DATABASE_URL") != "" || os.Getenv("POSTGRES_HOST") != ""),
			URLValue: getEnv("DATABASE_URL", ""),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			DBName:   getEnv("POSTGRES_DB", "happyhours"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", "memory")),
			TableName:   getEnv("STORE_TABLE", "kv_store"),
			DynamoTable: getEnv("STORE_DYNAMODB_TABLE", "happyhours-kv"),
		},
		Places: PlacesConfig{
			APIKey:  getEnv("GOOGLE_PLACES_API_KEY", ""),
			BaseURL: getEnv("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
			Timeout: getEnvDuration("GOOGLE_PLACES_TIMEOUT", 10*time.Second),
		},
		Region: RegionConfig{
			Default:     strings.ToLower(getEnv("REGION", "mumbai")),
			RegionsFile: getEnv("REGIONS_FILE", ""),
		},
		AWS: AWSConfig{
			Region:      getEnv("AWS_REGION", "ap-south-1"),
			Endpoint:    getEnv("AWS_ENDPOINT_URL", ""),
			AccessKey:   getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
			ImageBucket: getEnv("IMAGE_BUCKET", ""),
			ImagePrefix: getEnv("IMAGE_PREFIX", "happy-hours/"),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    getEnvWithFallback("SIGNOZ_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "happyhours"),
			Environment: getEnv("ENVIRONMENT", "production"),
		},
	}

	if !validBackends[cfg.Store.Backend] {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q (memory, postgres, dynamodb)", cfg.Store.Backend)
	}

	return cfg, nil
}

// getEnv 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvWithFallback tries primary key first, then fallback key
func getEnvWithFallback(primary, fallback, defaultValue string) string {
	if value, exists := os.LookupEnv(primary); exists && value != "" {
		return value
	}
	return getEnv(fallback, defaultValue)
}

// getEnvBool 환경변수를 bool로 가져오기
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt 환경변수를 int로 가져오기
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// getEnvDuration "10s" 형식 또는 초 단위 정수 모두 허용
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
