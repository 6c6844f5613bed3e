package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// MaxInsightsBatchSize é o limite de ids por chamada imposto pelo Meta
	MaxInsightsBatchSize = 10
	// MaxStoreChunkSize é o limite de registros por upsert
	MaxStoreChunkSize = 1000
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	MetricsSync MetricsSync `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
	Enabled  bool   `mapstructure:"redis_enabled"`
}

type Meta struct {
	BaseURL           string        `mapstructure:"meta_base_url"`
	URL               string        `mapstructure:"meta_url"`
	Version           string        `mapstructure:"meta_version"`
	RequestTimeout    time.Duration `mapstructure:"meta_request_timeout"`
	RequestsPerSecond float64       `mapstructure:"meta_requests_per_second"`
	BreakerEnabled    bool          `mapstructure:"meta_breaker_enabled"`
	RequiredScopes    []string      `mapstructure:"meta_required_scopes"`
}

type MetricsSync struct {
	CronSchedule         string        `mapstructure:"metrics_sync_cron"`
	Enabled              bool          `mapstructure:"metrics_sync_enabled"`
	DatePreset           string        `mapstructure:"metrics_sync_date_preset"`
	BatchSize            int           `mapstructure:"metrics_sync_batch_size"`
	MaxConcurrentBatches int           `mapstructure:"metrics_sync_max_concurrent_batches"`
	MaxConcurrentJobs    int           `mapstructure:"metrics_sync_max_concurrent_jobs"`
	StoreChunkSize       int           `mapstructure:"metrics_sync_store_chunk_size"`
	MaxRetries           int           `mapstructure:"meta_insights_max_retries"`
	RetryInitialInterval time.Duration `mapstructure:"meta_insights_retry_initial_interval"`
	RetryMaxInterval     time.Duration `mapstructure:"meta_insights_retry_max_interval"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/metrics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_ENABLED", false)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("META_BREAKER_ENABLED", true)
	viper.SetDefault("META_REQUIRED_SCOPES", "ads_read,ads_management")

	viper.SetDefault("METRICS_SYNC_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("METRICS_SYNC_ENABLED", false)
	viper.SetDefault("METRICS_SYNC_DATE_PRESET", "last_30_days")
	viper.SetDefault("METRICS_SYNC_BATCH_SIZE", MaxInsightsBatchSize)
	viper.SetDefault("METRICS_SYNC_MAX_CONCURRENT_BATCHES", 5)
	viper.SetDefault("METRICS_SYNC_STORE_CHUNK_SIZE", MaxStoreChunkSize)
	viper.SetDefault("METRICS_SYNC_MAX_CONCURRENT_JOBS", 2)

	// 0 mantém o comportamento de uma única tentativa por lote
	viper.SetDefault("META_INSIGHTS_MAX_RETRIES", 0)
	viper.SetDefault("META_INSIGHTS_RETRY_INITIAL_INTERVAL", "500ms")
	viper.SetDefault("META_INSIGHTS_RETRY_MAX_INTERVAL", "10s")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Normalize()

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Normalize aplica os limites rígidos do Meta e do banco sobre os valores configurados
func (c *Config) Normalize() {
	if c.Meta.URL == "" {
		c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)
	}

	if c.MetricsSync.BatchSize <= 0 || c.MetricsSync.BatchSize > MaxInsightsBatchSize {
		logrus.WithField("batch_size", c.MetricsSync.BatchSize).Warn("Tamanho de lote inválido, usando o limite do Meta")
		c.MetricsSync.BatchSize = MaxInsightsBatchSize
	}

	if c.MetricsSync.StoreChunkSize <= 0 || c.MetricsSync.StoreChunkSize > MaxStoreChunkSize {
		logrus.WithField("chunk_size", c.MetricsSync.StoreChunkSize).Warn("Tamanho de lote de gravação inválido, usando o limite do banco")
		c.MetricsSync.StoreChunkSize = MaxStoreChunkSize
	}

	if c.MetricsSync.MaxConcurrentBatches <= 0 {
		c.MetricsSync.MaxConcurrentBatches = 1
	}

	if c.MetricsSync.MaxConcurrentJobs <= 0 {
		c.MetricsSync.MaxConcurrentJobs = 1
	}

	if c.MetricsSync.MaxRetries < 0 {
		c.MetricsSync.MaxRetries = 0
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
