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

type Config struct {
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Auth               Auth               `mapstructure:",squash"`
	Import             Import             `mapstructure:",squash"`
	Financial          Financial          `mapstructure:",squash"`
	MonthlyRecordsSync MonthlyRecordsSync `mapstructure:",squash"`
	SessionCleanup     SessionCleanup     `mapstructure:",squash"`
	SecretKey          string             `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

// Import agrupa os limites da ingestão de planilhas
type Import struct {
	BatchSize   int   `mapstructure:"import_batch_size"`
	PageSize    int   `mapstructure:"import_page_size"`
	MaxUploadMB int64 `mapstructure:"import_max_upload_mb"`
}

// Financial contém os padrões do DRE e do simulador
type Financial struct {
	DefaultTaxRate         float64       `mapstructure:"financial_default_tax_rate"`
	DefaultDelinquencyRate float64       `mapstructure:"financial_default_delinquency_rate"`
	DefaultCommissionRate  float64       `mapstructure:"financial_default_commission_rate"`
	DefaultFixedCost       float64       `mapstructure:"financial_default_fixed_cost"`
	DefaultVariableCost    float64       `mapstructure:"financial_default_variable_cost"`
	HighValueThreshold     float64       `mapstructure:"financial_high_value_threshold"`
	RevenueIncludesFreight bool          `mapstructure:"dre_revenue_includes_freight"`
	SaveDebounce           time.Duration `mapstructure:"simulation_save_debounce"`
	SessionIdleTTL         time.Duration `mapstructure:"simulation_session_idle_ttl"`
}

type MonthlyRecordsSync struct {
	CronSchedule string `mapstructure:"monthly_records_sync_cron"`
	Enabled      bool   `mapstructure:"monthly_records_sync_enabled"`
}

type SessionCleanup struct {
	CronSchedule string `mapstructure:"session_cleanup_cron"`
	Enabled      bool   `mapstructure:"session_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marmoraria?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("IMPORT_BATCH_SIZE", 1000)
	viper.SetDefault("IMPORT_PAGE_SIZE", 1000)
	viper.SetDefault("IMPORT_MAX_UPLOAD_MB", 32)

	// Padrões do DRE
	viper.SetDefault("FINANCIAL_DEFAULT_TAX_RATE", 6.0)
	viper.SetDefault("FINANCIAL_DEFAULT_DELINQUENCY_RATE", 1.5)
	viper.SetDefault("FINANCIAL_DEFAULT_COMMISSION_RATE", 0.0)
	viper.SetDefault("FINANCIAL_DEFAULT_FIXED_COST", 85000.0)
	viper.SetDefault("FINANCIAL_DEFAULT_VARIABLE_COST", 0.0)
	viper.SetDefault("FINANCIAL_HIGH_VALUE_THRESHOLD", 300.0) // R$ por m²
	viper.SetDefault("DRE_REVENUE_INCLUDES_FREIGHT", true)
	viper.SetDefault("SIMULATION_SAVE_DEBOUNCE", "1s")
	viper.SetDefault("SIMULATION_SESSION_IDLE_TTL", "30m")

	viper.SetDefault("MONTHLY_RECORDS_SYNC_CRON", "0 5 1 * *") // No primeiro dia de cada mês às 5h da manhã
	viper.SetDefault("MONTHLY_RECORDS_SYNC_ENABLED", true)

	viper.SetDefault("SESSION_CLEANUP_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("SESSION_CLEANUP_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
