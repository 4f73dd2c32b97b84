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
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Amazon        Amazon        `mapstructure:",squash"`
	Feed          Feed          `mapstructure:",squash"`
	FeedSync      FeedSync      `mapstructure:",squash"`
	ReportUploads ReportUploads `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Amazon agrupa as credenciais e os parâmetros de pacing da PA-API
type Amazon struct {
	AccessKey     string `mapstructure:"amazon_access_key"`
	SecretKey     string `mapstructure:"amazon_secret_key"`
	PartnerTag    string `mapstructure:"amazon_partner_tag"`
	PartnerType   string `mapstructure:"amazon_partner_type"`
	Region        string `mapstructure:"amazon_region"`
	Host          string `mapstructure:"amazon_host"`
	Marketplace   string `mapstructure:"amazon_marketplace"`
	BatchSize     int    `mapstructure:"amazon_batch_size"`
	BatchDelayMs  int    `mapstructure:"amazon_batch_delay_ms"`
	MaxAttempts   int    `mapstructure:"amazon_max_attempts"`
	BackoffBaseMs int    `mapstructure:"amazon_backoff_base_ms"`
	TimeoutSecs   int    `mapstructure:"amazon_timeout_seconds"`
}

type Feed struct {
	RankBy    string `mapstructure:"feed_rank_by"`
	TopN      int    `mapstructure:"feed_top_n"`
	SalesOnly bool   `mapstructure:"feed_sales_only"`
	OutputDir string `mapstructure:"feed_output_dir"`
}

type FeedSync struct {
	CronSchedule string `mapstructure:"feed_sync_cron"`
	ReportPath   string `mapstructure:"feed_sync_report_path"`
	Enabled      bool   `mapstructure:"feed_sync_enabled"`
}

type ReportUploads struct {
	Dir        string `mapstructure:"report_uploads_dir"`
	MaxSizeMB  int    `mapstructure:"report_uploads_max_size_mb"`
	StrictMode bool   `mapstructure:"report_uploads_strict_mode"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("AMAZON_PARTNER_TYPE", "Associates")
	viper.SetDefault("AMAZON_REGION", "us-east-1")
	viper.SetDefault("AMAZON_HOST", "webservices.amazon.com")
	viper.SetDefault("AMAZON_MARKETPLACE", "www.amazon.com")
	viper.SetDefault("AMAZON_BATCH_SIZE", 10)       // Limite rígido de itens por requisição GetItems
	viper.SetDefault("AMAZON_BATCH_DELAY_MS", 1100) // Cota de 1 req/s da PA-API, com folga
	viper.SetDefault("AMAZON_MAX_ATTEMPTS", 3)
	viper.SetDefault("AMAZON_BACKOFF_BASE_MS", 1000)
	viper.SetDefault("AMAZON_TIMEOUT_SECONDS", 10)

	viper.SetDefault("FEED_RANK_BY", "revenue")
	viper.SetDefault("FEED_TOP_N", 0) // 0 = sem truncamento
	viper.SetDefault("FEED_SALES_ONLY", false)
	viper.SetDefault("FEED_OUTPUT_DIR", "./feeds")

	viper.SetDefault("FEED_SYNC_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("FEED_SYNC_REPORT_PATH", "")
	viper.SetDefault("FEED_SYNC_ENABLED", false)

	viper.SetDefault("REPORT_UPLOADS_DIR", os.TempDir())
	viper.SetDefault("REPORT_UPLOADS_MAX_SIZE_MB", 20)
	viper.SetDefault("REPORT_UPLOADS_STRICT_MODE", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate falha cedo com erro de configuração, antes de qualquer chamada de rede
func (c *Config) Validate() error {
	if c.Amazon.AccessKey == "" || c.Amazon.SecretKey == "" {
		return fmt.Errorf("credenciais da PA-API ausentes (AMAZON_ACCESS_KEY/AMAZON_SECRET_KEY)")
	}

	if c.Amazon.PartnerTag == "" {
		return fmt.Errorf("partner tag da PA-API ausente (AMAZON_PARTNER_TAG)")
	}

	if c.Amazon.BatchSize <= 0 || c.Amazon.BatchSize > 10 {
		return fmt.Errorf("AMAZON_BATCH_SIZE inválido: %d (a PA-API aceita no máximo 10 itens por requisição)", c.Amazon.BatchSize)
	}

	if c.Amazon.MaxAttempts < 1 {
		return fmt.Errorf("AMAZON_MAX_ATTEMPTS inválido: %d", c.Amazon.MaxAttempts)
	}

	return nil
}

// BatchDelay retorna o intervalo mínimo entre lotes
func (c *Amazon) BatchDelay() time.Duration {
	return time.Duration(c.BatchDelayMs) * time.Millisecond
}

// BackoffBase retorna a base do backoff exponencial entre tentativas
func (c *Amazon) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMs) * time.Millisecond
}

// Timeout retorna o timeout por chamada HTTP à PA-API
func (c *Amazon) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
