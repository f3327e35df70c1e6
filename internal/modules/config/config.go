package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatIDTelegramENV = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	// Рынки: спот и его перп на OKX, например BTC-USDT и BTC-USDT-SWAP
	SpotMarket string `yaml:"spot_market"`
	PerpFuture string `yaml:"perp_future"`

	// Стратегия
	Strategy       string  `yaml:"strategy"`     // bollinger | threshold
	BBandLength    int     `yaml:"bband_length"` // окно, точек
	BBandStd       float64 `yaml:"bband_std"`    // множитель стандартного отклонения
	ThresholdLimit float64 `yaml:"threshold_limit"`

	// Максимум точек в каждой серии (кольцевой буфер)
	MaxVisibleLength int `yaml:"max_visible_length"`

	// Длительности настраиваются через env (SAMPLE_INTERVAL, CONNECT_TIMEOUT):
	// yaml.v2 не разбирает "1s" в time.Duration.
	SampleInterval time.Duration `yaml:"-"`
	ConnectTimeout time.Duration `yaml:"-"`

	// Best-effort лог тиков: csv | postgres | off
	Recorder string `yaml:"recorder"`
	LogDir   string `yaml:"log_dir"`
	DB       string `yaml:"db_dsn"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Service struct {
		PublicAddr string `yaml:"public_addr"` // dashboard JSON
		AdminAddr  string `yaml:"admin_addr"`  // livez/readyz/healthz
	} `yaml:"service"`

	Jaeger struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"jaeger"`
}

func NewConfig() (*Config, error) {
	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}

	config := Config{
		SpotMarket: "BTC-USDT",
		PerpFuture: "BTC-USDT-SWAP",

		Strategy:       getenvDefault("STRATEGY", "bollinger"),
		BBandLength:    intFromEnv("BBAND_LENGTH", 20),
		BBandStd:       floatFromEnv("BBAND_STD", 3),
		ThresholdLimit: floatFromEnv("THRESHOLD_LIMIT", 50),

		MaxVisibleLength: intFromEnv("MAX_VISIBLE_LENGTH", 1000),

		SampleInterval: durationFromEnv("SAMPLE_INTERVAL", "1s"),
		ConnectTimeout: durationFromEnv("CONNECT_TIMEOUT", "5s"),

		Recorder: getenvDefault("RECORDER", "csv"),
		LogDir:   getenvDefault("LOG_DIR", "data"),
	}
	config.Service.PublicAddr = getenvDefault("PUBLIC_ADDR", ":8080")
	config.Service.AdminAddr = getenvDefault("ADMIN_ADDR", ":8081")

	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if raw := os.Getenv(chatIDTelegramENV); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate отсекает кривые параметры до любых попыток подключения.
func (c *Config) Validate() error {
	if c.SpotMarket == "" || c.PerpFuture == "" {
		return fmt.Errorf("config: spot_market and perp_future are required")
	}
	if c.SpotMarket == c.PerpFuture {
		return fmt.Errorf("config: spot_market and perp_future must differ")
	}
	if c.MaxVisibleLength <= 1 || c.MaxVisibleLength >= 5000 {
		return fmt.Errorf("config: max_visible_length %d out of range (1, 5000)", c.MaxVisibleLength)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("config: sample_interval must be positive, got %s", c.SampleInterval)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("config: connect_timeout must be positive, got %s", c.ConnectTimeout)
	}
	switch c.Strategy {
	case "bollinger":
		if c.BBandLength < 2 {
			return fmt.Errorf("config: bband_length must be >= 2, got %d", c.BBandLength)
		}
		if c.BBandStd <= 0 {
			return fmt.Errorf("config: bband_std must be positive, got %v", c.BBandStd)
		}
	case "threshold":
		if c.ThresholdLimit <= 0 {
			return fmt.Errorf("config: threshold_limit must be positive, got %v", c.ThresholdLimit)
		}
	default:
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	switch c.Recorder {
	case "csv", "off":
	case "postgres":
		if c.DB == "" {
			return fmt.Errorf("config: recorder=postgres requires db_dsn")
		}
	default:
		return fmt.Errorf("config: unknown recorder %q", c.Recorder)
	}
	return nil
}

// LogfileName — имя лог-файла с таймстампом, как у оригинального тик-логгера.
func (c *Config) LogfileName(now time.Time) string {
	spot := strings.ReplaceAll(c.SpotMarket, "/", "_")
	perp := strings.ReplaceAll(c.PerpFuture, "-", "_")
	return fmt.Sprintf("%s_orderbook_delta_logger_%s_%s.csv",
		now.UTC().Format("2006-01-02_15-04-05"), spot, perp)
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
