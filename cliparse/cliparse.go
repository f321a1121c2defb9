package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort   = 3318
	DefaultAPIURL = "http://localhost:3318"
)

// Config is the order backend configuration
type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Notification channels; each is enabled only when configured
	TelegramBotToken string
	TelegramChatID   string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	ShopEmail        string
	RabbitMQURL      string
}

// ClientConfig is the storefront CLI configuration
type ClientConfig struct {
	APIURL   string
	DataPath string
	// Zero means requests run until the backend answers
	Timeout time.Duration
}

// LoadEnvFiles loads KEY=VALUE files into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("storefront-api", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TelegramBotToken, "telegram-token", "", "Telegram bot token (prefer env)")
	fs.StringVar(&cfg.SMTPPassword, "smtp-password", "", "SMTP password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", DefaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:storefront.db"
	}

	if cfg.TelegramBotToken == "" {
		cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	smtpPort, err := envInt("SMTP_PORT", 465)
	if err != nil {
		return Config{}, err
	}
	cfg.SMTPPort = smtpPort
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	if cfg.SMTPPassword == "" {
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	}
	cfg.ShopEmail = os.Getenv("SHOP_EMAIL")
	if cfg.ShopEmail == "" {
		cfg.ShopEmail = cfg.SMTPUser
	}

	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	return cfg, nil
}

// ParseClientFlags parses the storefront CLI global flags and returns the
// remaining arguments (the subcommand and its arguments)
func ParseClientFlags(args []string) (ClientConfig, []string, error) {
	var cfg ClientConfig

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "api", "", "Order backend base URL")
	fs.StringVar(&cfg.DataPath, "data", "", "Local data file (cart, wishlist, catalog)")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Request timeout (0 = none)")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, nil, err
	}

	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("STOREFRONT_API")
		if cfg.APIURL == "" {
			cfg.APIURL = DefaultAPIURL
		}
	}
	if cfg.DataPath == "" {
		cfg.DataPath = os.Getenv("STOREFRONT_DATA")
		if cfg.DataPath == "" {
			cfg.DataPath = "storefront-data.db"
		}
	}
	if cfg.Timeout == 0 {
		if v := os.Getenv("STOREFRONT_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return ClientConfig{}, nil, errors.New("invalid STOREFRONT_TIMEOUT env variable")
			}
			cfg.Timeout = d
		}
	}

	return cfg, fs.Args(), nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
