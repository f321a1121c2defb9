// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration
for both the order backend and the storefront CLI.

# Backend Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Fields:

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: connection string (required for postgres, defaults to
    file:storefront.db for sqlite)
  - Telegram*, SMTP*, ShopEmail, RabbitMQURL: notification channels

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	TELEGRAM_BOT_TOKEN → --telegram-token
	SMTP_PASSWORD      → --smtp-password

TELEGRAM_CHAT_ID, SMTP_HOST, SMTP_PORT, SMTP_USER, SHOP_EMAIL and
RABBITMQ_URL are read from the environment only.

# Client Configuration

ParseClientFlags parses the global storefront flags and hands back the
subcommand:

	cfg, args, err := cliparse.ParseClientFlags(os.Args[1:])

	-api     → STOREFRONT_API     (default http://localhost:3318)
	-data    → STOREFRONT_DATA    (default storefront-data.db)
	-timeout → STOREFRONT_TIMEOUT (default none)

# .env Files

LoadEnvFiles reads dotenv files before parsing. Variables already set in
the environment win, and missing files are ignored:

	if err := cliparse.LoadEnvFiles(".env"); err != nil {
		log.Fatal(err)
	}

CLI flags take precedence over environment variables.
*/
package cliparse
