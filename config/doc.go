/*
Package config handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := config.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: sqlite path or postgres URL (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret for bearer-token signing (required)
  - TokenTTL: Bearer-token lifetime (default: 24h)
  - UploadsDir: Directory for uploaded files (default: uploads)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	JWT_SECRET      → -jwt-secret
	TOKEN_TTL_HOURS → -token-ttl
	UPLOADS_DIR     → -uploads

CLI flags take precedence over environment variables. main loads a .env
file (godotenv) before parsing, so a local .env can supply any of these.
*/
package config
