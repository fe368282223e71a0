package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Auth          AuthConfig
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	DefaultLocale string
}

// AuthConfig configures verification of tokens issued by the external
// authentication provider.
type AuthConfig struct {
	JWTSecret string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
