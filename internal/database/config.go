package database

import (
	"fmt"

	"budgetapp/internal/config"
)

// Config holds database connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig builds the database configuration from application config.
func NewConfig() (*Config, error) {
	app := config.Get()
	return &Config{
		Host:     app.DBHost,
		Port:     app.DBPort,
		User:     app.DBUser,
		Password: app.DBPassword,
		DBName:   app.DBName,
		SSLMode:  app.DBSSLMode,
	}, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres:// URL used by golang-migrate.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
