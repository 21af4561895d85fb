package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Invoice InvoiceConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	// Path is the bbolt database file holding all application state.
	Path string
}

type InvoiceConfig struct {
	// TaxRate is a decimal fraction, e.g. 0.1 for 10%.
	TaxRate     float64
	CompanyName string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("STORAGE_PATH", "invomaster.db")
	viper.SetDefault("INVOICE_TAX_RATE", 0.1)
	viper.SetDefault("COMPANY_NAME", "Generox")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Storage: StorageConfig{
			Path: viper.GetString("STORAGE_PATH"),
		},
		Invoice: InvoiceConfig{
			TaxRate:     viper.GetFloat64("INVOICE_TAX_RATE"),
			CompanyName: viper.GetString("COMPANY_NAME"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}
