package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Application
	AppPort  string `yaml:"APP_PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`

	// External recipe source
	MealDBBaseURL string `yaml:"MEALDB_BASE_URL"`

	// Cache (optional; empty REDIS_ADDR disables caching)
	RedisAddr string `yaml:"REDIS_ADDR"`
	CacheTTL  string `yaml:"CACHE_TTL"`

	// Sync pacing between category/area partitions
	SyncPartitionDelay string `yaml:"SYNC_PARTITION_DELAY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "APP_PORT":
		if config.AppPort == "" {
			return "8080"
		}
		return config.AppPort
	case "LOG_LEVEL":
		if config.LogLevel == "" {
			return "info"
		}
		return config.LogLevel
	case "MEALDB_BASE_URL":
		if config.MealDBBaseURL == "" {
			return "https://www.themealdb.com/api/json/v1/1"
		}
		return config.MealDBBaseURL
	case "REDIS_ADDR":
		return config.RedisAddr
	case "CACHE_TTL":
		if config.CacheTTL == "" {
			return "6h"
		}
		return config.CacheTTL
	case "SYNC_PARTITION_DELAY":
		if config.SyncPartitionDelay == "" {
			return "1s"
		}
		return config.SyncPartitionDelay
	default:
		return ""
	}
}
