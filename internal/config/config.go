package config

import (
	"github.com/spf13/viper"
)

// Client-facing policy constants. These are the defaults for the Points
// section and are echoed to clients on the system summary payload.
const (
	DefaultMonthlyCap   = 200
	DefaultExpiryMonths = 24
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Points   PointsConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// PointsConfig holds the points accounting policy. The scoring values are
// configuration rather than code so the business policy can change without
// a deploy; the milestone table in particular is a fixed lookup, not
// computed.
type PointsConfig struct {
	MonthlyCap   int
	ExpiryMonths int
	WriteRetries int
	Attendance   AttendanceConfig
	DailyUpdate  DailyUpdateConfig
	Task         TaskConfig
	Project      ProjectConfig
	// MilestoneAwards maps a milestone kind to its fixed award.
	MilestoneAwards map[string]int
}

// AttendanceConfig holds attendance scoring values
type AttendanceConfig struct {
	Present     int
	OnTimeBonus int
	Late        int
}

// DailyUpdateConfig holds daily update scoring values
type DailyUpdateConfig struct {
	Simple int
	Rich   int
}

// TaskConfig holds task completion scoring values
type TaskConfig struct {
	Base          int
	PriorityBonus map[string]int
}

// ProjectConfig holds project completion scoring values
type ProjectConfig struct {
	CompletionShare int
	EarlyBonus      int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "workhub")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")

	viper.SetDefault("Points.MonthlyCap", DefaultMonthlyCap)
	viper.SetDefault("Points.ExpiryMonths", DefaultExpiryMonths)
	viper.SetDefault("Points.WriteRetries", 5)
	viper.SetDefault("Points.Attendance.Present", 5)
	viper.SetDefault("Points.Attendance.OnTimeBonus", 2)
	viper.SetDefault("Points.Attendance.Late", -1)
	viper.SetDefault("Points.DailyUpdate.Simple", 1)
	viper.SetDefault("Points.DailyUpdate.Rich", 3)
	viper.SetDefault("Points.Task.Base", 4)
	viper.SetDefault("Points.Task.PriorityBonus", map[string]int{
		"low":    0,
		"medium": 2,
		"high":   5,
	})
	viper.SetDefault("Points.Project.CompletionShare", 10)
	viper.SetDefault("Points.Project.EarlyBonus", 10)
	// Only the evidenced milestone tiers; unknown kinds are rejected by the
	// scorer rather than given a default award.
	viper.SetDefault("Points.MilestoneAwards", map[string]int{
		"standard": 20,
		"premium":  30,
	})
}

// DefaultPoints returns the default points policy without reading any
// config sources. Used by tests and as a fallback.
func DefaultPoints() PointsConfig {
	return PointsConfig{
		MonthlyCap:   DefaultMonthlyCap,
		ExpiryMonths: DefaultExpiryMonths,
		WriteRetries: 5,
		Attendance:   AttendanceConfig{Present: 5, OnTimeBonus: 2, Late: -1},
		DailyUpdate:  DailyUpdateConfig{Simple: 1, Rich: 3},
		Task: TaskConfig{
			Base:          4,
			PriorityBonus: map[string]int{"low": 0, "medium": 2, "high": 5},
		},
		Project:         ProjectConfig{CompletionShare: 10, EarlyBonus: 10},
		MilestoneAwards: map[string]int{"standard": 20, "premium": 30},
	}
}
