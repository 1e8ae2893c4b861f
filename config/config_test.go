package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidation(t *testing.T) {
	// Test valid configuration
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Host:   "localhost",
			User:   "test",
			DBName: "test",
		},
		Pagination: PaginationConfig{
			ConversationLimit: 50,
			MessageLimit:      100,
		},
		Stats: StatsConfig{
			IntervalMinutes: 5,
		},
	}

	err := config.Validate()
	assert.NoError(t, err)

	// Test invalid configuration
	invalidConfig := &Config{
		Server: ServerConfig{
			Port: "",
		},
	}

	err = invalidConfig.Validate()
	assert.Error(t, err)
}

func TestConfigValidationRejectsBadPagination(t *testing.T) {
	config := &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", User: "test", DBName: "test"},
		Pagination: PaginationConfig{
			ConversationLimit: 0,
			MessageLimit:      100,
		},
		Stats: StatsConfig{IntervalMinutes: 5},
	}

	assert.Error(t, config.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	config := DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
	}

	dsn := config.GetDSN()
	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, expected, dsn)
}
