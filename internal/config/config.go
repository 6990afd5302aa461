package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Messages is the operator-facing copy rendered when a request is rejected.
// The core returns typed errors; these strings belong to the presentation
// layer and are configuration, not engine knowledge.
type Messages struct {
	DuplicateEmail string
	NotFound       string
	InvalidRange   string
	Conflict       string
}

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Schedule struct {
		Palette       []string
		FallbackColor string
	}
	Seed struct {
		Demo bool
	}
	Messages Messages
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("SCHEDULE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("schedule.palette", []string{
		"bg-red-500", "bg-blue-500", "bg-green-500", "bg-yellow-500",
		"bg-purple-500", "bg-pink-500", "bg-indigo-500", "bg-teal-500",
	})
	v.SetDefault("schedule.fallbackcolor", "bg-gray-600")
	v.SetDefault("seed.demo", false)
	v.SetDefault("messages.duplicateemail", "The email is already registered")
	v.SetDefault("messages.notfound", "User not found")
	v.SetDefault("messages.invalidrange", "The time block range is invalid")
	v.SetDefault("messages.conflict", "The time block overlaps with an existing one")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.Schedule.Palette) == 0 {
		return Config{}, fmt.Errorf("schedule palette must not be empty")
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
