package config

import (
	"os"

	"github.com/YaCodeDev/GoYaTgBotAPI/valueparser"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// GetEnv retrieves the value of an environment variable, parses it to the specified type T,
// and returns it. If the variable is not set or fails to parse, it returns fallback.
// If the variable is required and not set, it logs an error and exits the program.
//
// Example usage:
//
//	token := config.GetEnv("BOT_TOKEN", "", true, log)
func GetEnv[T valueparser.ParsableType](
	key string,
	fallback T,
	required bool,
	log yalogger.Logger,
) T {
	safetyCheck(&log)

	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := valueparser.ParseValue[T](value); err == nil {
			return parsed
		}

		log.Warnf("Environment variable %s failed to parse", key)
	}

	if required {
		log.Fatalf("Environment variable %s is required", key)
	}

	return fallback
}
