// Package config fills configuration structs from environment variables.
//
// Every exported field maps to a SCREAMING_SNAKE_CASE key; nested structs
// prefix their fields with their own key. A `default` tag supplies the value
// when the variable is absent, an `env` tag overrides the derived key, and a
// field that is zero, untagged and absent is required. Values in a .env file
// in the working directory are loaded first without overriding the real
// environment.
//
// Example usage:
//
//	type Redis struct {
//		Host string `default:"localhost"`
//		Port uint16 `default:"6379"`
//	}
//
//	type Config struct {
//		BotToken string
//		Timeout  time.Duration `default:"40s"`
//		Allowed  []string      `default:"message,callback_query"`
//		Redis    Redis         // REDIS_HOST, REDIS_PORT
//	}
//
//	var cfg Config
//	config.LoadConfigStructFromEnv(&cfg, log)
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"reflect"

	"github.com/YaCodeDev/GoYaTgBotAPI/valueparser"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// LoadConfigStructFromEnv is LoadConfigStructFromEnvHandlingError that
// terminates the process through log.Fatalf on error.
func LoadConfigStructFromEnv[T any](instance *T, log yalogger.Logger) {
	safetyCheck(&log)

	if err := LoadConfigStructFromEnvHandlingError(instance, log); err != nil {
		log.Fatalf("Failed to load config struct from env: %v", err)
	}
}

// LoadConfigStructFromEnvHandlingError loads environment variables into a struct.
// See the package documentation for the key and tag rules.
//
// Example usage:
//
//	if err := config.LoadConfigStructFromEnvHandlingError(&cfg, log); err != nil {
//		// handle error
//	}
func LoadConfigStructFromEnvHandlingError[T any](instance *T, log yalogger.Logger) yaerrors.Error {
	safetyCheck(&log)

	if err := loadDotEnv(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error loading .env file: %v", err)
	}

	value := reflect.ValueOf(instance).Elem()
	if value.Kind() != reflect.Struct {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			ErrConfigStructMustBeStruct,
			fmt.Sprintf("config loader, got %T", instance),
			log,
		)
	}

	return loadConfigStructFromEnv(value, "", log)
}

func loadConfigStructFromEnv(
	structValue reflect.Value,
	keyPath string,
	log yalogger.Logger,
) yaerrors.Error {
	structType := structValue.Type()

	for i := range structValue.NumField() {
		field := structType.Field(i)
		fieldVal := structValue.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		envKey := envKeyFor(field, keyPath)

		if field.Type.Kind() == reflect.Struct && !isTextual(field.Type) {
			if err := loadConfigStructFromEnv(fieldVal, envKey, log); err != nil {
				return err.Wrap("failed to load struct field " + field.Name)
			}

			continue
		}

		raw, exists := os.LookupEnv(envKey)
		if !exists {
			defaultValStr, hasDefault := field.Tag.Lookup(DefaultTagName)

			switch {
			case !fieldVal.IsZero():
				continue
			case hasDefault:
				raw = defaultValStr
			case field.Type.Kind() == reflect.Pointer:
				continue
			default:
				return yaerrors.FromErrorWithLog(
					http.StatusInternalServerError,
					ErrValueIsRequired,
					"config loader: environment variable "+envKey,
					log,
				)
			}
		}

		parsed, err := valueparser.ParseValueByType(raw, field.Type)
		if err != nil {
			return err.WrapWithLog(
				fmt.Sprintf("config loader: field %s (%s)", field.Name, envKey),
				log,
			)
		}

		fieldVal.Set(parsed)
	}

	return nil
}

func envKeyFor(field reflect.StructField, keyPath string) string {
	envKey := field.Tag.Get(EnvTagName)
	if envKey == "" {
		envKey = toScreamingSnakeCase(field.Name)
	}

	if keyPath != "" {
		envKey = fmt.Sprintf("%s_%s", keyPath, envKey)
	}

	return envKey
}
