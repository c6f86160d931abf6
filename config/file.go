package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// LoadConfigFile decodes a TOML or YAML file into instance, chosen by the
// file extension, and then applies the environment on top of it with the
// rules of LoadConfigStructFromEnvHandlingError. Values from the file count
// as set, so defaults only fill what neither source provides.
//
// Example usage:
//
//	var cfg Config
//	if err := config.LoadConfigFile("bot.toml", &cfg, log); err != nil {
//		// handle error
//	}
func LoadConfigFile[T any](path string, instance *T, log yalogger.Logger) yaerrors.Error {
	safetyCheck(&log)

	data, err := os.ReadFile(path)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			code = http.StatusNotFound
		}

		return yaerrors.FromErrorWithLog(
			code,
			errors.Join(ErrFailedToReadConfigFile, err),
			"config loader: "+path,
			log,
		)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, instance)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, instance)
	default:
		return yaerrors.FromErrorWithLog(
			http.StatusBadRequest,
			ErrUnsupportedConfigFormat,
			fmt.Sprintf("config loader: %q extension of %s", ext, path),
			log,
		)
	}

	if err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusBadRequest,
			errors.Join(ErrFailedToDecodeConfigFile, err),
			"config loader: "+path,
			log,
		)
	}

	log.Debugf("Config file %s decoded", path)

	return LoadConfigStructFromEnvHandlingError(instance, log)
}
