package config

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/valueparser"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// safetyCheck ensures that the logger is not nil before performing any operations.
// If the logger is nil, it initializes a default logger and logs a warning message.
func safetyCheck(log *yalogger.Logger) {
	if *log == nil {
		*log = yalogger.NewDefaultLogger()

		(*log).Warn("Logger is nil, using default logger")
	}
}

// toScreamingSnakeCase converts a string to SCREAMING_SNAKE_CASE.
// For example, "myVariableName" becomes "MY_VARIABLE_NAME" and "APIURL"
// stays "APIURL", while "HTTPResponse" becomes "HTTP_RESPONSE".
func toScreamingSnakeCase(s string) string {
	s = matchFirstCap.ReplaceAllString(s, "${1}_${2}")
	s = matchAllCap.ReplaceAllString(s, "${1}_${2}")

	return strings.ToUpper(s)
}

// isTextual reports whether a struct type parses itself from a string and
// therefore must not be walked field by field.
func isTextual(typ reflect.Type) bool {
	ptr := reflect.PointerTo(typ)

	return ptr.Implements(reflect.TypeFor[encoding.TextUnmarshaler]()) ||
		ptr.Implements(reflect.TypeFor[valueparser.Unmarshalable]())
}
