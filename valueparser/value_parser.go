package valueparser

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

var durationType = reflect.TypeFor[time.Duration]()

// ParseValue is a generic function that converts a string value to the specified type T.
// It returns the converted value and an error if the conversion fails.
//
// Example usage:
//
//	intValue, err := ParseValue[int]("123")
//	if err != nil {
//		// Handle error
//	}
func ParseValue[T ParsableType](value string) (T, yaerrors.Error) {
	var zero T

	parsed, err := ParseValueByType(value, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	val, ok := parsed.Interface().(T)
	if !ok {
		return zero, yaerrors.FromError(
			http.StatusInternalServerError,
			ErrInvalidValue,
			fmt.Sprintf("parse value: got %s, want %T", parsed.Type(), zero),
		)
	}

	return val, nil
}

// ParseValueByType converts value to a reflect.Value of type typ.
//
// Types implementing encoding.TextUnmarshaler or Unmarshalable (on their
// pointer) are parsed by that implementation first; if it rejects the input,
// the parser falls back to the underlying kind, so a level type accepts both
// "info" and "4". String-kinded types never fall back. time.Duration uses time.ParseDuration. Slices are split by
// DefaultEntrySeparator with blank entries skipped, maps additionally by DefaultKVSeparator, pointers
// parse their element.
//
// Example usage:
//
//	v, err := ParseValueByType("1,2,3", reflect.TypeOf([]int{}))
//	ints := v.Interface().([]int)
func ParseValueByType(value string, typ reflect.Type) (reflect.Value, yaerrors.Error) {
	unmarshaled, implemented, unmarshalErr := tryUnmarshal(value, typ)
	if implemented && unmarshalErr == nil {
		return unmarshaled, nil
	}

	if implemented && typ.Kind() == reflect.String {
		return reflect.Value{}, yaerrors.FromError(
			http.StatusInternalServerError,
			unmarshalErr,
			fmt.Sprintf("parse value: failed to unmarshal `%s` into %s", value, typ),
		)
	}

	parsed, err := parseKind(value, typ)
	if err == nil {
		return parsed, nil
	}

	if unmarshalErr != nil {
		return reflect.Value{}, yaerrors.FromError(
			http.StatusInternalServerError,
			unmarshalErr,
			fmt.Sprintf("parse value: failed to unmarshal `%s` into %s", value, typ),
		)
	}

	return reflect.Value{}, err
}

func parseKind(value string, typ reflect.Type) (reflect.Value, yaerrors.Error) {
	if typ == durationType {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return reflect.Value{}, unparsable(value, typ, err)
		}

		return reflect.ValueOf(duration), nil
	}

	result := reflect.New(typ).Elem()

	switch typ.Kind() {
	case reflect.String:
		result.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, unparsable(value, typ, err)
		}

		result.SetInt(parsed)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, unparsable(value, typ, err)
		}

		result.SetUint(parsed)

	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return reflect.Value{}, unparsable(value, typ, err)
		}

		result.SetFloat(parsed)

	case reflect.Bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return reflect.Value{}, unparsable(value, typ, err)
		}

		result.SetBool(parsed)

	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			result.SetBytes([]byte(value))

			break
		}

		return parseSlice(value, typ)

	case reflect.Map:
		return parseMap(value, typ)

	case reflect.Pointer:
		elem, err := ParseValueByType(value, typ.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(typ.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil

	default:
		return reflect.Value{}, yaerrors.FromError(
			http.StatusInternalServerError,
			ErrUnknownType,
			"parse value: unsupported type "+typ.String(),
		)
	}

	return result, nil
}

func parseSlice(value string, typ reflect.Type) (reflect.Value, yaerrors.Error) {
	entries := splitEntries(value, DefaultEntrySeparator)
	result := reflect.MakeSlice(typ, 0, len(entries))

	for _, entry := range entries {
		elem, err := ParseValueByType(entry, typ.Elem())
		if err != nil {
			return reflect.Value{}, err.Wrap(fmt.Sprintf("parse array: failed to parse entry %q", entry))
		}

		result = reflect.Append(result, elem)
	}

	return result, nil
}

func parseMap(value string, typ reflect.Type) (reflect.Value, yaerrors.Error) {
	result := reflect.MakeMap(typ)

	if value == "" {
		return result, nil
	}

	for entry := range strings.SplitSeq(value, DefaultEntrySeparator) {
		key, val, found := strings.Cut(strings.TrimSpace(entry), DefaultKVSeparator)
		if !found {
			return reflect.Value{}, yaerrors.FromError(
				http.StatusInternalServerError,
				ErrInvalidEntry,
				fmt.Sprintf("parse map: entry '%s' has no key separator", entry),
			)
		}

		parsedKey, err := ParseValueByType(strings.TrimSpace(key), typ.Key())
		if err != nil {
			return reflect.Value{}, err.Wrap("parse map: key")
		}

		parsedVal, err := ParseValueByType(strings.TrimSpace(val), typ.Elem())
		if err != nil {
			return reflect.Value{}, err.Wrap("parse map: value")
		}

		result.SetMapIndex(parsedKey, parsedVal)
	}

	return result, nil
}

func unparsable(value string, typ reflect.Type, cause error) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusInternalServerError,
		fmt.Errorf("%w: %w", ErrUnparsableValue, cause),
		fmt.Sprintf("parse value: `%s` as %s", value, typ),
	)
}
