package yatgcommand

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/YaCodeDev/GoYaTgBotAPI/valueparser"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// Bind fills the exported fields of the struct dst points to, in declaration
// order, one argument per field. A pointer field is optional and stays nil
// when its argument is missing; only the last field may be a pointer.
//
// Example:
//
//	var args struct {
//		Count int
//		Unit  *time.Duration
//	}
//
//	_ = cmd.Bind(&args) // "/remind 3 1h" → Count 3, Unit 1h
func (c Command) Bind(dst any) yaerrors.Error {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() || target.Elem().Kind() != reflect.Struct {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			ErrInvalidTarget,
			fmt.Sprintf("[COMMAND] bind /%s into %T", c.Name, dst),
		)
	}

	structValue := target.Elem()
	structType := structValue.Type()

	fields := make([]int, 0, structType.NumField())

	for i := range structType.NumField() {
		if structType.Field(i).IsExported() {
			fields = append(fields, i)
		}
	}

	args := c.Args

	for n, index := range fields {
		field := structType.Field(index)
		optional := field.Type.Kind() == reflect.Pointer

		if optional && n != len(fields)-1 {
			return yaerrors.FromError(
				http.StatusInternalServerError,
				ErrOptionalNotLast,
				fmt.Sprintf("[COMMAND] bind /%s: field %s", c.Name, field.Name),
			)
		}

		if len(args) == 0 {
			if optional {
				break
			}

			return yaerrors.FromError(
				http.StatusBadRequest,
				ErrTooFewArgs,
				fmt.Sprintf("[COMMAND] /%s expects %s", c.Name, field.Name),
			)
		}

		parsed, err := valueparser.ParseValueByType(args[0], field.Type)
		if err != nil {
			return yaerrors.FromError(
				http.StatusBadRequest,
				fmt.Errorf("%w: %w", ErrInvalidArgument, err),
				fmt.Sprintf("[COMMAND] /%s argument %s", c.Name, field.Name),
			)
		}

		structValue.Field(index).Set(parsed)

		args = args[1:]
	}

	if len(args) > 0 {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrTooManyArgs,
			fmt.Sprintf("[COMMAND] /%s got %d extra arguments", c.Name, len(args)),
		)
	}

	return nil
}
