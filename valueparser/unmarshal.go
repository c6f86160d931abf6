package valueparser

import (
	"encoding"
	"reflect"
)

// tryUnmarshal parses value through the TextUnmarshaler or Unmarshalable
// implementation of *typ, if it has one. The boolean reports whether such an
// implementation exists at all.
func tryUnmarshal(value string, typ reflect.Type) (reflect.Value, bool, error) {
	ptr := reflect.New(typ)

	if unmarshaler, ok := ptr.Interface().(encoding.TextUnmarshaler); ok {
		if err := unmarshaler.UnmarshalText([]byte(value)); err != nil {
			return reflect.Value{}, true, err
		}

		return ptr.Elem(), true, nil
	}

	if unmarshaler, ok := ptr.Interface().(Unmarshalable); ok {
		if err := unmarshaler.Unmarshal(value); err != nil {
			return reflect.Value{}, true, err
		}

		return ptr.Elem(), true, nil
	}

	return reflect.Value{}, false, nil
}
