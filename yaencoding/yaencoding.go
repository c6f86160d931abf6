// Package yaencoding serializes values kept in caches and offset stores.
//
// Values are MessagePack encoded. ToString and ToBytes wrap the binary form
// in base64 for backends that only accept text.
//
// Example usage:
//
//	file := yatgtypes.File{FileID: "AgAD", FilePath: "photos/file_1.jpg"}
//
//	data, err := yaencoding.EncodeMessagePack(file)
//	if err != nil {
//		return err
//	}
//
//	cached := yaencoding.ToString(data)
//
//	raw, err := yaencoding.ToBytes(cached)
//	if err != nil {
//		return err
//	}
//
//	decoded, err := yaencoding.DecodeMessagePack[yatgtypes.File](raw)
package yaencoding

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// EncodeMessagePack serializes value using the MessagePack format.
//
// Example:
//
//	data, err := yaencoding.EncodeMessagePack(file)
func EncodeMessagePack(value any) ([]byte, yaerrors.Error) {
	bytes, err := msgpack.Marshal(value)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[ENCODING] failed to marshal %T using message pack format", value),
		)
	}

	return bytes, nil
}

// DecodeMessagePack decodes MessagePack data into a value of type T.
//
// Example:
//
//	file, err := yaencoding.DecodeMessagePack[yatgtypes.File](data)
func DecodeMessagePack[T any](bytes []byte) (*T, yaerrors.Error) {
	var res T

	if err := msgpack.Unmarshal(bytes, &res); err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[ENCODING] failed to unmarshal message pack data as %T", res),
		)
	}

	return &res, nil
}

// EncodeMessagePackString is EncodeMessagePack followed by ToString.
func EncodeMessagePackString(value any) (string, yaerrors.Error) {
	bytes, err := EncodeMessagePack(value)
	if err != nil {
		return "", err
	}

	return ToString(bytes), nil
}

// DecodeMessagePackString is ToBytes followed by DecodeMessagePack.
func DecodeMessagePackString[T any](data string) (*T, yaerrors.Error) {
	bytes, err := ToBytes(data)
	if err != nil {
		return nil, err
	}

	return DecodeMessagePack[T](bytes)
}

// ToString converts a byte slice into a base64 string.
func ToString(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ToBytes decodes a base64 string into bytes.
func ToBytes(data string) ([]byte, yaerrors.Error) {
	bytes, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[ENCODING] failed to decode string to bytes",
		)
	}

	return bytes, nil
}
