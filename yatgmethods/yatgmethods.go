// Package yatgmethods holds one request type per Bot API method.
//
// Requests are plain structs with JSON tags. Required parameters go through
// the NewX constructor, optional ones through chainable WithX setters or by
// assigning fields directly:
//
//	req := yatgmethods.NewSendMessage(yatgmethods.ChatIDFromInt(42), "*hi*").
//		WithParseMode(yatgtypes.ParseModeMarkdownV2).
//		WithReplyTo(7)
//
// Encode turns a request into an HTTP body: JSON normally, multipart form
// data when the request uploads files.
package yatgmethods

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// Method is a Bot API request.
type Method interface {
	MethodName() string
}

// MultipartMethod is a request that may carry file uploads. It is sent as
// JSON when Uploads returns nothing.
type MultipartMethod interface {
	Method
	Uploads() []Upload
}

// Upload is file content sent in a multipart part named Field. Attached
// uploads are referenced from another parameter as attach://<Field>; plain
// ones replace the parameter named Field.
type Upload struct {
	Field  string
	Attach bool
	File   InputFile
}

const contentTypeJSON = "application/json"

// Encode serializes m into a request body and its content type.
//
// Example usage:
//
//	contentType, body, err := yatgmethods.Encode(req)
//	httpReq.Header.Set("Content-Type", contentType)
func Encode(m Method) (string, []byte, yaerrors.Error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", nil, yaerrors.FromError(
			http.StatusInternalServerError,
			fmt.Errorf("%w: %w", ErrEncodeRequest, err),
			"[METHODS] marshal "+m.MethodName(),
		)
	}

	multipartMethod, ok := m.(MultipartMethod)
	if !ok {
		return contentTypeJSON, raw, nil
	}

	uploads := multipartMethod.Uploads()
	if len(uploads) == 0 {
		return contentTypeJSON, raw, nil
	}

	contentType, body, yaErr := encodeMultipart(raw, uploads)
	if yaErr != nil {
		return "", nil, yaErr.Wrap("[METHODS] multipart " + m.MethodName())
	}

	return contentType, body, nil
}

func encodeMultipart(raw []byte, uploads []Upload) (string, []byte, yaerrors.Error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", nil, encodeError(err, "split fields")
	}

	replaced := make(map[string]struct{}, len(uploads))
	attached := make(map[string]struct{}, len(uploads))

	for _, upload := range uploads {
		if !upload.Attach {
			replaced[upload.Field] = struct{}{}

			continue
		}

		if _, exists := attached[upload.Field]; exists {
			return "", nil, yaerrors.FromError(
				http.StatusBadRequest,
				ErrDuplicateAttach,
				"attach name "+upload.Field,
			)
		}

		attached[upload.Field] = struct{}{}
	}

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if _, skip := replaced[key]; skip {
			continue
		}

		if err := writer.WriteField(key, fieldValue(fields[key])); err != nil {
			return "", nil, encodeError(err, "write field "+key)
		}
	}

	for _, upload := range uploads {
		part, err := writer.CreateFormFile(upload.Field, upload.File.name)
		if err != nil {
			return "", nil, encodeError(err, "create part "+upload.Field)
		}

		if _, err := part.Write(upload.File.data); err != nil {
			return "", nil, encodeError(err, "write part "+upload.Field)
		}
	}

	if err := writer.Close(); err != nil {
		return "", nil, encodeError(err, "close writer")
	}

	return writer.FormDataContentType(), body.Bytes(), nil
}

// fieldValue renders a JSON value as a form value: strings lose their
// quotes, everything else stays JSON.
func fieldValue(raw json.RawMessage) string {
	var str string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &str) == nil {
		return str
	}

	return string(raw)
}

func encodeError(err error, wrap string) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusInternalServerError,
		fmt.Errorf("%w: %w", ErrEncodeRequest, err),
		wrap,
	)
}
