package yatgmethods

import "encoding/json"

const attachPrefix = "attach://"

// InputFile is a file to send: the id of a file already stored on Telegram
// servers, an HTTP URL Telegram downloads itself, or content uploaded with
// the request.
type InputFile struct {
	ref  string
	name string
	data []byte
}

// FileID reuses a file already on Telegram servers.
func FileID(id string) InputFile {
	return InputFile{ref: id}
}

// FileURL lets Telegram fetch the file from url.
func FileURL(url string) InputFile {
	return InputFile{ref: url}
}

// FileBytes uploads data under name. Within one request every upload
// referenced through attach:// needs its own name.
func FileBytes(name string, data []byte) InputFile {
	return InputFile{name: name, data: data}
}

func (f InputFile) IsUpload() bool {
	return f.name != ""
}

func (f InputFile) Name() string {
	return f.name
}

// MarshalJSON renders an upload as its attach:// reference.
func (f InputFile) MarshalJSON() ([]byte, error) {
	if f.IsUpload() {
		return json.Marshal(attachPrefix + f.name)
	}

	return json.Marshal(f.ref)
}

// uploadOf returns the upload for file sent as parameter field, if file is
// an upload at all.
func uploadOf(field string, file *InputFile) []Upload {
	if file == nil || !file.IsUpload() {
		return nil
	}

	return []Upload{{Field: field, File: *file}}
}

// attachOf returns the upload for a file referenced as attach://name.
func attachOf(file *InputFile) []Upload {
	if file == nil || !file.IsUpload() {
		return nil
	}

	return []Upload{{Field: file.name, Attach: true, File: *file}}
}
