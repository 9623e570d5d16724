package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form assembles a multipart/form-data request body. Two value kinds are
// supported: plain string fields and named binary files.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	key   string
	value string
}

type formFile struct {
	key      string
	fileName string
	content  io.Reader
}

// Set adds a string field. Setting the same key twice appends a second part;
// the backend takes the last one.
func (f *Form) Set(key, value string) *Form {
	f.fields = append(f.fields, formField{key: key, value: value})
	return f
}

// SetFile adds a binary file part read from content.
func (f *Form) SetFile(key, fileName string, content io.Reader) *Form {
	f.files = append(f.files, formFile{key: key, fileName: fileName, content: content})
	return f
}

// Encode writes all parts and returns the body together with the content type
// carrying the part boundary.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := writer.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", field.key, err)
		}
	}
	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.key, file.fileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %q: %w", file.key, err)
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return nil, "", fmt.Errorf("failed to write form file %q: %w", file.key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
