package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form builds a multipart/form-data body. The boundary is generated by the
// multipart writer, so the resulting content type must come from Encode
// rather than being set explicitly by callers.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	field, filename string
	content         io.Reader
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

// AddFile appends a file part, streamed from content at encode time.
func (f *Form) AddFile(field, filename string, content io.Reader) {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
}

// Encode writes out the multipart body and returns it with its content type
// (which embeds the boundary).
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.name, err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", file.field, err)
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", file.filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
