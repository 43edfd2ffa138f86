package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FilePart is one uploaded file of a multipart body.
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// Multipart marks a request body as multipart/form-data. The transport sets
// the boundary content type instead of JSON.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

func (m *Multipart) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("encode multipart field %q: %w", k, err)
		}
	}

	for _, f := range m.Files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("encode multipart file %q: %w", f.FileName, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy multipart file %q: %w", f.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
