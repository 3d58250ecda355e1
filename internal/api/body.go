package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
)

// body is an encodable request payload.
type body interface {
	encode() (io.Reader, string, error)
}

type jsonBody struct {
	v any
}

func (b jsonBody) encode() (io.Reader, string, error) {
	buf, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(buf), "application/json", nil
}

type formField struct {
	name, value string
}

type formFile struct {
	field, filename string
	data            []byte
}

// form is a multipart/form-data payload. Fields keep insertion order.
type form struct {
	fields []formField
	files  []formFile
}

func (f *form) set(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

func (f *form) setFloat(name string, v float64) {
	f.set(name, strconv.FormatFloat(v, 'f', -1, 64))
}

func (f *form) setInt(name string, v int) {
	f.set(name, strconv.Itoa(v))
}

func (f *form) file(field, filename string, data []byte) {
	if filename == "" {
		filename = field
	}
	f.files = append(f.files, formFile{field: field, filename: filename, data: data})
}

func (f *form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", fld.name, err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", file.field, err)
		}
		if _, err := part.Write(file.data); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", file.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
