package client

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Get builds a body-less GET request.
func Get(path string, query url.Values) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}

// JSONRequest builds a request carrying body encoded as JSON. A nil body sends none.
func JSONRequest(method, path string, body interface{}) (Request, error) {
	req := Request{Method: method, Path: path}
	if body == nil {
		return req, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return Request{}, errors.Wrap(err, "[client.JSONRequest] marshal")
	}
	req.Body = data
	req.ContentType = "application/json"
	return req, nil
}

// Form accumulates multipart/form-data fields in insertion order.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func NewForm() *Form {
	return &Form{}
}

// Set adds a field, even when value is empty.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// SetIfNotEmpty adds the field only when value is non-empty.
func (f *Form) SetIfNotEmpty(name, value string) *Form {
	if value == "" {
		return f
	}
	return f.Set(name, value)
}

// SetFile attaches a file part. Nothing is added when content is empty.
func (f *Form) SetFile(field, filename string, content []byte) *Form {
	if len(content) == 0 {
		return f
	}
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

// Fields returns the field names in the order they were added
func (f *Form) Fields() []string {
	names := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		names = append(names, field.name)
	}
	return names
}

// MultipartRequest encodes form once so a retry resends the same bytes and boundary.
func MultipartRequest(method, path string, form *Form) (Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range form.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return Request{}, errors.Wrapf(err, "[client.MultipartRequest] field %s", field.name)
		}
	}
	for _, file := range form.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return Request{}, errors.Wrapf(err, "[client.MultipartRequest] file %s", file.field)
		}
		if _, err := part.Write(file.content); err != nil {
			return Request{}, errors.Wrapf(err, "[client.MultipartRequest] write %s", file.field)
		}
	}
	if err := w.Close(); err != nil {
		return Request{}, errors.Wrap(err, "[client.MultipartRequest] close")
	}

	return Request{
		Method:      method,
		Path:        path,
		ContentType: w.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}
