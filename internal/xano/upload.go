package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// ImageField is the multipart field every uploaded file goes under.
const ImageField = "content"

type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Form is a fully built multipart body.
type Form struct {
	buf         bytes.Buffer
	contentType string
}

func (f *Form) ContentType() string { return f.contentType }

func (f *Form) Reader() io.Reader { return bytes.NewReader(f.buf.Bytes()) }

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// NewImageForm writes one part per file, all under ImageField.
func NewImageForm(files []File) (*Form, error) {
	f := &Form{}
	w := multipart.NewWriter(&f.buf)
	for _, file := range files {
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			ImageField, quoteEscaper.Replace(file.Name)))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("create part %q: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("copy %q: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	f.contentType = w.FormDataContentType()
	return f, nil
}

// UploadImages posts files to /upload/image. The backend answers with a
// single descriptor or an array depending on how many files it got; the
// body is returned as is.
func (c *Client) UploadImages(ctx context.Context, token string, files []File) (json.RawMessage, error) {
	form, err := NewImageForm(files)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, c.StoreBase, "/upload/image", RequestOptions{
		Method:   http.MethodPost,
		Token:    token,
		Body:     form,
		FormData: true,
	})
}
