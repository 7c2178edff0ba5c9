package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// RequestIDHeader carries a fresh id per submission for backend log correlation.
const RequestIDHeader = "X-Request-Id"

// Content types used on the wire.
const (
	ContentTypeText = "text/plain;charset=UTF-8"
	ContentTypeJSON = "application/json"
)

func (s *Submitter) buildRequest(ctx context.Context, req domain.Request) (*http.Request, error) {
	if !req.Method.Valid() {
		return nil, fmt.Errorf("unsupported method %q", req.Method)
	}
	target, err := s.resolve(req.Endpoint)
	if err != nil {
		return nil, err
	}
	body, contentType, err := encodePayload(req.Payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), target, body)
	if err != nil {
		if c, ok := body.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", ContentTypeJSON+", */*")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	return httpReq, nil
}

// resolve turns an endpoint into an absolute URL. Absolute endpoints are kept as-is.
func (s *Submitter) resolve(endpoint string) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("empty endpoint")
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	return s.base.ResolveReference(ref).String(), nil
}

// encodePayload returns the request body and its content type.
// Multipart bodies are streamed so large files are never buffered whole.
func encodePayload(p domain.Payload) (io.Reader, string, error) {
	switch p.Kind {
	case domain.PayloadNone:
		return http.NoBody, "", nil
	case domain.PayloadRaw:
		return strings.NewReader(p.Raw), ContentTypeText, nil
	case domain.PayloadJSON:
		data, err := json.Marshal(p.Document)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode JSON payload: %w", err)
		}
		return bytes.NewReader(data), ContentTypeJSON, nil
	case domain.PayloadForm:
		for _, f := range p.Files {
			if f.Content == nil {
				return nil, "", fmt.Errorf("file part %q has no content", f.Field)
			}
		}
		pr, pw := io.Pipe()
		mw := multipart.NewWriter(pw)
		go func() {
			pw.CloseWithError(writeMultipart(mw, p))
		}()
		return pr, mw.FormDataContentType(), nil
	default:
		return nil, "", fmt.Errorf("unknown payload kind %d", p.Kind)
	}
}

// writeMultipart writes files first, then text fields, in declaration order.
func writeMultipart(mw *multipart.Writer, p domain.Payload) error {
	for _, f := range p.Files {
		part, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("failed to read %q: %w", f.Filename, err)
		}
	}
	for _, f := range p.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return err
		}
	}
	return mw.Close()
}
