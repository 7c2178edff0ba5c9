package submitter

import (
	"bytes"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// classify maps the raw result of one round trip to an Outcome.
// Any 2xx is success. Redirects are followed by the client.
func (s *Submitter) classify(req domain.Request, resp *http.Response, err error) domain.Outcome {
	out := domain.Outcome{Action: req.Action}
	if err != nil {
		out.Kind = domain.OutcomeTransportError
		out.Err = &domain.TransportError{Endpoint: req.Endpoint, Err: err}
		return out
	}
	defer resp.Body.Close()

	out.Status = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, s.maxBody))
		out.Kind = domain.OutcomeServerError
		out.Err = &domain.ServerError{Endpoint: req.Endpoint, Status: resp.StatusCode}
		return out
	}

	out.Kind = domain.OutcomeSuccess
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if readErr != nil {
		// The server already reported success; a truncated body only loses the parsed value.
		s.logger.Debug("Failed to read response body", "action", req.Action, "err", readErr)
		return out
	}
	out.Body = ParseBody(data)
	return out
}

// ParseBody returns the decoded JSON value of data, or nil when data is empty or not JSON.
func ParseBody(data []byte) any {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return nil
	}
	return gjson.ParseBytes(data).Value()
}
