package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apierr "github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/errors"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
)

// HTTPClient is the outbound surface, satisfied by *http.Client. Kept as
// an interface so the auth transport and tests can be injected.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxBodyBytes bounds how much of a response we read when decoding.
const maxBodyBytes = 1 << 20

// call performs one request against the backend and decodes the shared
// success envelope into out (which may be nil for operations whose payload
// the caller ignores). Non-2xx responses and envelopes with success=false
// become *errors.APIError; transport failures become recoverable APIErrors
// with the generic connectivity message.
func call(ctx context.Context, hc HTTPClient, method, baseURL, path, operation string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return apierr.FromNetwork(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apierr.FromNetwork(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := apierr.FromResponse(operation, resp.StatusCode, raw)
		if resp.StatusCode == http.StatusNotFound {
			e.Underlying = fmt.Errorf("%s: %w", operation, types.ErrNotFound)
		}
		return e
	}

	var env types.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return apierr.FromResponse(operation, resp.StatusCode, raw)
	}
	if !env.Success {
		return apierr.FromResponse(operation, resp.StatusCode, raw)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

func postJSON(ctx context.Context, hc HTTPClient, baseURL, path, operation string, in, out any) error {
	return call(ctx, hc, http.MethodPost, baseURL, path, operation, in, out)
}

func getJSON(ctx context.Context, hc HTTPClient, baseURL, path, operation string, out any) error {
	return call(ctx, hc, http.MethodGet, baseURL, path, operation, nil, out)
}

func deleteJSON(ctx context.Context, hc HTTPClient, baseURL, path, operation string, out any) error {
	return call(ctx, hc, http.MethodDelete, baseURL, path, operation, nil, out)
}
