// agentw/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func PostJSON(ctx context.Context, url string, body interface{}, resp interface{}) error {
	return PostJSONWithAuth(ctx, url, "", body, resp)
}

func PostJSONWithAuth(ctx context.Context, url, apiKey string, body interface{}, resp interface{}) error {
	r, err := post(ctx, url, apiKey, body)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %d", r.StatusCode)
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

// PostStream returns the raw response body for the caller to consume.
// A 200 with no body yields (nil, nil).
func PostStream(ctx context.Context, url string, body interface{}) (io.ReadCloser, error) {
	return PostStreamWithAuth(ctx, url, "", body)
}

func PostStreamWithAuth(ctx context.Context, url, apiKey string, body interface{}) (io.ReadCloser, error) {
	r, err := post(ctx, url, apiKey, body)
	if err != nil {
		return nil, err
	}
	if r.StatusCode != http.StatusOK {
		defer r.Body.Close()
		return nil, fmt.Errorf("bad status: %d", r.StatusCode)
	}
	if r.Body == http.NoBody {
		return nil, nil
	}
	return r.Body, nil
}

func post(ctx context.Context, url, apiKey string, body interface{}) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	return http.DefaultClient.Do(req)
}
