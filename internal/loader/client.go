package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ambernotes/revops-etl/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// getJSONWithRetry fetches url into dst, retrying briefly on transport errors
// and non-2xx responses.
func getJSONWithRetry(ctx context.Context, c HTTPClient, url string, dst any) error {
	b := utils.NewBackoff(100*time.Millisecond, time.Second, 2)
	return b.Do(ctx, func(int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(body))
		}
		return json.NewDecoder(resp.Body).Decode(dst)
	})
}
