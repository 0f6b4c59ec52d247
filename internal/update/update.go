// Package update checks the project release feed for newer versions.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ReleaseFeedURL is the endpoint queried for the latest release.
const ReleaseFeedURL = "https://api.github.com/repos/modshift/modshift/releases/latest"

// Release describes the latest published release.
type Release struct {
	Version string `json:"tag_name"`
	URL     string `json:"html_url"`
}

// retryLogger drops retryablehttp's chatty output; failures surface
// through the returned error.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {}
func (retryLogger) Info(msg string, keysAndValues ...interface{})  {}
func (retryLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (retryLogger) Warn(msg string, keysAndValues ...interface{})  {}

// Check fetches the latest release and reports whether it is newer than
// currentVersion. Transient failures are retried with backoff.
func Check(ctx context.Context, currentVersion string) (*Release, bool, error) {
	return checkURL(ctx, ReleaseFeedURL, currentVersion)
}

func checkURL(ctx context.Context, url, currentVersion string) (*Release, bool, error) {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = retryLogger{}
	client := retryClient.StandardClient()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("update check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("update check failed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read update response: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, false, fmt.Errorf("failed to parse update response: %w", err)
	}
	if release.Version == "" {
		return nil, false, fmt.Errorf("update response missing version")
	}

	return &release, release.Version != currentVersion, nil
}
