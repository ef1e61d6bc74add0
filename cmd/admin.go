package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rendydev404/beatly-backend/internal/shared"
	"github.com/urfave/cli/v3"
)

// adminURL builds the admin endpoint URL for the configured server.
func (r *Runner) adminURL(path string) string {
	return fmt.Sprintf("http://%s:%d/api/admin/resolver%s", r.config.Server.Host, r.config.Server.Port, path)
}

// adminRequest issues one request against a running server's admin API and
// decodes the JSON response.
func (r *Runner) adminRequest(ctx context.Context, method, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.adminURL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: is the server running? %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(body))
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return data, nil
}

// CacheStats prints the running server's resolution cache snapshot.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	data, err := r.adminRequest(ctx, http.MethodGet, "/cache")
	if err != nil {
		return err
	}
	return r.writeJSON(data, cmd.Bool("pretty"))
}

// CacheClear empties the running server's resolution cache.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.adminRequest(ctx, http.MethodDelete, "/cache"); err != nil {
		return err
	}
	r.writePlainln("✓ Resolution cache cleared")
	return nil
}

// CredentialsStatus prints the state of the search credential pool.
func (r *Runner) CredentialsStatus(ctx context.Context, cmd *cli.Command) error {
	data, err := r.adminRequest(ctx, http.MethodGet, "/credentials")
	if err != nil {
		return err
	}
	return r.writeJSON(data, cmd.Bool("pretty"))
}

// CredentialsReset clears exhausted flags on every credential.
func (r *Runner) CredentialsReset(ctx context.Context, cmd *cli.Command) error {
	data, err := r.adminRequest(ctx, http.MethodPost, "/credentials/reset")
	if err != nil {
		return err
	}
	r.writePlainln("✓ Credentials reset")
	return r.writeJSON(data, true)
}
