package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/banshee-data/vehicle.tracker/internal/httputil"
	"github.com/banshee-data/vehicle.tracker/internal/tracking"
)

// Client calls the HTTP API of a running tracker instance.
type Client struct {
	base string
	http httputil.HTTPClient
}

// NewClient returns a client for the instance at baseURL, for example
// http://localhost:8080. A nil hc uses http.DefaultClient.
func NewClient(baseURL string, hc httputil.HTTPClient) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.base+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.base+path, nil)
	}
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return httputil.DecodeResponse(resp, out)
}

func (c *Client) Vehicles(ctx context.Context) ([]*tracking.VehicleStatus, error) {
	var out []*tracking.VehicleStatus
	err := c.do(ctx, http.MethodGet, "/api/vehicles", nil, &out)
	return out, err
}

func (c *Client) Vehicle(ctx context.Context, id tracking.VehicleID) (*tracking.VehicleStatus, error) {
	var out tracking.VehicleStatus
	if err := c.do(ctx, http.MethodGet, "/api/vehicles/"+url.PathEscape(string(id)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendCommand pushes cmd to id and returns the server's confirmation
// message. The instance must be the one holding the vehicle's stream.
func (c *Client) SendCommand(ctx context.Context, id tracking.VehicleID, cmd tracking.Command) (string, error) {
	var out commandResult
	path := "/api/vehicles/" + url.PathEscape(string(id)) + "/command"
	if err := c.do(ctx, http.MethodPost, path, commandRequest{Command: string(cmd)}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// RunSweeper asks the instance for an immediate sweeper pass. It reports
// false when a manual pass was already pending.
func (c *Client) RunSweeper(ctx context.Context) (bool, error) {
	var out map[string]bool
	if err := c.do(ctx, http.MethodPost, "/api/sweeper/run", nil, &out); err != nil {
		return false, err
	}
	return out["queued"], nil
}
