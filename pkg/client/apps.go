package client

import (
	"context"
	"strconv"

	"github.com/aristide1997/version-vault/internal/api"
)

// CreateAppOptions contains optional parameters for registering an app.
type CreateAppOptions struct {
	// Secure requests bearer-token gating for every later operation on
	// the app. The returned token is shown exactly once.
	Secure bool

	// ExpiryDays is the token expiry horizon in days for secure apps.
	// Zero uses the server default.
	ExpiryDays int
}

// CreateApp registers a new app and returns the server response, which
// includes the one-time raw token for secure apps.
func (c *Client) CreateApp(ctx context.Context, name string, opts CreateAppOptions) (*api.CreateResponse, error) {
	ub := c.url().
		setPath(api.CreateAppRoute).
		addQueryParam("app_name", name)
	if opts.Secure {
		ub.addQueryParam("secure", "true")
		if opts.ExpiryDays > 0 {
			ub.addQueryParam("expiry_days", strconv.Itoa(opts.ExpiryDays))
		}
	}

	var resp api.CreateResponse
	if _, err := c.post(ctx, ub.build(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetVersion retrieves the current version of an app.
func (c *Client) GetVersion(ctx context.Context, name string) (string, error) {
	var resp api.VersionResponse
	if _, err := c.get(ctx, c.url().
		setPath("/"+name+"/version").
		build(), &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// BumpVersion increments one component of the app's version.
// part must be one of "major", "minor" or "patch".
func (c *Client) BumpVersion(ctx context.Context, name, part string) (string, error) {
	var resp api.NewVersionResponse
	if _, err := c.post(ctx, c.url().
		setPath("/"+name+"/bump").
		addQueryParam("type", part).
		build(), &resp); err != nil {
		return "", err
	}
	return resp.NewVersion, nil
}

// SetVersion overwrites the app's version with an explicit value.
func (c *Client) SetVersion(ctx context.Context, name, version string) (string, error) {
	var resp api.NewVersionResponse
	if _, err := c.post(ctx, c.url().
		setPath("/"+name+"/set").
		addQueryParam("new_version", version).
		build(), &resp); err != nil {
		return "", err
	}
	return resp.NewVersion, nil
}
