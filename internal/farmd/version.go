package farmd

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// supportedAPI is the farmd release line this client understands.
const supportedAPI = ">= 0.5, < 2"

// CheckVersion fetches /api/version and compares it against the supported
// range. The returned warning is empty when the controller is compatible.
// A mismatch or an unparseable version yields a warning, never an error:
// version skew must not block commands against a local controller.
func (c *Client) CheckVersion(ctx context.Context) (string, error) {
	info, err := c.FetchVersion(ctx)
	if err != nil {
		return "", err
	}

	v, err := semver.NewVersion(info.Version)
	if err != nil {
		return fmt.Sprintf("farmd reports unparseable version %q", info.Version), nil
	}

	constraint, err := semver.NewConstraint(supportedAPI)
	if err != nil {
		return "", fmt.Errorf("parse version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Sprintf("farmd %s is outside the supported range %s", info.Version, supportedAPI), nil
	}
	return "", nil
}
