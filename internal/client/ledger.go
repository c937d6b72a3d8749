package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// decode reads and JSON-decodes a ledger response body, mapping non-2xx
// statuses to BackendConnectionError with the response body for context.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return lmerrors.BackendConnectionError{Message: "failed to read ledger response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return lmerrors.BackendConnectionError{Message: fmt.Sprintf("ledger returned %d: %s", resp.StatusCode, string(body))}
	}

	if out == nil || len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return lmerrors.BackendConnectionError{Message: "malformed response from ledger", Err: err}
	}

	return nil
}

// MyConfigurations returns the configurations the caller's bearer token is
// authorized to reconcile against, per the client's azp claim.
func (c *Client) MyConfigurations(ctx context.Context) ([]mmodel.Configuration, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/configurations/mine", nil)
	if err != nil {
		return nil, err
	}

	var configurations []mmodel.Configuration
	if err := decode(resp, &configurations); err != nil {
		return nil, err
	}

	return configurations, nil
}

// GraceTimes returns every configuration's grace time keyed by id, used by
// the agent's grace-time sweep.
func (c *Client) GraceTimes(ctx context.Context) (map[string]int, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/configurations/grace-times", nil)
	if err != nil {
		return nil, err
	}

	var graceTimes map[string]int
	if err := decode(resp, &graceTimes); err != nil {
		return nil, err
	}

	return graceTimes, nil
}

// FeaturesByConfigurationID returns the report targets for every feature a
// configuration's adapter is responsible for.
func (c *Client) FeaturesByConfigurationID(ctx context.Context, configurationID string) ([]mmodel.ReportTarget, error) {
	path := fmt.Sprintf("/v1/configurations/%s/features", configurationID)

	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var targets []mmodel.ReportTarget
	if err := decode(resp, &targets); err != nil {
		return nil, err
	}

	return targets, nil
}

// LicenseServersByConfigurationID returns the license-server endpoints
// listed under a configuration, in the order the adapter should try them.
func (c *Client) LicenseServersByConfigurationID(ctx context.Context, configurationID string) ([]mmodel.LicenseServer, error) {
	path := fmt.Sprintf("/v1/configurations/%s/license-servers", configurationID)

	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var servers []mmodel.LicenseServer
	if err := decode(resp, &servers); err != nil {
		return nil, err
	}

	return servers, nil
}

// CreateBookings admits a batch of license bookings for a Slurm job.
func (c *Client) CreateBookings(ctx context.Context, input *mmodel.BookingCreateInput) ([]mmodel.Booking, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, lmerrors.BackendConnectionError{Message: "failed to encode booking request", Err: err}
	}

	resp, err := c.Do(ctx, http.MethodPost, "/v1/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var bookings []mmodel.Booking
	if err := decode(resp, &bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// BookingsBySlurmJobID retrieves the bookings held by a Slurm job on a cluster.
func (c *Client) BookingsBySlurmJobID(ctx context.Context, clusterID, slurmJobID string) ([]mmodel.Booking, error) {
	path := fmt.Sprintf("/v1/clusters/%s/bookings/by_job/%s", clusterID, slurmJobID)

	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var bookings []mmodel.Booking
	if err := decode(resp, &bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// MarkBookingsPending transitions every CREATED booking held by a Slurm job
// into PENDING.
func (c *Client) MarkBookingsPending(ctx context.Context, clusterID, slurmJobID string) error {
	path := fmt.Sprintf("/v1/clusters/%s/bookings/by_job/%s/pending", clusterID, slurmJobID)

	resp, err := c.Do(ctx, http.MethodPatch, path, nil)
	if err != nil {
		return err
	}

	return decode(resp, nil)
}

// ReleaseBookingsBySlurmJobID releases every booking held by a Slurm job.
func (c *Client) ReleaseBookingsBySlurmJobID(ctx context.Context, clusterID, slurmJobID string) error {
	path := fmt.Sprintf("/v1/clusters/%s/bookings/by_job/%s", clusterID, slurmJobID)

	resp, err := c.Do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return decode(resp, nil)
}

// Reconcile submits a cluster's full usage report and returns the ledger's
// outcome summary.
func (c *Client) Reconcile(ctx context.Context, input *mmodel.ReconcileInput) (*mmodel.ReconcileResult, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, lmerrors.BackendConnectionError{Message: "failed to encode reconcile request", Err: err}
	}

	resp, err := c.Do(ctx, http.MethodPatch, "/v1/reconcile", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result mmodel.ReconcileResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
