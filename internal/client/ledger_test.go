package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	withHomeDir(t)
	require.NoError(t, saveTokenToCache(signedToken(t, time.Hour)))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{BackendBaseURL: server.URL})
}

func TestMyConfigurations(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/configurations/mine", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		json.NewEncoder(w).Encode([]mmodel.Configuration{{ID: "cfg-1", Name: "flex-main"}})
	})

	configurations, err := c.MyConfigurations(context.Background())
	require.NoError(t, err)
	require.Len(t, configurations, 1)
	assert.Equal(t, "cfg-1", configurations[0].ID)
}

func TestGraceTimes(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/configurations/grace-times", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]int{"cfg-1": 300})
	})

	graceTimes, err := c.GraceTimes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 300, graceTimes["cfg-1"])
}

func TestFeaturesByConfigurationID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/configurations/cfg-1/features", r.URL.Path)

		json.NewEncoder(w).Encode([]mmodel.ReportTarget{{FeatureID: "feat-1", ProductFeature: "ansys.mech"}})
	})

	targets, err := c.FeaturesByConfigurationID(context.Background(), "cfg-1")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "ansys.mech", targets[0].ProductFeature)
}

func TestLicenseServersByConfigurationID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/configurations/cfg-1/license-servers", r.URL.Path)

		json.NewEncoder(w).Encode([]mmodel.LicenseServer{{ID: "srv-1", Host: "flexlm.cluster.local", Port: 27000}})
	})

	servers, err := c.LicenseServersByConfigurationID(context.Background(), "cfg-1")
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "flexlm.cluster.local", servers[0].Host)
}

func TestCreateBookings(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/bookings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input mmodel.BookingCreateInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "12345", input.SlurmJobID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]mmodel.Booking{{ID: "bk-1", JobID: "12345"}})
	})

	bookings, err := c.CreateBookings(context.Background(), &mmodel.BookingCreateInput{
		SlurmJobID: "12345",
		ClusterID:  "clu-1",
		Username:   "user1",
		LeadHost:   "node01",
		Bookings:   []mmodel.BookingRequestItem{{ProductFeature: "ansys.mech", Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "bk-1", bookings[0].ID)
}

func TestBookingsBySlurmJobID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/clusters/clu-1/bookings/by_job/12345", r.URL.Path)

		json.NewEncoder(w).Encode([]mmodel.Booking{{ID: "bk-1", JobID: "12345"}})
	})

	bookings, err := c.BookingsBySlurmJobID(context.Background(), "clu-1", "12345")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
}

func TestReleaseBookingsBySlurmJobID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/clusters/clu-1/bookings/by_job/12345", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.ReleaseBookingsBySlurmJobID(context.Background(), "clu-1", "12345")
	assert.NoError(t, err)
}

func TestMarkBookingsPending(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/clusters/clu-1/bookings/by_job/12345/pending", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.MarkBookingsPending(context.Background(), "clu-1", "12345")
	assert.NoError(t, err)
}

func TestReconcile(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reconcile", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		var input mmodel.ReconcileInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "clu-1", input.ClusterID)

		json.NewEncoder(w).Encode(mmodel.ReconcileResult{FeaturesUpdated: 2, Clamped: 1})
	})

	result, err := c.Reconcile(context.Background(), &mmodel.ReconcileInput{
		ClusterID: "clu-1",
		Report:    []mmodel.ReconcileReportItem{{ProductFeature: "ansys.mech", Used: 10, Total: 20}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.FeaturesUpdated)
	assert.Equal(t, 1, result.Clamped)
}

func TestDecodeMapsNon2xxToBackendConnectionError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.MyConfigurations(context.Background())
	assert.Error(t, err)
}
