package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/internal/agent/squeue"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

type fakeClient struct {
	configurations   []mmodel.Configuration
	graceTimes       map[string]int
	featuresByConfig map[string][]mmodel.ReportTarget
	serversByConfig  map[string][]mmodel.LicenseServer
	bookingsByJob    map[string][]mmodel.Booking
	released         []string
	markedPending    []string
	reconcileInput   *mmodel.ReconcileInput
	reconcileResult  *mmodel.ReconcileResult
}

func (f *fakeClient) MyConfigurations(ctx context.Context) ([]mmodel.Configuration, error) {
	return f.configurations, nil
}

func (f *fakeClient) GraceTimes(ctx context.Context) (map[string]int, error) {
	return f.graceTimes, nil
}

func (f *fakeClient) FeaturesByConfigurationID(ctx context.Context, configurationID string) ([]mmodel.ReportTarget, error) {
	return f.featuresByConfig[configurationID], nil
}

func (f *fakeClient) LicenseServersByConfigurationID(ctx context.Context, configurationID string) ([]mmodel.LicenseServer, error) {
	return f.serversByConfig[configurationID], nil
}

func (f *fakeClient) BookingsBySlurmJobID(ctx context.Context, clusterID, slurmJobID string) ([]mmodel.Booking, error) {
	return f.bookingsByJob[slurmJobID], nil
}

func (f *fakeClient) MarkBookingsPending(ctx context.Context, clusterID, slurmJobID string) error {
	f.markedPending = append(f.markedPending, slurmJobID)
	return nil
}

func (f *fakeClient) ReleaseBookingsBySlurmJobID(ctx context.Context, clusterID, slurmJobID string) error {
	f.released = append(f.released, slurmJobID)
	return nil
}

func (f *fakeClient) Reconcile(ctx context.Context, input *mmodel.ReconcileInput) (*mmodel.ReconcileResult, error) {
	f.reconcileInput = input
	return f.reconcileResult, nil
}

// shSqueueCmd builds a squeue command substitute via the shell, avoiding a
// dependency on a real squeue binary in the test environment.
func shSqueueCmd(script string) []string {
	return []string{"sh", "-c", script}
}

func TestCycleEmptyQueueReturnsWithoutError(t *testing.T) {
	f := &fakeClient{}

	result, err := Cycle(context.Background(), Config{
		Client:    f,
		Logger:    mlog.NoOp(),
		SqueueCmd: shSqueueCmd("true"),
		ClusterID: "clu-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.FeaturesReported)
}

func TestCycleSweepsExpiredBookingsAndFailsWithoutVendorTools(t *testing.T) {
	cmd := shSqueueCmd(`printf '123\tuser1\tRUNNING\t01:05:30\n'`)

	f := &fakeClient{
		configurations: []mmodel.Configuration{{ID: "cfg-1", ClusterID: "clu-1", Type: mmodel.ConfigurationTypeFlexLM, GraceTime: 60}},
		graceTimes:     map[string]int{"cfg-1": 60},
		featuresByConfig: map[string][]mmodel.ReportTarget{
			"cfg-1": {{FeatureID: "feat-1", ProductFeature: "abaqus.standard"}},
		},
		serversByConfig: map[string][]mmodel.LicenseServer{
			"cfg-1": {{ID: "srv-1", Host: "127.0.0.1", Port: 1}},
		},
		bookingsByJob: map[string][]mmodel.Booking{
			"123": {{ID: "bk-1", JobID: "123", FeatureID: "feat-1", State: mmodel.BookingStatePending}},
		},
		reconcileResult: &mmodel.ReconcileResult{FeaturesUpdated: 0, Clamped: 0},
	}

	// The FlexLM adapter has no real lmutil on PATH to invoke, so the
	// report comes back empty and the cycle fails at the "no license data
	// could be collected" guard. This still exercises the grace-time
	// sweep, the one part of the cycle observable without a subprocess
	// double: job 123's run time (1h5m30s) exceeds its configuration's
	// grace_time (60s), so its booking is released.
	_, err := Cycle(context.Background(), Config{
		Client:    f,
		Logger:    mlog.NoOp(),
		SqueueCmd: cmd,
		ClusterID: "clu-1",
	})

	require.Error(t, err)
	assert.ElementsMatch(t, []string{"123"}, f.released)
}

func TestSweepMarksCreatedBookingsPendingWithoutReleasingThem(t *testing.T) {
	f := &fakeClient{
		graceTimes: map[string]int{"cfg-1": 60},
		bookingsByJob: map[string][]mmodel.Booking{
			"123": {{ID: "bk-1", JobID: "123", FeatureID: "feat-1", State: mmodel.BookingStateCreated}},
		},
	}

	running := []squeue.Job{{JobID: "123", State: "RUNNING", RunTimeSecs: 5}}

	swept, err := sweepExpiredBookings(context.Background(), Config{Client: f, Logger: mlog.NoOp(), ClusterID: "clu-1"},
		running, f.graceTimes, map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, 0, swept)
	assert.ElementsMatch(t, []string{"123"}, f.markedPending)
	assert.Empty(t, f.released)
}

func TestGreatestGraceTime(t *testing.T) {
	bookings := []mmodel.Booking{{FeatureID: "feat-1"}, {FeatureID: "feat-2"}}
	graceTimes := map[string]int{"cfg-1": 60, "cfg-2": 300}
	featureToConfig := map[string]string{"feat-1": "cfg-1", "feat-2": "cfg-2"}

	assert.Equal(t, 300, greatestGraceTime(bookings, graceTimes, featureToConfig))
}

func TestGreatestGraceTimeUnknownFeatureIsIgnored(t *testing.T) {
	bookings := []mmodel.Booking{{FeatureID: "feat-unknown"}}

	assert.Equal(t, -1, greatestGraceTime(bookings, map[string]int{}, map[string]string{}))
}
