// Package reconcile implements the cluster agent's reconciliation cycle:
// read the scheduler's queue, sweep expired grace-time bookings, build a
// usage report from the configured vendor adapters, and submit it to the
// ledger.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/niklasmelin/license-manager/internal/agent/adapter"
	"github.com/niklasmelin/license-manager/internal/agent/squeue"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// LedgerClient is the subset of internal/client.Client the reconciliation
// cycle depends on; *client.Client satisfies it. Declared here so tests can
// substitute a fake without standing up an HTTP server.
type LedgerClient interface {
	MyConfigurations(ctx context.Context) ([]mmodel.Configuration, error)
	GraceTimes(ctx context.Context) (map[string]int, error)
	FeaturesByConfigurationID(ctx context.Context, configurationID string) ([]mmodel.ReportTarget, error)
	LicenseServersByConfigurationID(ctx context.Context, configurationID string) ([]mmodel.LicenseServer, error)
	BookingsBySlurmJobID(ctx context.Context, clusterID, slurmJobID string) ([]mmodel.Booking, error)
	MarkBookingsPending(ctx context.Context, clusterID, slurmJobID string) error
	ReleaseBookingsBySlurmJobID(ctx context.Context, clusterID, slurmJobID string) error
	Reconcile(ctx context.Context, input *mmodel.ReconcileInput) (*mmodel.ReconcileResult, error)
}

// maxConcurrency bounds the fan-out during the booking-fetch and
// report-building steps so a large queue or configuration set never opens
// an unbounded number of subprocesses or HTTP requests at once.
const maxConcurrency = 16

// cycleTimeout bounds one full reconciliation cycle, per the cancellation
// requirement: a cycle that cannot complete within this window is abandoned
// rather than left to run indefinitely.
const cycleTimeout = 5 * time.Minute

// Config carries everything one reconciliation cycle needs. BinPaths maps a
// mmodel.ConfigurationType to the vendor CLI path to use in place of the
// adapter's PATH-relative default; a missing entry means "use the default".
type Config struct {
	Client    LedgerClient
	Logger    mlog.Logger
	SqueueCmd []string
	ClusterID string
	BinPaths  map[mmodel.ConfigurationType]string
}

// Result summarizes the outcome of one cycle for the caller (the scheduler
// loop or the on-demand HTTP trigger).
type Result struct {
	FeaturesReported int
	BookingsSwept    int
	ReconcileResult  *mmodel.ReconcileResult
}

// Cycle runs steps 1-7 of the reconciliation loop once. A queue read that
// fails or returns nothing ends the cycle without error: there is nothing
// to reconcile against.
func Cycle(ctx context.Context, cfg Config) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	logger := cfg.Logger

	jobs, err := squeue.Read(ctx, cfg.SqueueCmd)
	if err != nil {
		return nil, fmt.Errorf("reading queue: %w", err)
	}

	if len(jobs) == 0 {
		return &Result{}, nil
	}

	running := squeue.Running(jobs)

	configurations, err := cfg.Client.MyConfigurations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing configurations: %w", err)
	}

	graceTimes, err := cfg.Client.GraceTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing grace times: %w", err)
	}

	targetsByConfig := make(map[string][]mmodel.ReportTarget, len(configurations))
	featureToConfig := make(map[string]string)

	for _, configuration := range configurations {
		targets, err := cfg.Client.FeaturesByConfigurationID(ctx, configuration.ID)
		if err != nil {
			logger.Errorf("listing features for configuration %s: %v", configuration.ID, err)
			continue
		}

		targetsByConfig[configuration.ID] = targets

		for _, t := range targets {
			featureToConfig[t.FeatureID] = configuration.ID
		}
	}

	swept, err := sweepExpiredBookings(ctx, cfg, running, graceTimes, featureToConfig)
	if err != nil {
		logger.Errorf("grace-time sweep encountered an error: %v", err)
	}

	report, err := buildReport(ctx, cfg, configurations, targetsByConfig)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	if len(report) == 0 {
		return nil, fmt.Errorf("no license data could be collected for cluster %s", cfg.ClusterID)
	}

	result, err := cfg.Client.Reconcile(ctx, &mmodel.ReconcileInput{ClusterID: cfg.ClusterID, Report: report})
	if err != nil {
		return nil, fmt.Errorf("submitting reconcile report: %w", err)
	}

	logger.Infof("reconcile succeeded: %d feature(s) reported, %d clamped, %d booking(s) swept",
		len(report), result.Clamped, swept)

	return &Result{FeaturesReported: len(report), BookingsSwept: swept, ReconcileResult: result}, nil
}

// sweepExpiredBookings fetches each running job's bookings in bounded
// parallel, computes the greatest grace_time across the configurations its
// bookings touch, and releases the job's bookings if its run time has
// exceeded that grace_time.
func sweepExpiredBookings(ctx context.Context, cfg Config, running []squeue.Job, graceTimes map[string]int, featureToConfig map[string]string) (int, error) {
	type jobBookings struct {
		job      squeue.Job
		bookings []mmodel.Booking
	}

	fetched := make([]jobBookings, len(running))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, job := range running {
		i, job := i, job

		g.Go(func() error {
			bookings, err := cfg.Client.BookingsBySlurmJobID(gctx, cfg.ClusterID, job.JobID)
			if err != nil {
				cfg.Logger.Errorf("fetching bookings for job %s: %v", job.JobID, err)
				return nil
			}

			fetched[i] = jobBookings{job: job, bookings: bookings}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	var swept int

	for _, fb := range fetched {
		if hasCreatedBooking(fb.bookings) {
			if err := cfg.Client.MarkBookingsPending(ctx, cfg.ClusterID, fb.job.JobID); err != nil {
				cfg.Logger.Errorf("marking bookings pending for job %s: %v", fb.job.JobID, err)
			}
		}

		greatest := greatestGraceTime(fb.bookings, graceTimes, featureToConfig)
		if greatest == -1 || fb.job.RunTimeSecs <= greatest {
			continue
		}

		if err := cfg.Client.ReleaseBookingsBySlurmJobID(ctx, cfg.ClusterID, fb.job.JobID); err != nil {
			cfg.Logger.Errorf("releasing bookings for job %s: %v", fb.job.JobID, err)
			continue
		}

		swept++
	}

	return swept, nil
}

// hasCreatedBooking reports whether any of a job's bookings is still in its
// just-admitted CREATED state, meaning the job's transition into RUNNING has
// not yet been observed by a prior cycle.
func hasCreatedBooking(bookings []mmodel.Booking) bool {
	for _, b := range bookings {
		if b.State == mmodel.BookingStateCreated {
			return true
		}
	}

	return false
}

// greatestGraceTime returns the largest grace_time among the configurations
// a job's bookings touch, or -1 if none is known (meaning: never expire it
// on grace_time alone).
func greatestGraceTime(bookings []mmodel.Booking, graceTimes map[string]int, featureToConfig map[string]string) int {
	greatest := -1

	for _, booking := range bookings {
		configID, ok := featureToConfig[booking.FeatureID]
		if !ok {
			continue
		}

		graceTime, ok := graceTimes[configID]
		if !ok {
			continue
		}

		if graceTime > greatest {
			greatest = graceTime
		}
	}

	return greatest
}

// buildReport invokes each configuration's adapter for each of its features
// in bounded parallel. A single feature's failure is logged and omitted
// from the report rather than aborting the whole cycle.
func buildReport(ctx context.Context, cfg Config, configurations []mmodel.Configuration, targetsByConfig map[string][]mmodel.ReportTarget) ([]mmodel.ReconcileReportItem, error) {
	type job struct {
		configuration mmodel.Configuration
		target        mmodel.ReportTarget
	}

	var jobs []job

	for _, configuration := range configurations {
		for _, target := range targetsByConfig[configuration.ID] {
			jobs = append(jobs, job{configuration: configuration, target: target})
		}
	}

	items := make([]*mmodel.ReconcileReportItem, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, j := range jobs {
		i, j := i, j

		g.Go(func() error {
			servers, err := cfg.Client.LicenseServersByConfigurationID(gctx, j.configuration.ID)
			if err != nil {
				cfg.Logger.Errorf("listing license servers for configuration %s: %v", j.configuration.ID, err)
				return nil
			}

			serverAdapter, err := adapter.New(j.configuration.Type, servers, cfg.BinPaths[j.configuration.Type])
			if err != nil {
				cfg.Logger.Errorf("building adapter for configuration %s: %v", j.configuration.ID, err)
				return nil
			}

			featureName := adapter.SplitProductFeature(j.target.ProductFeature)

			item, err := serverAdapter.ReportItem(gctx, j.target.ProductFeature, featureName)
			if err != nil {
				cfg.Logger.Errorf("reporting %s: %v", j.target.ProductFeature, err)
				return nil
			}

			items[i] = &item

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := make([]mmodel.ReconcileReportItem, 0, len(items))

	for _, item := range items {
		if item != nil {
			report = append(report, *item)
		}
	}

	return report, nil
}
