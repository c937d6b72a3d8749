// Package squeue reads and parses the workload scheduler's running-job
// queue: one job per line, tab-separated job_id/user/state/run_time,
// read-only.
package squeue

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Job is one parsed queue line.
type Job struct {
	JobID       string
	User        string
	State       string
	RunTime     string
	RunTimeSecs int
}

const stateRunning = "RUNNING"

// Running filters jobs to those in the RUNNING state.
func Running(jobs []Job) []Job {
	running := make([]Job, 0, len(jobs))

	for _, j := range jobs {
		if j.State == stateRunning {
			running = append(running, j)
		}
	}

	return running
}

// Read invokes the squeue command and parses its stdout. An empty or
// failed read returns an empty slice and no error: per the reconciliation
// cycle's contract, a queue read that yields nothing aborts the cycle
// without treating it as a failure.
func Read(ctx context.Context, squeueCmd []string) ([]Job, error) {
	if len(squeueCmd) == 0 {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, squeueCmd[0], squeueCmd[1:]...)

	output, err := cmd.Output()
	if err != nil {
		return nil, nil
	}

	return Parse(output)
}

// Parse reads tab-separated job_id/user/state/run_time lines into Jobs.
// Malformed lines are skipped rather than aborting the whole read.
func Parse(output []byte) ([]Job, error) {
	var jobs []Job

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			continue
		}

		runTimeSecs, err := ParseDuration(fields[3])
		if err != nil {
			continue
		}

		jobs = append(jobs, Job{
			JobID:       fields[0],
			User:        fields[1],
			State:       fields[2],
			RunTime:     fields[3],
			RunTimeSecs: runTimeSecs,
		})
	}

	return jobs, scanner.Err()
}

// ParseDuration parses the "[[DD-]HH:]MM:SS" grammar into seconds.
func ParseDuration(s string) (int, error) {
	days := 0

	if i := strings.Index(s, "-"); i >= 0 {
		d, err := strconv.Atoi(s[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid day component in duration %q: %w", s, err)
		}

		days = d
		s = s[i+1:]
	}

	parts := strings.Split(s, ":")

	var hours, minutes, seconds int

	var err error

	switch len(parts) {
	case 2:
		minutes, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in duration %q: %w", s, err)
		}

		seconds, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in duration %q: %w", s, err)
		}
	case 3:
		hours, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in duration %q: %w", s, err)
		}

		minutes, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in duration %q: %w", s, err)
		}

		seconds, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in duration %q: %w", s, err)
		}
	default:
		return 0, fmt.Errorf("unrecognized duration format %q", s)
	}

	return days*86400 + hours*3600 + minutes*60 + seconds, nil
}
