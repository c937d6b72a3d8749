package squeue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    int
		expectError bool
	}{
		{name: "minutes seconds", input: "05:30", expected: 5*60 + 30},
		{name: "hours minutes seconds", input: "01:05:30", expected: 1*3600 + 5*60 + 30},
		{name: "days hours minutes seconds", input: "2-01:05:30", expected: 2*86400 + 1*3600 + 5*60 + 30},
		{name: "zero", input: "00:00", expected: 0},
		{name: "malformed", input: "not-a-duration", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			secs, err := ParseDuration(tc.input)
			if tc.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, secs)
		})
	}
}

func TestParse(t *testing.T) {
	output := []byte("123\tuser1\tRUNNING\t01:05:30\n456\tuser2\tPENDING\t00:00\n\nmalformed-line\n")

	jobs, err := Parse(output)
	assert.NoError(t, err)
	assert.Len(t, jobs, 2)

	assert.Equal(t, "123", jobs[0].JobID)
	assert.Equal(t, "RUNNING", jobs[0].State)
	assert.Equal(t, 1*3600+5*60+30, jobs[0].RunTimeSecs)

	assert.Equal(t, "456", jobs[1].JobID)
	assert.Equal(t, "PENDING", jobs[1].State)
}

func TestRunning(t *testing.T) {
	jobs := []Job{
		{JobID: "1", State: "RUNNING"},
		{JobID: "2", State: "PENDING"},
		{JobID: "3", State: "RUNNING"},
	}

	running := Running(jobs)
	assert.Len(t, running, 2)
	assert.Equal(t, "1", running[0].JobID)
	assert.Equal(t, "3", running[1].JobID)
}
