// Package parse holds pure, subprocess-free parsers for each vendor license
// server's report format. Every parser is a plain func([]byte) (T, error) so
// it can be unit-tested against fixture output with no command execution.
package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
)

// FeatureUsage is one feature's total/used count extracted from a vendor's
// raw report.
type FeatureUsage struct {
	Total int
	Used  int
}

// usersOfLine matches lmstat's "Users of <feature>:  (Total of N licenses
// issued;  Total of M licenses in use)" line.
var usersOfLine = regexp.MustCompile(`Users of (\S+):\s+\(Total of (\d+) licenses? issued;\s+Total of (\d+) licenses? in use\)`)

// FlexLM parses `lmutil lmstat -c <port>@<host> -f <feature>` output. It
// reports a single total block for the requested feature and returns
// BadServerOutputError if the "Users of" line is absent.
func FlexLM(feature string, output []byte) (FeatureUsage, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		match := usersOfLine.FindSubmatch(scanner.Bytes())
		if match == nil {
			continue
		}

		total, err := strconv.Atoi(string(match[2]))
		if err != nil {
			continue
		}

		used, err := strconv.Atoi(string(match[3]))
		if err != nil {
			continue
		}

		return FeatureUsage{Total: total, Used: used}, nil
	}

	return FeatureUsage{}, lmerrors.BadServerOutputError{Feature: feature, Reason: "no \"Users of\" line found in lmstat output"}
}
