package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
)

// rlmLine matches rlmutil rlmstat's per-feature count line, e.g.
// "mppdyna v20.0, count: 100, # res: 0, inuse: 37".
var rlmLine = regexp.MustCompile(`^(\S+)\s+v[\d.]+,\s*count:\s*(\d+),.*inuse:\s*(\d+)`)

// RLM parses `rlmutil rlmstat -c <port>@<host> -l <feature>` output into a
// map of every feature mentioned, keyed by feature name.
func RLM(output []byte) map[string]FeatureUsage {
	result := make(map[string]FeatureUsage)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		match := rlmLine.FindSubmatch(scanner.Bytes())
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

		result[string(match[1])] = FeatureUsage{Total: total, Used: used}
	}

	return result
}
