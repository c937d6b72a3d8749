package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
)

// lmxLine matches lmxendutil's per-feature count line, e.g.
// "Feature mppdyna, amount 100, issued 37".
var lmxLine = regexp.MustCompile(`Feature\s+(\S+),\s*amount\s+(\d+),\s*issued\s+(\d+)`)

// LMX parses `lmxendutil -licstat -host <host> -port <port>` output into a
// map of every feature mentioned, keyed by feature name.
func LMX(output []byte) map[string]FeatureUsage {
	result := make(map[string]FeatureUsage)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		match := lmxLine.FindSubmatch(scanner.Bytes())
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
