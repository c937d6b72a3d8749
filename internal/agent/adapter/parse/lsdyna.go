package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
)

// lsDynaLine matches lstc_qrun's per-feature summary, e.g.
// "Feature mppdyna      issued:    100   in use:     37".
var lsDynaLine = regexp.MustCompile(`Feature\s+(\S+)\s+issued:\s*(\d+)\s+in use:\s*(\d+)`)

// LSDyna parses `lstc_qrun -s <port>@<host> -R` output into a map of every
// feature mentioned, keyed by feature name.
func LSDyna(output []byte) map[string]FeatureUsage {
	result := make(map[string]FeatureUsage)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		match := lsDynaLine.FindSubmatch(scanner.Bytes())
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
