package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
)

// oLicenseLine matches olstat's per-feature count line, e.g.
// "mppdyna: 100 total, 37 used".
var oLicenseLine = regexp.MustCompile(`^(\S+):\s*(\d+)\s*total,\s*(\d+)\s*used`)

// OLicense parses `olstat -u <port>@<host>` output into a map of every
// feature mentioned, keyed by feature name.
func OLicense(output []byte) map[string]FeatureUsage {
	result := make(map[string]FeatureUsage)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		match := oLicenseLine.FindSubmatch(scanner.Bytes())
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
