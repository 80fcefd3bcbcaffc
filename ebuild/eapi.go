package ebuild

import (
	"bufio"
	"bytes"
	"regexp"
)

// knownEAPIs in ancestry order: each EAPI inherits from all earlier ones.
var knownEAPIs = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}

// Ancestors returns the EAPIs the given EAPI inherits from, excluding
// itself, or nil for unrecognized EAPIs.
func Ancestors(eapi string) []string {
	for i, known := range knownEAPIs {
		if known == eapi {
			return knownEAPIs[:i:i]
		}
	}
	return nil
}

var eapiAssignRe = regexp.MustCompile(`^EAPI=["']?([A-Za-z0-9+_.-]+)["']?`)

// parseEAPI extracts the declared EAPI from definition file content.
// Files without an EAPI assignment default to EAPI 0.
func parseEAPI(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if m := eapiAssignRe.FindSubmatch(scanner.Bytes()); m != nil {
			return string(m[1])
		}
	}
	return "0"
}
