package project

import (
	"fmt"
	"strconv"
	"strings"
)

const codePrefix = "TP"

// NextCode computes the next project code for a year: TP<year>-<seq:3>.
// The sequence is max(existing)+offset so bulk creation can pre-reserve a
// run of codes before any of them is persisted.
func NextCode(projects []Project, year string, offset int) string {
	if offset < 1 {
		offset = 1
	}
	return fmt.Sprintf("%s%s-%03d", codePrefix, year, maxSequence(projects, year)+offset)
}

// NextCodes pre-reserves n sequential codes for a bulk batch.
func NextCodes(projects []Project, year string, n int) []string {
	base := maxSequence(projects, year)
	codes := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		codes = append(codes, fmt.Sprintf("%s%s-%03d", codePrefix, year, base+i))
	}
	return codes
}

func maxSequence(projects []Project, year string) int {
	prefix := codePrefix + year + "-"
	maxSeq := 0
	for _, p := range projects {
		if p.Year != year || !strings.HasPrefix(p.Code, prefix) {
			continue
		}
		parts := strings.Split(p.Code, "-")
		if len(parts) != 2 {
			continue
		}
		seq, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq
}
