package shared

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions orders two versions. Semantic versions are compared with
// semver precedence. Four-part assembly versions such as "4.0.1.0" do not
// parse as semver and are compared numerically per component; anything else
// falls back to a case-insensitive string comparison.
func CompareVersions(a string, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	if na, ok := numericParts(a); ok {
		if nb, ok := numericParts(b); ok {
			return compareParts(na, nb)
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// IsSemanticVersion reports whether value parses as a semantic version.
func IsSemanticVersion(value string) bool {
	_, err := semver.NewVersion(value)
	return err == nil
}

func numericParts(value string) ([]int, bool) {
	fields := strings.Split(strings.TrimSpace(value), ".")
	parts := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, false
		}
		parts = append(parts, n)
	}
	return parts, len(parts) > 0
}

func compareParts(a []int, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}
