package vecdb

import (
	"fmt"
	"strings"

	"github.com/hupe1980/vecdb/metric"
)

// Stats is a point-in-time summary of a DB.
type Stats struct {
	Size          int
	Dimension     int
	MaxVectors    int
	Metric        metric.Metric
	IndexStrategy IndexStrategy

	// MemoryBytes estimates the heap held by stored vectors and ids.
	MemoryBytes int64
}

// String renders the stats as a human-readable block.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vectors:     %d / %d\n", s.Size, s.MaxVectors)
	fmt.Fprintf(&b, "Dimension:   %d\n", s.Dimension)
	fmt.Fprintf(&b, "Metric:      %s\n", s.Metric)
	fmt.Fprintf(&b, "Index:       %s\n", s.IndexStrategy)
	fmt.Fprintf(&b, "Est. memory: %s", humanBytes(s.MemoryBytes))
	return b.String()
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
