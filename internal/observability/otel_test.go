package observability

import (
	"strings"
	"testing"
)

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 0.25, want: "TraceIDRatioBased{0.25}"},
		{ratio: 1, want: "AlwaysOnSampler"},
		{ratio: 0, want: "AlwaysOnSampler"},
		{ratio: 7, want: "AlwaysOnSampler"},
	}

	for _, tt := range tests {
		got := sampler(tt.ratio).Description()

		if !strings.HasPrefix(got, "ParentBased{root:"+tt.want) {
			t.Fatalf("ratio %v: got %q, want root %q", tt.ratio, got, tt.want)
		}
	}
}
