package domain

// Span names emitted by the transform pipeline.
const (
	SpanTransform     = "transform"
	SpanEvaluate      = "evaluate"
	SpanResolveConfig = "resolve-config"
)

// Span attribute keys.
const (
	AttrFile     = "file"
	AttrDecision = "decision"
	AttrConfig   = "config"
)

// ParseDecision converts a string, such as a span attribute, back into a Decision.
// It reports false for unknown values.
func ParseDecision(s string) (Decision, bool) {
	for _, d := range Decisions {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}
