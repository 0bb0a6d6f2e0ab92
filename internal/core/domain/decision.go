package domain

// Decision is the per-file outcome of the transform pipeline.
type Decision string

const (
	// DecisionSkipExtension means the file is not a .ts or .tsx file.
	DecisionSkipExtension Decision = "skip-extension"
	// DecisionSkipPath means the file is outside the configured source pattern.
	DecisionSkipPath Decision = "skip-path"
	// DecisionSkipNoMetadataFlag means emitDecoratorMetadata is disabled and force is off.
	DecisionSkipNoMetadataFlag Decision = "skip-no-metadata-flag"
	// DecisionSkipNoDecorator means no decorator usage was detected.
	DecisionSkipNoDecorator Decision = "skip-no-decorator"
	// DecisionCompiled means the file was rewritten by the compiler service.
	DecisionCompiled Decision = "compiled"
	// DecisionError means the compiler service rejected the file.
	DecisionError Decision = "error"
)

// Decisions lists every decision in gate order.
var Decisions = []Decision{
	DecisionSkipExtension,
	DecisionSkipPath,
	DecisionSkipNoMetadataFlag,
	DecisionSkipNoDecorator,
	DecisionCompiled,
	DecisionError,
}

// Skipped reports whether the decision leaves the file to the rest of the pipeline.
func (d Decision) Skipped() bool {
	return d != DecisionCompiled
}

// TransformOutput is the rewritten content of a file.
type TransformOutput struct {
	Code string
	// Map is always nil: standalone maps are suppressed in favor of inline maps.
	Map *string
}
