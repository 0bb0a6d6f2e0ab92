// Package detector classifies source text by whether it uses decorators.
//
// The classification is a heuristic on stripped source text, not a parse.
// It is biased toward false positives: a false positive costs one extra
// compile of a file, a false negative silently drops decorator metadata.
package detector

import (
	"time"

	"github.com/dlclark/regexp2"
	"go.trai.ch/tsmeta/internal/core/ports"
)

// decoratorPattern matches an @-prefixed identifier with optional member or
// index suffixes that is not preceded by an opening parenthesis and a quote,
// is not followed by a semicolon, and is followed by a call parenthesis or
// whitespace. Look-around needs a backtracking engine.
const decoratorPattern = `((?<![(\s]\s*['"])@\w[.[\]\w\d]*\s*(?![;])[((?=\s)])`

// matchTimeout bounds a single match so pathological input cannot stall a build.
const matchTimeout = 2 * time.Second

var finder = compile()

func compile() *regexp2.Regexp {
	re := regexp2.MustCompile(decoratorPattern, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

// Detector reports whether source text contains a decorator usage.
type Detector struct {
	stripper ports.Stripper
}

// New creates a Detector that preprocesses text with stripper.
// A nil stripper selects the built-in Stripper.
func New(stripper ports.Stripper) *Detector {
	if stripper == nil {
		stripper = Stripper{}
	}
	return &Detector{stripper: stripper}
}

// Detect returns true on the first decorator usage outside comments and literals.
func (d *Detector) Detect(src string) bool {
	ok, err := finder.MatchString(d.stripper.Strip(src))
	if err != nil {
		// Timed out: compiling is the safe answer.
		return true
	}
	return ok
}

// Detect classifies src with the built-in Stripper.
func Detect(src string) bool {
	return New(nil).Detect(src)
}
