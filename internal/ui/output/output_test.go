package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/ui/output"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(), "NO_COLOR should force Ascii profile")

	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	assert.NotNil(t, out)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestPrinter_Decision(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	p := output.NewPrinter(&buf)

	p.Decision("src/a.ts", domain.DecisionCompiled)
	p.Decision("src/b.ts", domain.DecisionSkipNoDecorator)

	assert.Equal(t,
		"✓ compiled               src/a.ts\n"+
			"· skip-no-decorator      src/b.ts\n",
		buf.String())
}

func TestPrinter_Summary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	p := output.NewPrinter(&buf)

	p.Summary(map[domain.Decision]int{
		domain.DecisionCompiled:        2,
		domain.DecisionSkipNoDecorator: 3,
	})

	assert.Equal(t, "5 files, 3 skip-no-decorator, 2 compiled\n", buf.String())
}
