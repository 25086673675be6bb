package consoles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixStack(t *testing.T) {
	t.Parallel()

	c := &stdoutConsole{}

	c.PushPrefix("a.prw: ")
	c.PushPrefix("%v: ", "rule")
	assert.Equal(t, []string{"a.prw: ", "rule: "}, c.prefixes)

	c.PopPrefix()
	assert.Equal(t, []string{"a.prw: "}, c.prefixes)

	c.PopPrefix()
	assert.Empty(t, c.prefixes)
}
