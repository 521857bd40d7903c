package standings

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/pitwall-go/testsupport/basedata"
)

func TestPrintSession(t *testing.T) {
	s := basedata.SampleDuel()
	var buf bytes.Buffer
	printSession(&buf, &s)
	out := buf.String()
	assert.Contains(t, out, "duel session")
	assert.Contains(t, out, "Player 1")
	assert.Contains(t, out, "Bahrain Grand Prix")
}
