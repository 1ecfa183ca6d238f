package ds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpJSON(t *testing.T) {
	type Header struct {
		Magic uint32 `json:"magic"`
	}
	assert.Equal(t, `{"magic":3040686795}`, DumpJSON(Header{Magic: 0xB53D32CB}))
	assert.Equal(t, "NaN", DumpJSON(math.NaN()))
}
