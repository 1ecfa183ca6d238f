package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromName(t *testing.T) {
	tests := map[string]Kind{
		"sound/jump.wave":   KindWave,
		"title.image":       KindImage,
		"patricia.anim":     KindAnim,
		"font.wave.image":   KindWave,
		"readme.txt":        KindUnknown,
		"weird.animation.x": KindAnim,
	}
	for name, kind := range tests {
		assert.Equal(t, kind, KindFromName(name), name)
	}
	assert.Equal(t, ".wav", KindWave.OutputExtension())
	assert.Equal(t, ".png", KindAnim.OutputExtension())
	assert.Equal(t, "", KindUnknown.OutputExtension())
}
