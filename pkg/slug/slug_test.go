package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_BasicASCII(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Toggle Clamps", "toggle-clamps"},
		{"Handwheels", "handwheels"},
		{"Vibration Mounts", "vibration-mounts"},
		{"ALL UPPER CASE", "all-upper-case"},
		{"Clamptek", "clamptek"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_WhitespaceHandling(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"multiple spaces", "control   panel", "control-panel"},
		{"tabs and spaces", "control\t \tpanel", "control-panel"},
		{"newline", "control\npanel", "control-panel"},
		{"leading and trailing", "  panel  ", "-panel-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_PunctuationIsKept(t *testing.T) {
	assert.Equal(t, "push-pull-clamps", Generate("Push-Pull Clamps"))
	assert.Equal(t, "locks,-hinges-&-keys", Generate("Locks, Hinges & Keys"))
}

func TestGenerate_EdgeCases(t *testing.T) {
	assert.Equal(t, "", Generate(""))
	assert.Equal(t, "-", Generate("   "))
	assert.Equal(t, "a", Generate("A"))
}

func TestGenerate_SpaceClass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no-break space", "Toggle\u00a0Clamps", "toggle-clamps"},
		{"ideographic space", "Toggle\u3000Clamps", "toggle-clamps"},
		{"byte order mark", "Toggle\uFEFFClamps", "toggle-clamps"},
		{"next line is kept", "Toggle\u0085Clamps", "toggle\u0085clamps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_IdempotentOnTokens(t *testing.T) {
	for _, name := range []string{"Toggle Clamps", "Heavy Duty  Clamp", "Swiftin", "Control\tPanel"} {
		once := Generate(name)
		assert.Equal(t, once, Generate(once), "re-slugifying %q changed the token", name)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	assert.Equal(t, Generate("Rubber Buffers"), Generate("Rubber Buffers"))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Clamptek", "clamptek"))
	assert.True(t, Matches("Clamptek", "CLAMPTEK"))
	assert.False(t, Matches("Clamptek", "clamp-tek"))
	assert.True(t, Matches("Toggle Clamps", "toggle-clamps"))
	assert.False(t, Matches("Toggle Clamps", "toggle"))
}

func TestMatches_CollidingNamesAreIndistinguishable(t *testing.T) {
	assert.True(t, Matches("Toggle Clamps", "toggle-clamps"))
	assert.True(t, Matches("toggle  clamps", "toggle-clamps"))
}
