package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var linux64 = Environment{OS: "linux", Arch: "x64"}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		want  bool
	}{
		{"no rules", nil, true},
		{"empty rules", []Rule{}, true},
		{"allow current os", []Rule{{Action: Allow, OS: &OSRule{Name: "linux"}}}, true},
		{"allow other os", []Rule{{Action: Allow, OS: &OSRule{Name: "windows"}}}, false},
		{"allow all", []Rule{{Action: Allow}}, true},
		{
			"disallow current os short-circuits",
			[]Rule{
				{Action: Disallow, OS: &OSRule{Name: "linux"}},
				{Action: Allow},
			},
			false,
		},
		{
			"allow all then disallow osx",
			[]Rule{
				{Action: Allow},
				{Action: Disallow, OS: &OSRule{Name: "osx"}},
			},
			true,
		},
		{"arch mismatch", []Rule{{Action: Allow, OS: &OSRule{Name: "linux", Arch: "x86"}}}, false},
		{"arch match", []Rule{{Action: Allow, OS: &OSRule{Arch: "x64"}}}, true},
		{"required feature", []Rule{{Action: Allow, Features: map[string]bool{"is_demo_user": true}}}, false},
		{"feature required false", []Rule{{Action: Allow, Features: map[string]bool{"has_custom_resolution": false}}}, true},
		{"unknown action ignored", []Rule{{Action: "maybe"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.rules, linux64))
		})
	}
}

func TestEvaluateDeclaredFeature(t *testing.T) {
	env := linux64
	env.Features = map[string]bool{"has_custom_resolution": true}
	rules := []Rule{{Action: Allow, Features: map[string]bool{"has_custom_resolution": true}}}
	assert.True(t, Evaluate(rules, env))
}

func TestCurrentEnvironmentNames(t *testing.T) {
	assert.Equal(t, "osx", osName("darwin"))
	assert.Equal(t, "windows", osName("windows"))
	assert.Equal(t, "x64", archName("amd64"))
	assert.Equal(t, "x86", archName("386"))
	assert.Equal(t, "arm64", archName("arm64"))
	assert.Equal(t, "32", Environment{Arch: "x86"}.PointerWidth())
	assert.Equal(t, "64", Environment{Arch: "arm64"}.PointerWidth())
}
