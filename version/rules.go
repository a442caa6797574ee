package version

import "runtime"

type Action string

const (
	Allow    Action = "allow"
	Disallow Action = "disallow"
)

type Rule struct {
	Action   Action          `json:"action"`
	OS       *OSRule         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

type OSRule struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

// Environment is the platform rules are evaluated against. OS uses the
// descriptor vocabulary (windows, osx, linux), Arch is x86, x64, arm64 or arm32.
type Environment struct {
	OS       string
	Arch     string
	Features map[string]bool
}

func CurrentEnvironment() Environment {
	return Environment{OS: osName(runtime.GOOS), Arch: archName(runtime.GOARCH)}
}

func osName(goos string) string {
	switch goos {
	case "darwin":
		return "osx"
	default:
		return goos
	}
}

func archName(goarch string) string {
	switch goarch {
	case "386":
		return "x86"
	case "amd64":
		return "x64"
	case "arm":
		return "arm32"
	default:
		return goarch
	}
}

func (e Environment) PointerWidth() string {
	if e.Arch == "x86" || e.Arch == "arm32" {
		return "32"
	}
	return "64"
}

// Matches reports whether every predicate of the rule holds in env. A
// feature predicate holds only when env declares the same value for it, so
// with no declared features a rule requiring a feature never matches.
func (r Rule) Matches(env Environment) bool {
	if r.OS != nil {
		if r.OS.Name != "" && r.OS.Name != env.OS {
			return false
		}
		if r.OS.Arch != "" && r.OS.Arch != env.Arch {
			return false
		}
	}
	for feature, want := range r.Features {
		if env.Features[feature] != want {
			return false
		}
	}
	return true
}

// Evaluate applies rules in order: the first matching allow or disallow rule
// decides. An empty list includes; a non-empty list with no match excludes.
func Evaluate(rules []Rule, env Environment) bool {
	if len(rules) == 0 {
		return true
	}
	for _, rule := range rules {
		if !rule.Matches(env) {
			continue
		}
		switch rule.Action {
		case Allow:
			return true
		case Disallow:
			return false
		}
	}
	return false
}

func ShouldUseLibrary(lib Library, env Environment) bool {
	return Evaluate(lib.Rules, env)
}
