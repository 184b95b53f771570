package navigation

import "strings"

// Screen is one of the five views the application renders.
type Screen string

const (
	ScreenLanding   Screen = "landing"
	ScreenSignIn    Screen = "signin"
	ScreenSignUp    Screen = "signup"
	ScreenDashboard Screen = "dashboard"
	ScreenResults   Screen = "results"
)

var screens = []Screen{ScreenLanding, ScreenSignIn, ScreenSignUp, ScreenDashboard, ScreenResults}

// Screens returns every known screen.
func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}

// Known reports whether s names one of the five screens.
func (s Screen) Known() bool {
	for _, k := range screens {
		if s == k {
			return true
		}
	}
	return false
}

// ParseScreen resolves a screen identifier. Anything unrecognized maps to
// the landing screen.
func ParseScreen(id string) Screen {
	s := Screen(strings.ToLower(strings.TrimSpace(id)))
	if s.Known() {
		return s
	}
	return ScreenLanding
}
