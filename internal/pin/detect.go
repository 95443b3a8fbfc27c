package pin

import "strings"

// Strategy selects how tablet-class devices are recognized. Exactly one
// strategy is active at a time, chosen by configuration.
type Strategy string

const (
	StrategyUserAgent  Strategy = "user_agent"
	StrategyScreenSize Strategy = "screen_size"
	StrategyTouch      Strategy = "touch"
	StrategyPersisted  Strategy = "persisted"
	StrategyQuery      Strategy = "query"
)

// DeviceInfo is a snapshot of what the UI knows about the device it runs
// on, gathered once at startup.
type DeviceInfo struct {
	UserAgent     string
	ScreenWidth   int
	ScreenHeight  int
	TouchPoints   int
	PersistedFlag bool // device-store tablet flag
	QueryFlag     bool // ?tablet=1 on the bootstrap URL
}

// Tablet screens: shorter side at least 600 logical pixels, longer side
// small enough to rule out desktop monitors.
const (
	minTabletShortSide = 600
	maxTabletLongSide  = 1600
)

// IsTablet evaluates info under the given strategy. Unknown strategies
// report false rather than guessing.
func IsTablet(strategy Strategy, info DeviceInfo) bool {
	switch strategy {
	case StrategyUserAgent:
		return uaLooksTablet(info.UserAgent)
	case StrategyScreenSize:
		return screenLooksTablet(info.ScreenWidth, info.ScreenHeight)
	case StrategyTouch:
		return info.TouchPoints > 0 && screenLooksTablet(info.ScreenWidth, info.ScreenHeight)
	case StrategyPersisted:
		return info.PersistedFlag
	case StrategyQuery:
		return info.QueryFlag
	default:
		return false
	}
}

func uaLooksTablet(ua string) bool {
	ua = strings.ToLower(ua)
	if strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet") {
		return true
	}
	// Android tablets omit "Mobile" from the UA; phones include it.
	return strings.Contains(ua, "android") && !strings.Contains(ua, "mobile")
}

func screenLooksTablet(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	short, long := w, h
	if short > long {
		short, long = long, short
	}
	return short >= minTabletShortSide && long <= maxTabletLongSide
}
