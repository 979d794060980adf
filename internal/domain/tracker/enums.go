package tracker

const (
	StatusOpen     = "OPEN"
	StatusResolved = "RESOLVED"
	StatusClosed   = "CLOSED"
)

const (
	ResolutionUnresolved = "UNRESOLVED"
	ResolutionFixed      = "FIXED"
	ResolutionWontFix    = "WONT_FIX"
	ResolutionInvalid    = "INVALID"
)

var statusOrder = []string{StatusOpen, StatusResolved, StatusClosed}

var resolutionOrder = []string{
	ResolutionUnresolved,
	ResolutionFixed,
	ResolutionWontFix,
	ResolutionInvalid,
}

func Statuses() []string {
	out := make([]string, len(statusOrder))
	copy(out, statusOrder)
	return out
}

func Resolutions() []string {
	out := make([]string, len(resolutionOrder))
	copy(out, resolutionOrder)
	return out
}

func ValidStatus(s string) bool {
	for _, known := range statusOrder {
		if s == known {
			return true
		}
	}
	return false
}

func ValidResolution(s string) bool {
	for _, known := range resolutionOrder {
		if s == known {
			return true
		}
	}
	return false
}
