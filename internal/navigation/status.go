package navigation

import "time"

// StatusKind says how a status message should be presented.
type StatusKind string

const (
	// StatusBlocking stays until the next action replaces it.
	StatusBlocking StatusKind = "blocking"
	// StatusProgress is shown while an operation is running.
	StatusProgress StatusKind = "progress"
	// StatusTransient dismisses itself at ExpiresAt.
	StatusTransient StatusKind = "transient"
)

// Status is the single message line of the current screen.
type Status struct {
	Message   string     `json:"message"`
	Kind      StatusKind `json:"kind"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Active reports whether the message is still visible at now.
func (s *Status) Active(now time.Time) bool {
	if s == nil || s.Message == "" {
		return false
	}
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}

const (
	MsgFillRequired    = "Please fill in all required fields"
	MsgCalculating     = "Calculating potential..."
	MsgRedirecting     = "Done! Redirecting to results..."
	MsgLocating        = "Getting location..."
	MsgLocated         = "Location acquired!"
	MsgLocateFailed    = "Could not get location."
	MsgLocateNoSupport = "Geolocation not supported by your browser."
)

func blocking(msg string) *Status {
	return &Status{Message: msg, Kind: StatusBlocking}
}

func progress(msg string) *Status {
	return &Status{Message: msg, Kind: StatusProgress}
}

func transient(msg string, at time.Time, ttl time.Duration) *Status {
	exp := at.Add(ttl)
	return &Status{Message: msg, Kind: StatusTransient, ExpiresAt: &exp}
}
