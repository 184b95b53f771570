package navigation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/i474232898/neersanchay/internal/estimate"
	"github.com/i474232898/neersanchay/internal/geolocation"
)

var (
	ErrSubmissionInFlight = errors.New("an assessment is already being calculated")
	ErrLocateInFlight     = errors.New("a location lookup is already running")
	ErrInvalidTransition  = errors.New("operation not allowed on the current screen")
)

// Ticket identifies an asynchronous operation. A ticket issued before a
// sign-out no longer matches and its completion is ignored.
type Ticket uint64

// Options tune the controller. Zero values fall back to defaults.
type Options struct {
	StatusDismissAfter         time.Duration
	RedirectStatusDismissAfter time.Duration
	Now                        func() time.Time
	NewID                      func() string
}

const (
	DefaultStatusDismissAfter         = 2 * time.Second
	DefaultRedirectStatusDismissAfter = 500 * time.Millisecond
)

// Controller owns the current screen and the session. It is not safe for
// concurrent use; callers serialize access.
type Controller struct {
	opts Options

	screen     Screen
	session    Session
	form       estimate.Input
	status     *Status
	submitting bool
	locating   bool
	generation uint64
}

// NewController returns a controller on the landing screen with opts defaulted.
func NewController(opts Options) *Controller {
	if opts.StatusDismissAfter <= 0 {
		opts.StatusDismissAfter = DefaultStatusDismissAfter
	}
	if opts.RedirectStatusDismissAfter <= 0 {
		opts.RedirectStatusDismissAfter = DefaultRedirectStatusDismissAfter
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Controller{opts: opts, screen: ScreenLanding}
}

// Screen is the screen currently shown.
func (c *Controller) Screen() Screen {
	return c.screen
}

// Session returns the signed-in user and the latest assessment.
func (c *Controller) Session() Session {
	return c.session
}

// Navigate moves to s. Unknown screens land on the landing page.
func (c *Controller) Navigate(s Screen) Screen {
	if !s.Known() {
		s = ScreenLanding
	}
	if s != c.screen {
		c.status = nil
	}
	c.screen = s
	return s
}

// SignIn checks creds, starts a session and opens the dashboard.
func (c *Controller) SignIn(creds SignInCredentials) (*User, error) {
	creds = creds.normalize()
	if err := checkCredentials(creds); err != nil {
		return nil, err
	}
	u := newUser(c.opts.NewID(), "", creds.Email, "")
	c.session.User = u
	c.Navigate(ScreenDashboard)
	return u, nil
}

// SignUp registers a user from creds and opens the dashboard.
func (c *Controller) SignUp(creds SignUpCredentials) (*User, error) {
	creds = creds.normalize()
	if err := checkCredentials(creds); err != nil {
		return nil, err
	}
	u := newUser(c.opts.NewID(), creds.Name, creds.Email, creds.Phone)
	c.session.User = u
	c.Navigate(ScreenDashboard)
	return u, nil
}

// SignOut forgets the user and the assessment and returns to landing.
func (c *Controller) SignOut() {
	c.Reset()
}

// Reset puts the controller back into its initial state, as a page reload
// would. Operations still running are orphaned.
func (c *Controller) Reset() {
	c.screen = ScreenLanding
	c.session = Session{}
	c.form = estimate.Input{}
	c.status = nil
	c.submitting = false
	c.locating = false
	c.generation++
}

// BeginSubmission validates the form and marks a calculation as running.
// The returned input is normalized and ready for the engine. A rejected
// input leaves the stored form as it was.
func (c *Controller) BeginSubmission(in estimate.Input) (Ticket, estimate.Input, error) {
	if c.screen != ScreenDashboard {
		return 0, in, ErrInvalidTransition
	}
	if c.submitting {
		return 0, in, ErrSubmissionInFlight
	}

	in = in.Normalize()
	if in.Name == "" {
		in.Name = c.userName()
	}
	if err := in.Validate(); err != nil {
		c.status = blocking(MsgFillRequired)
		return 0, in, err
	}
	c.form = in

	c.submitting = true
	c.status = progress(MsgCalculating)
	return Ticket(c.generation), in, nil
}

// CompleteSubmission records the result and shows the results screen. It
// reports false when the ticket is stale.
func (c *Controller) CompleteSubmission(t Ticket, in estimate.Input, res estimate.Result) bool {
	if !c.submitting || uint64(t) != c.generation {
		return false
	}
	now := c.opts.Now()
	c.submitting = false
	c.session.Assessment = &Assessment{Input: in, Result: res, CompletedAt: now}
	c.form = in
	c.screen = ScreenResults
	c.status = transient(MsgRedirecting, now, c.opts.RedirectStatusDismissAfter)
	return true
}

// EditInputs returns from results to the form, keeping the last input.
func (c *Controller) EditInputs() error {
	if c.screen != ScreenResults {
		return ErrInvalidTransition
	}
	if a := c.session.Assessment; a != nil {
		c.form = a.Input
	}
	c.Navigate(ScreenDashboard)
	return nil
}

// BeginLocate starts a location lookup; only one may run at a time.
func (c *Controller) BeginLocate() (Ticket, error) {
	if c.locating {
		return 0, ErrLocateInFlight
	}
	c.locating = true
	c.status = progress(MsgLocating)
	return Ticket(c.generation), nil
}

// CompleteLocate writes the position into the form's location field.
func (c *Controller) CompleteLocate(t Ticket, p geolocation.Position) bool {
	if !c.locating || uint64(t) != c.generation {
		return false
	}
	c.locating = false
	c.form.Location = p.String()
	c.status = transient(MsgLocated, c.opts.Now(), c.opts.StatusDismissAfter)
	return true
}

// FailLocate reports a failed lookup. The form is left untouched.
func (c *Controller) FailLocate(t Ticket, err error) bool {
	if !c.locating || uint64(t) != c.generation {
		return false
	}
	c.locating = false
	msg := MsgLocateFailed
	if errors.Is(err, geolocation.ErrUnsupported) {
		msg = MsgLocateNoSupport
	}
	c.status = transient(msg, c.opts.Now(), c.opts.StatusDismissAfter)
	return true
}

// Status returns the visible status message, or nil.
func (c *Controller) Status(now time.Time) *Status {
	if !c.status.Active(now) {
		return nil
	}
	s := *c.status
	return &s
}

// ExpireStatus drops a transient message whose time has passed.
func (c *Controller) ExpireStatus(now time.Time) bool {
	if c.status != nil && !c.status.Active(now) {
		c.status = nil
		return true
	}
	return false
}

// Busy reports whether a submission or lookup is running.
func (c *Controller) Busy() bool {
	return c.submitting || c.locating
}

// View is a render snapshot of the controller.
type View struct {
	Screen     Screen         `json:"screen"`
	User       *User          `json:"user,omitempty"`
	Form       estimate.Input `json:"form"`
	Assessment *Assessment    `json:"assessment,omitempty"`
	Status     *Status        `json:"status,omitempty"`
	Submitting bool           `json:"submitting"`
	Locating   bool           `json:"locating"`
}

// View returns a copy of the state needed to render the current screen.
func (c *Controller) View(now time.Time) View {
	v := View{
		Screen:     c.screen,
		Form:       c.form,
		Status:     c.Status(now),
		Submitting: c.submitting,
		Locating:   c.locating,
	}
	if c.session.User != nil {
		u := *c.session.User
		v.User = &u
	}
	if c.session.Assessment != nil {
		a := *c.session.Assessment
		v.Assessment = &a
	}
	if v.Form.Name == "" && v.User != nil {
		v.Form.Name = v.User.Name
	}
	return v
}

func (c *Controller) userName() string {
	if c.session.User != nil && c.session.User.Name != "" {
		return c.session.User.Name
	}
	return DefaultUserName
}
