package application

// Navigation targets used by the guards and the session manager.
const (
	HomePath      = "/"
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

// Decision is the outcome of a guard check. When Allowed is false,
// RedirectTo names the view the caller should send the client to; the
// guard itself never navigates.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard gates access to protected views based on session state and role.
type Guard struct {
	sessions *SessionManager
}

func NewGuard(sessions *SessionManager) *Guard {
	return &Guard{sessions: sessions}
}

// RequireAuth admits any logged-in user and sends everyone else to login.
func (g *Guard) RequireAuth() Decision {
	if st, _ := g.sessions.State(); st != LoggedIn {
		return Decision{RedirectTo: LoginPath}
	}
	return Decision{Allowed: true}
}

// RequireOwner admits logged-in owners. Unauthenticated callers go to
// login; authenticated non-owners go to the dashboard.
func (g *Guard) RequireOwner() Decision {
	st, u := g.sessions.State()
	if st != LoggedIn {
		return Decision{RedirectTo: LoginPath}
	}
	if !u.IsOwner() {
		return Decision{RedirectTo: DashboardPath}
	}
	return Decision{Allowed: true}
}
