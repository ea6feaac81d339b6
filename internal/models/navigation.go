package models

// AuthState is what the navigation bar knows about the visitor's session
type AuthState struct {
	Authenticated bool
	// Loading is true while the check-auth request has not been answered yet
	Loading bool
}

// MenuState is derived from the request URL on every render
type MenuState struct {
	Open      bool
	ActiveTab string
}
