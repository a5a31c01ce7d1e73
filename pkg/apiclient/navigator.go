package apiclient

import "sync"

// Paths treated as the sign-in page
const (
	LoginPath  = "/login"
	SignInPath = "/signin"
)

// Navigator is where the client sends the user after a 401
type Navigator interface {
	// Location is the current path
	Location() string
	// Navigate moves to path; repeating it must be harmless
	Navigate(path string)
}

// NopNavigator never moves
type NopNavigator struct{}

func (NopNavigator) Location() string { return "" }
func (NopNavigator) Navigate(string)  {}

// PathNavigator tracks a current path and notifies OnNavigate on every move
type PathNavigator struct {
	mu         sync.Mutex
	path       string
	OnNavigate func(path string)
}

// NewPathNavigator starts at path
func NewPathNavigator(path string, onNavigate func(string)) *PathNavigator {
	return &PathNavigator{path: path, OnNavigate: onNavigate}
}

func (n *PathNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *PathNavigator) Navigate(path string) {
	n.mu.Lock()
	n.path = path
	n.mu.Unlock()
	if n.OnNavigate != nil {
		n.OnNavigate(path)
	}
}

func isSignInPath(path string) bool {
	return path == LoginPath || path == SignInPath
}
