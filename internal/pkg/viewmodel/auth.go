package viewmodel

// Auth backs the login and register pages.
type Auth struct {
	Layout
	Next string
}
