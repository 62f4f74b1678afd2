package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	openFunc func(url string) error
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithBrowserOpener overrides how the editor URL is opened on startup.
// Used by tests; the default is the platform browser.
func WithBrowserOpener(fn func(url string) error) Option {
	return func(a *application) {
		a.openFunc = fn
	}
}
