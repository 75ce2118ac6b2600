package ports

// BrowserLauncher opens a served report in a desktop browser
type BrowserLauncher interface {
	// Launch opens url in the first available browser
	Launch(url string) error
	// Detect returns the name of the browser Launch would use
	Detect() (string, error)
}
