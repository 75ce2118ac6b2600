package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// Launcher implements the BrowserLauncher interface
type Launcher struct {
	browsers []Browser
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// Browser represents a browser configuration
type Browser struct {
	Name    string
	Command string
	Args    func(url string) []string
}

// NewLauncher creates a launcher for the browsers of the current platform
func NewLauncher() *Launcher {
	return &Launcher{
		browsers: detectBrowsers(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Launch opens a report URL in the first browser found in PATH
func (l *Launcher) Launch(rawURL string) error {
	target, err := url.Parse(rawURL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	browser, err := l.selectBrowser()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	if err := l.start(browser.Command, browser.Args(target.String())...); err != nil {
		return fmt.Errorf("launching %s: %w", browser.Name, err)
	}
	return nil
}

// Detect returns the name of the browser Launch would use
func (l *Launcher) Detect() (string, error) {
	browser, err := l.selectBrowser()
	if err != nil {
		return "", err
	}
	return browser.Name, nil
}

// selectBrowser returns the first browser whose executable is in PATH
func (l *Launcher) selectBrowser() (*Browser, error) {
	if len(l.browsers) == 0 {
		return nil, errors.New("no browsers known for this platform")
	}

	for _, candidate := range l.browsers {
		if _, err := l.lookPath(candidate.Command); err == nil {
			return &candidate, nil
		}
	}

	return nil, errors.New("no supported browsers found on this system")
}

// startDetached starts a command without waiting for it to exit
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 - command comes from the fixed browser list

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func urlOnly(u string) []string {
	return []string{u}
}

// detectBrowsers lists the browsers tried on a platform, in order of preference
func detectBrowsers(goos string) []Browser {
	switch goos {
	case "darwin":
		return []Browser{
			{Name: "Default", Command: "open", Args: urlOnly},
		}
	case "linux", "freebsd", "openbsd":
		return []Browser{
			{Name: "xdg-open", Command: "xdg-open", Args: urlOnly},
			{Name: "Chrome", Command: "google-chrome", Args: urlOnly},
			{Name: "Firefox", Command: "firefox", Args: urlOnly},
		}
	case "windows":
		return []Browser{
			{
				Name:    "Default",
				Command: "rundll32",
				Args: func(url string) []string {
					return []string{"url.dll,FileProtocolHandler", url}
				},
			},
		}
	default:
		return nil
	}
}

// Ensure Launcher implements ports.BrowserLauncher
var _ ports.BrowserLauncher = (*Launcher)(nil)
