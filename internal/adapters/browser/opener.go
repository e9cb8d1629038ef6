package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Opener implements ports.PageOpener against a site root such as the
// preview server or the deployed base URL
type Opener struct {
	root *url.URL
	run  func(cmd *exec.Cmd) error
}

// NewOpener creates an opener for pages below siteURL
func NewOpener(siteURL string) (*Opener, error) {
	u, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", siteURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("site URL must be http or https: %q", siteURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("site URL has no host: %q", siteURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	return &Opener{
		root: u,
		run:  (*exec.Cmd).Run,
	}, nil
}

// OpenPath opens a site page in the default browser
func (o *Opener) OpenPath(path string) error {
	pageURL, err := o.BuildURL(path)
	if err != nil {
		return err
	}
	return o.openURL(pageURL)
}

// BuildURL resolves a site-relative path against the site root
func (o *Opener) BuildURL(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("page path must start with /: %q", path)
	}
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("page path must not leave the site: %q", path)
	}

	u := *o.root
	u.Path = o.root.Path + path
	return u.String(), nil
}

func (o *Opener) openURL(pageURL string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", pageURL)
	case "linux":
		cmd = exec.Command("xdg-open", pageURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", pageURL)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return o.run(cmd)
}
