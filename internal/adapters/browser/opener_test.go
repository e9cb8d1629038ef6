package browser

import (
	"os/exec"
	"testing"
)

func TestNewOpener_RejectsInvalidRoots(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		wantErr bool
	}{
		{name: "preview server", siteURL: "http://localhost:8080"},
		{name: "base url with trailing slash", siteURL: "https://example.com/"},
		{name: "no scheme", siteURL: "example.com", wantErr: true},
		{name: "ftp scheme", siteURL: "ftp://example.com", wantErr: true},
		{name: "empty", siteURL: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOpener(tt.siteURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOpener(%q) error = %v, wantErr %v", tt.siteURL, err, tt.wantErr)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		path    string
		wantURL string
		wantErr bool
	}{
		{
			name:    "article on preview server",
			siteURL: "http://localhost:8080",
			path:    "/heat-pump-sizing/",
			wantURL: "http://localhost:8080/heat-pump-sizing/",
		},
		{
			name:    "hub below a base path",
			siteURL: "https://example.com/guide/",
			path:    "/topics/heat-pumps/",
			wantURL: "https://example.com/guide/topics/heat-pumps/",
		},
		{
			name:    "query dropped from root",
			siteURL: "https://example.com/?ref=x",
			path:    "/",
			wantURL: "https://example.com/",
		},
		{
			name:    "relative path",
			siteURL: "http://localhost:8080",
			path:    "heat-pump-sizing/",
			wantErr: true,
		},
		{
			name:    "path leaving the site",
			siteURL: "https://example.com/guide",
			path:    "/../admin/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener, err := NewOpener(tt.siteURL)
			if err != nil {
				t.Fatal(err)
			}
			got, err := opener.BuildURL(tt.path)

			if (err != nil) != tt.wantErr {
				t.Errorf("BuildURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.wantURL {
				t.Errorf("BuildURL() = %q, want %q", got, tt.wantURL)
			}
		})
	}
}

func TestOpenPath_RunsPlatformCommand(t *testing.T) {
	opener, err := NewOpener("http://localhost:8080")
	if err != nil {
		t.Fatal(err)
	}

	var args []string
	opener.run = func(cmd *exec.Cmd) error {
		args = cmd.Args
		return nil
	}

	if err := opener.OpenPath("/hp-guide/"); err != nil {
		t.Skipf("platform not supported: %v", err)
	}
	if len(args) == 0 || args[len(args)-1] != "http://localhost:8080/hp-guide/" {
		t.Errorf("expected URL as last argument, got %v", args)
	}
}
