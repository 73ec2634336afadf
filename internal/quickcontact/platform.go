package quickcontact

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	contacterrors "github.com/prestigia-agency/contact/internal/errors"
	"github.com/prestigia-agency/contact/internal/validation"
)

// Headless has no browsing surface. Every action is a no-op.
type Headless struct{}

func (Headless) HasBrowsingSurface() bool { return false }

func (Headless) Navigate(context.Context, string) error { return nil }

func (Headless) Open(context.Context, string, string) error { return nil }

// Desktop hands URLs to the operating system's default handler.
type Desktop struct {
	// GOOS defaults to runtime.GOOS.
	GOOS string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Start runs the launcher; defaults to starting the command without
	// waiting for it.
	Start func(cmd *exec.Cmd) error
}

func (d Desktop) goos() string {
	if d.GOOS != "" {
		return d.GOOS
	}
	return runtime.GOOS
}

func (d Desktop) getenv(key string) string {
	if d.Getenv != nil {
		return d.Getenv(key)
	}
	return os.Getenv(key)
}

// HasBrowsingSurface reports whether a launcher exists for this OS and, on
// X11/Wayland systems, whether a display session is available.
func (d Desktop) HasBrowsingSurface() bool {
	cmd, err := d.command(context.Background(), "about:blank")
	if err != nil {
		return false
	}
	if d.Start == nil && cmd.Err != nil {
		return false
	}
	switch d.goos() {
	case "darwin", "windows":
		return true
	default:
		return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != ""
	}
}

// Navigate opens url with the default handler.
func (d Desktop) Navigate(ctx context.Context, url string) error {
	return d.launch(ctx, url)
}

// Open opens url with the default handler. The desktop shell always opens a
// new context, so features are not used.
func (d Desktop) Open(ctx context.Context, url, _ string) error {
	return d.launch(ctx, url)
}

func (d Desktop) launch(ctx context.Context, url string) error {
	if err := validation.ValidateLaunchURL(url); err != nil {
		return contacterrors.NewPlatformError(contacterrors.ErrCodeUnsafeURL,
			"refusing to launch url", err)
	}
	cmd, err := d.command(ctx, url)
	if err != nil {
		return err
	}
	start := d.Start
	if start == nil {
		start = func(c *exec.Cmd) error { return c.Start() }
	}
	if err := start(cmd); err != nil {
		return contacterrors.NewPlatformError(contacterrors.ErrCodeLaunchFailed,
			fmt.Sprintf("failed to open %s", url), err)
	}

	return nil
}

func (d Desktop) command(ctx context.Context, url string) (*exec.Cmd, error) {
	switch d.goos() {
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.CommandContext(ctx, "xdg-open", url), nil
	case "darwin":
		return exec.CommandContext(ctx, "open", url), nil
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, contacterrors.NewPlatformError(contacterrors.ErrCodeUnsupportedPlatform,
			"no url launcher for "+d.goos(), nil)
	}
}

// Redirect uses an HTTP response as the browsing surface: the visitor's
// browser follows a redirect to the target. Opening in a new context is up to
// the link that led here (target="_blank").
type Redirect struct {
	W http.ResponseWriter
	R *http.Request
}

// HasBrowsingSurface is true when there is a response to write to.
func (r Redirect) HasBrowsingSurface() bool {
	return r.W != nil && r.R != nil
}

// Navigate redirects to url.
func (r Redirect) Navigate(_ context.Context, url string) error {
	http.Redirect(r.W, r.R, url, http.StatusFound)
	return nil
}

// Open redirects to url and asks the browser not to leak the referrer, which
// matches noopener,noreferrer.
func (r Redirect) Open(_ context.Context, url, _ string) error {
	r.W.Header().Set("Referrer-Policy", "no-referrer")
	http.Redirect(r.W, r.R, url, http.StatusFound)
	return nil
}
