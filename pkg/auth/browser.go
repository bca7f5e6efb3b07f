package auth

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// BrowserEnabled reports whether automatic browser opening is allowed.
// Setting REPOGEN_NO_BROWSER=true suppresses it.
func BrowserEnabled() bool {
	return !strings.EqualFold(os.Getenv("REPOGEN_NO_BROWSER"), "true")
}

// OpenBrowser launches the system browser at url. Failure must never abort an
// authentication flow; callers only use it to suppress the "opened
// automatically" confirmation.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
