package execute

import (
	"fmt"
	"net/url"
	"os/exec"
	"syscall"
)

// OpenLink hands link to opener (xdg-open or similar) in its own session so
// the browser outlives us. Only absolute http and https links are accepted.
func OpenLink(opener, link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", link, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("refusing to open link %q: not an http(s) URL", link)
	}

	cmd := exec.Command(opener, u.String())
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
