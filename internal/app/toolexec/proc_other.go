//go:build !unix

package toolexec

import "os/exec"

// configureProcessGroup falls back to killing only the direct child.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return cmd.Process.Kill()
	}
}
