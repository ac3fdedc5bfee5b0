//go:build !windows

package converter

import "os/exec"

func configureCommand(*exec.Cmd) {}
