// Package service manages the pieces that keep vosd running outside
// the applet itself: the systemd user unit that starts it with the
// desktop session, and the udev rule that lets members of the "input"
// group read event devices.
package service

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// UnitName is the systemd user unit installed by Install.
const UnitName = "vosd.service"

// RulePath is the udev rule installed by InstallRule.
const RulePath = "/etc/udev/rules.d/99-vosd.rules"

// Runner executes system management commands (systemctl, udevadm).
// Tests substitute a recorder.
type Runner interface {
	Run(name string, args ...string) error
	Output(name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (ExecRunner) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

// UnitFile renders the systemd user unit. The sleep before start gives
// the desktop environment time to bring up the display server.
func UnitFile(execPath, display string, uid int) string {
	if display == "" {
		display = ":0"
	}
	return fmt.Sprintf(`[Unit]
Description=Volume OSD
After=graphical-session.target

[Service]
Type=simple
ExecStartPre=/bin/sleep 5
ExecStart=%s
Restart=always
RestartSec=5
Environment=DISPLAY=%s
Environment=XDG_RUNTIME_DIR=/run/user/%d

[Install]
WantedBy=default.target
`, execPath, display, uid)
}

// unitDir is the per-user systemd directory, ~/.config/systemd/user.
func unitDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".config", "systemd", "user"), nil
}

// AppletPath locates the vosd binary: next to the current executable
// first, then on PATH.
func AppletPath() (string, error) {
	dir := ""
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	return findApplet(dir, exec.LookPath)
}

func findApplet(exeDir string, look func(string) (string, error)) (string, error) {
	if exeDir != "" {
		candidate := filepath.Join(exeDir, "vosd")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	path, err := look("vosd")
	if err != nil {
		return "", fmt.Errorf("vosd binary not found in %s or on PATH", exeDir)
	}
	return path, nil
}

// Install writes the user unit and enables + starts it. It refuses to
// run as root: the unit belongs in the invoking user's home, not
// /root.
func Install(r Runner) error {
	if os.Geteuid() == 0 {
		return fmt.Errorf("run as a regular user, not root")
	}

	execPath, err := AppletPath()
	if err != nil {
		return err
	}

	dir, err := unitDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	unitPath := filepath.Join(dir, UnitName)
	unit := UnitFile(execPath, os.Getenv("DISPLAY"), os.Getuid())
	if err := os.WriteFile(unitPath, []byte(unit), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", unitPath, err)
	}
	slog.Info("wrote service unit", "path", unitPath)

	// Best effort: a missing systemd should not undo the file install.
	for _, args := range [][]string{
		{"--user", "daemon-reload"},
		{"--user", "enable", UnitName},
		{"--user", "start", UnitName},
	} {
		if err := r.Run("systemctl", args...); err != nil {
			slog.Warn("systemctl failed", "args", args, "err", err)
		}
	}
	return nil
}

// Uninstall stops and disables the unit and removes the unit file.
func Uninstall(r Runner) error {
	if os.Geteuid() == 0 {
		return fmt.Errorf("run as a regular user, not root")
	}

	for _, args := range [][]string{
		{"--user", "stop", UnitName},
		{"--user", "disable", UnitName},
	} {
		if err := r.Run("systemctl", args...); err != nil {
			slog.Warn("systemctl failed", "args", args, "err", err)
		}
	}

	dir, err := unitDir()
	if err != nil {
		return err
	}
	unitPath := filepath.Join(dir, UnitName)
	if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", unitPath, err)
	}
	return r.Run("systemctl", "--user", "daemon-reload")
}

// Status returns the systemd view of the unit ("active", "inactive",
// "failed", ...).
func Status(r Runner) (string, error) {
	out, err := r.Output("systemctl", "--user", "is-active", UnitName)
	// is-active exits non-zero for anything but "active"; the output is
	// still the answer.
	if out != "" {
		return out, nil
	}
	return "", err
}

// UdevRule renders the rule granting the "input" group read access to
// event devices. Members of that group can then run vosd without root.
func UdevRule() string {
	return `# vosd: allow members of the "input" group to read key events
KERNEL=="event*", SUBSYSTEM=="input", GROUP="input", MODE="0640"
`
}

// InstallRule writes the udev rule and reloads udev. Requires root.
func InstallRule(r Runner) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("installing the udev rule requires root")
	}
	if err := os.WriteFile(RulePath, []byte(UdevRule()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", RulePath, err)
	}
	slog.Info("wrote udev rule", "path", RulePath)
	return reloadUdev(r)
}

// UninstallRule removes the udev rule and reloads udev. Requires root.
func UninstallRule(r Runner) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("removing the udev rule requires root")
	}
	if err := os.Remove(RulePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", RulePath, err)
	}
	return reloadUdev(r)
}

func reloadUdev(r Runner) error {
	if err := r.Run("udevadm", "control", "--reload"); err != nil {
		return fmt.Errorf("udevadm reload: %w", err)
	}
	if err := r.Run("udevadm", "trigger", "--subsystem-match=input"); err != nil {
		slog.Warn("udevadm trigger failed", "err", err)
	}
	return nil
}
