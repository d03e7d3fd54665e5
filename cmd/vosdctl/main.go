package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/techtimejourney/vosd/pkg/input"
	"github.com/techtimejourney/vosd/pkg/logging"
	"github.com/techtimejourney/vosd/pkg/service"
	"github.com/techtimejourney/vosd/pkg/version"
)

const usage = `Usage: vosdctl <command>

Commands:
  install         install and start the vosd systemd user service
  uninstall       stop and remove the vosd systemd user service
  status          print the service state
  install-rule    install the udev rule granting input device access (root)
  uninstall-rule  remove the udev rule (root)
  devices         list detected keyboard devices
  unit            print the generated systemd unit without installing it
  rule            print the udev rule without installing it
`

func main() {
	logLevel := flag.String("log-level", "info", "Log level: "+logging.LevelNames())
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return
	}

	if err := logging.Setup(logging.Options{Level: *logLevel, Format: *logFormat, Output: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging config: %v\n", err)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	runner := service.ExecRunner{}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "install":
		err = service.Install(runner)
		if err == nil {
			fmt.Printf("installed and started %s\n", service.UnitName)
		}
	case "uninstall":
		err = service.Uninstall(runner)
		if err == nil {
			fmt.Printf("removed %s\n", service.UnitName)
		}
	case "status":
		var state string
		state, err = service.Status(runner)
		if err == nil {
			fmt.Println(strings.TrimSpace(state))
		}
	case "install-rule":
		err = service.InstallRule(runner)
		if err == nil {
			fmt.Printf("installed %s\n", service.RulePath)
		}
	case "uninstall-rule":
		err = service.UninstallRule(runner)
		if err == nil {
			fmt.Printf("removed %s\n", service.RulePath)
		}
	case "devices":
		err = listDevices()
	case "unit":
		exe, pathErr := service.AppletPath()
		if pathErr != nil {
			exe = "vosd"
		}
		fmt.Print(service.UnitFile(exe, os.Getenv("DISPLAY"), os.Getuid()))
	case "rule":
		fmt.Print(service.UdevRule())
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", flag.Arg(0), "err", err)
		os.Exit(1)
	}
}

func listDevices() error {
	devices, err := input.FindKeyboards()
	if err != nil {
		return err
	}
	for _, d := range devices {
		fmt.Printf("%s\t%s\n", d.Path, d.Name)
	}
	return nil
}
