package input

import (
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Device is a discovered input device.
type Device struct {
	Path string // /dev/input/eventN
	Name string // kernel device name
}

// FindKeyboards enumerates /dev/input/event* and returns likely
// keyboards. Devices whose name contains "keyboard" win; if none match,
// it falls back to devices whose key capability bitmask covers the
// whole A..Z row. An error is returned only when both passes come up
// empty.
func FindKeyboards() ([]Device, error) {
	return findKeyboards("/dev/input", "/sys/class/input")
}

func findKeyboards(devRoot, sysRoot string) ([]Device, error) {
	entries, err := filepath.Glob(filepath.Join(devRoot, "event*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	var named, fallback []Device
	for _, path := range entries {
		event := filepath.Base(path)
		name := readSysName(sysRoot, event)
		dev := Device{Path: path, Name: name}

		if strings.Contains(strings.ToLower(name), "keyboard") {
			named = append(named, dev)
			continue
		}
		mask, err := readKeyCapabilities(sysRoot, event)
		if err != nil {
			slog.Debug("no key capabilities", "device", path, "err", err)
			continue
		}
		if hasKey(mask, keyA) && hasKey(mask, keyZ) {
			fallback = append(fallback, dev)
		}
	}

	if len(named) > 0 {
		return named, nil
	}
	if len(fallback) > 0 {
		return fallback, nil
	}
	return nil, fmt.Errorf("no keyboard devices found under %s", devRoot)
}

// readSysName reads the device name from sysfs, e.g.
// /sys/class/input/event3/device/name.
func readSysName(sysRoot, event string) string {
	data, err := os.ReadFile(filepath.Join(sysRoot, event, "device", "name"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readKeyCapabilities parses the EV_KEY capability bitmask exposed at
// /sys/class/input/eventN/device/capabilities/key: space-separated hex
// words, most significant first.
func readKeyCapabilities(sysRoot, event string) (*big.Int, error) {
	data, err := os.ReadFile(filepath.Join(sysRoot, event, "device", "capabilities", "key"))
	if err != nil {
		return nil, err
	}
	return parseCapabilityMask(string(data))
}

func parseCapabilityMask(s string) (*big.Int, error) {
	mask := new(big.Int)
	for _, word := range strings.Fields(s) {
		w, ok := new(big.Int).SetString(word, 16)
		if !ok {
			return nil, fmt.Errorf("bad capability word %q", word)
		}
		mask.Lsh(mask, 64)
		mask.Or(mask, w)
	}
	return mask, nil
}

func hasKey(mask *big.Int, code uint) bool {
	return mask.Bit(int(code)) == 1
}
