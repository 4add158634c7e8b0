package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// KindMSRP is the only config kind: the MSRP receive core.
const KindMSRP = "msrp"

// Template returns the commented TOML template for kind.
func Template(kind string) (string, error) {
	if strings.TrimSpace(kind) != KindMSRP {
		return "", fmt.Errorf("unknown config kind %q (want %q)", kind, KindMSRP)
	}
	return msrpTemplate, nil
}

// WriteTemplate writes the template for kind to path. Without overwrite an
// existing file is left untouched and reported.
func WriteTemplate(path, kind string, overwrite bool) error {
	body, err := Template(kind)
	if err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

const msrpTemplate = `[decoder]
# Accept a Message whose AttributeListLength counts a list EndMark that the
# PDU does not carry.
allow_missing_list_endmark = false
protocol_versions = [0]

[log]
level = "info"
timestamp = true
no_color = false
json = false

[metrics]
# host:port for the Prometheus endpoint; empty disables it.
addr = ""
`
