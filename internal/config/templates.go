package config

import (
	"fmt"
	"os"
)

// Template returns a commented config file holding the defaults.
func Template() string {
	return template
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const template = `# mcwire configuration

# trace | debug | info | warn | error | off
log_level = "info"

# protocol number sent in generated handshakes
protocol_version = 766

# largest accepted frame payload (length of id + body)
max_frame_bytes = 2097151

blocklist_url = "https://sessionserver.mojang.com/blockedservers"
blocklist_timeout = "10s"
`
