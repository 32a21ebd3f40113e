package targets

import (
	"net"
	"strconv"
)

// Target is one monitored endpoint and the log file its samples go to.
type Target struct {
	Host  string `toml:"host" yaml:"host"`
	Port  int    `toml:"port" yaml:"port"`
	Label string `toml:"label" yaml:"label"`
	Log   string `toml:"log" yaml:"log"`
}

// Address returns host:port, bracketing IPv6 literals.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// List is the ordered set of targets loaded from a targets file.
type List struct {
	Targets []Target `toml:"targets" yaml:"targets"`
}
