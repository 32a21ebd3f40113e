package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"
)

// ErrNoTimeout is returned when a probe is attempted with a zero or negative
// timeout. A dialer treats zero as "no timeout", which would let one dead
// target stall the whole sampling loop.
var ErrNoTimeout = errors.New("probe timeout must be positive")

// Prober measures connect latency to a single endpoint.
type Prober interface {
	Probe(ctx context.Context, host string, port int, timeout time.Duration) (time.Duration, error)
}

// TCPProber opens and immediately closes one TCP connection per probe.
type TCPProber struct{}

// Probe dials host:port once and returns the time taken to establish the
// connection.
func (TCPProber) Probe(ctx context.Context, host string, port int, timeout time.Duration) (time.Duration, error) {
	if timeout <= 0 {
		return 0, ErrNoTimeout
	}

	d := net.Dialer{Timeout: timeout}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", addr)
	rtt := time.Since(start)
	if err != nil {
		return 0, err
	}
	conn.Close()
	return rtt, nil
}

// Milliseconds converts a connect duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
