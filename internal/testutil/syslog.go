// SPDX-License-Identifier: MPL-2.0

package testutil

import "sync"

type (
	// SyslogMessage is one message received by a SyslogRecorder.
	SyslogMessage struct {
		Priority string
		Msg      string
	}

	// SyslogRecorder records messages per priority in place of a syslog
	// connection. It has the method set of *log/syslog.Writer used by the
	// logging package.
	SyslogRecorder struct {
		mu     sync.Mutex
		msgs   []SyslogMessage
		closed bool
	}
)

func (r *SyslogRecorder) record(priority, m string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, SyslogMessage{Priority: priority, Msg: m})
	return nil
}

// Debug records m at debug priority.
func (r *SyslogRecorder) Debug(m string) error { return r.record("debug", m) }

// Info records m at info priority.
func (r *SyslogRecorder) Info(m string) error { return r.record("info", m) }

// Warning records m at warning priority.
func (r *SyslogRecorder) Warning(m string) error { return r.record("warning", m) }

// Err records m at err priority.
func (r *SyslogRecorder) Err(m string) error { return r.record("err", m) }

// Crit records m at crit priority.
func (r *SyslogRecorder) Crit(m string) error { return r.record("crit", m) }

// Close marks the recorder closed.
func (r *SyslogRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Messages returns a copy of the recorded messages in arrival order.
func (r *SyslogRecorder) Messages() []SyslogMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SyslogMessage(nil), r.msgs...)
}

// Closed reports whether Close was called.
func (r *SyslogRecorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
