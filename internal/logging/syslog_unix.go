// SPDX-License-Identifier: MPL-2.0

//go:build !windows && !plan9

package logging

import "log/syslog"

func dialSyslog(opts SyslogOptions) (PriorityWriter, error) {
	w, err := syslog.Dial(opts.Network, opts.Address, syslog.LOG_USER|syslog.LOG_INFO, opts.Tag)
	if err != nil {
		return nil, err
	}
	return w, nil
}
