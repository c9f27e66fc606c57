package application

import "expvar"

// Counters published under "accounts" at /debug/vars.
var metrics = expvar.NewMap("accounts")

const (
	metricRegistered      = "registered"
	metricLoginSucceeded  = "logins_succeeded"
	metricLoginFailed     = "logins_failed"
	metricDeniedAnonymous = "admin_denials_unauthenticated"
	metricDeniedForbidden = "admin_denials_forbidden"
)

func recordDenial(d Decision) {
	switch d {
	case DenyUnauthenticated:
		metrics.Add(metricDeniedAnonymous, 1)
	case DenyForbidden:
		metrics.Add(metricDeniedForbidden, 1)
	}
}
