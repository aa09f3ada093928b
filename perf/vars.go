package perf

import (
	"expvar"

	"github.com/encodeous/metric"
)

var (
	// RoundLatency is the wall time of one broadcast and drain round in µs
	RoundLatency        = metric.NewHistogram("1m1s")
	RoundsRun           = metric.NewCounter("1m1s")
	AdvertisementsSent  = metric.NewCounter("1m1s")
	RelaxationsAccepted = metric.NewCounter("1m1s")
)

// Exposed returns the metrics published by this package, keyed by their expvar name
func Exposed() map[string]metric.Metric {
	return map[string]metric.Metric{
		"dvsim:RoundLatency (µs)":   RoundLatency,
		"dvsim:Rounds":              RoundsRun,
		"dvsim:AdvertisementsSent":  AdvertisementsSent,
		"dvsim:RelaxationsAccepted": RelaxationsAccepted,
	}
}

func init() {
	for name, m := range Exposed() {
		expvar.Publish(name, m)
	}
}
