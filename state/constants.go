package state

const (
	INF = ^(uint32)(0)
	// INFM is the largest cost that still describes a reachable destination.
	INFM = INF - 1
)

var (
	DefaultMaxIterations = 20
	DefaultLinkCost      = (uint32)(1)

	// bounds on the size of a generated network
	MinNodes = 3
	MaxNodes = 16

	// cost range of generated links, inclusive
	MinGenCost = 1
	MaxGenCost = 10
	// ExtraLinkOdds is the "1 in N" chance that a generator adds a link between two routers that are not chained
	ExtraLinkOdds = 6
)
