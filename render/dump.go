package render

import (
	"github.com/encodeous/dvsim/core"
	"github.com/goccy/go-yaml"
)

type RouteDump struct {
	Destination string `yaml:"destination"`
	Cost        uint32 `yaml:"cost"`
	NextHop     string `yaml:"next_hop"`
}

type TableDump struct {
	Router string      `yaml:"router"`
	Routes []RouteDump `yaml:"routes"`
}

type ResultDump struct {
	Run     string      `yaml:"run"`
	Outcome string      `yaml:"outcome"`
	Rounds  int         `yaml:"rounds"`
	Tables  []TableDump `yaml:"tables"`
}

// Dump flattens a result into (router, destination, cost, next hop) records
func Dump(res *core.Result) ResultDump {
	out := ResultDump{
		Run:     res.RunId.String(),
		Outcome: res.Outcome.String(),
		Rounds:  res.Rounds,
		Tables:  make([]TableDump, 0, len(res.Tables)),
	}
	for _, t := range res.Tables {
		td := TableDump{Router: string(t.Id), Routes: make([]RouteDump, 0, t.Routes.Len())}
		for dest, e := range t.Routes.All() {
			td.Routes = append(td.Routes, RouteDump{
				Destination: string(dest),
				Cost:        e.Cost,
				NextHop:     e.NextHop.String(),
			})
		}
		out.Tables = append(out.Tables, td)
	}
	return out
}

func MarshalYAML(res *core.Result) ([]byte, error) {
	return yaml.Marshal(Dump(res))
}
