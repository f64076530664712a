// Package datasource selects where read endpoints get their data from.
// "chain" serves state reconciled from the program's accounts; "fixture"
// serves deterministic demo data generated in-process. The choice is
// made once at startup and stamped onto every page so demo figures are
// never mistaken for real ones.
package datasource

import "receivault/config"

const (
	SourceChain   = "chain"
	SourceFixture = "fixture"
)

// Label returns the source tag for API responses.
func Label() string {
	if config.AppConfig.DataSource == SourceFixture {
		return SourceFixture
	}
	return SourceChain
}

// UseFixtures reports whether the process serves fixture data.
func UseFixtures() bool {
	return config.AppConfig.DataSource == SourceFixture
}
