package model

// Scenario is a parent venue managed by the institute (a park, coliseum or
// sports complex).  Scenarios group one or more reservable sub-scenarios.
type Scenario struct {
	ID           uint64        `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Neighborhood string        `json:"neighborhood"`
	Area         string        `json:"area"`
	SubScenarios []SubScenario `json:"subScenarios,omitempty"`
}

// SubScenario is the specific reservable unit inside a scenario, e.g. one
// court of a multi-court complex.  Reservations always target a
// sub-scenario, never the parent venue.
type SubScenario struct {
	ID         uint64 `json:"id"`
	ScenarioID uint64 `json:"scenarioId"`
	Name       string `json:"name"`
	Activity   string `json:"activity"`
	HasCost    bool   `json:"hasCost"`
	Capacity   int    `json:"capacity"`
}
