package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// Scenarios lists the institute's venues, optionally filtered by area and
// neighborhood.  Browse reads are public and benefit from the response
// cache at the HTTP layer, not here.
func (c *Client) Scenarios(ctx context.Context, area, neighborhood string) ([]model.Scenario, error) {
	q := url.Values{}
	if area != "" {
		q.Set("area", area)
	}
	if neighborhood != "" {
		q.Set("neighborhood", neighborhood)
	}
	var out []model.Scenario
	if err := c.do(ctx, http.MethodGet, "/scenarios", "", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubScenarios lists the reservable units of one venue.
func (c *Client) SubScenarios(ctx context.Context, scenarioID uint64) ([]model.SubScenario, error) {
	var out []model.SubScenario
	path := fmt.Sprintf("/scenarios/%d/sub-scenarios", scenarioID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
