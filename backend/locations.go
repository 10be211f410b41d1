package backend

import (
	"context"
	"net/http"
	"net/url"
)

// States lists the selectable states.
func (c *Client) States(ctx context.Context) ([]string, error) {
	var states []string
	if err := c.doData(ctx, "location_states", http.MethodGet, "/location/states", nil, "", &states); err != nil {
		return nil, err
	}
	return states, nil
}

// Cities lists the cities of a state.
func (c *Client) Cities(ctx context.Context, state string) ([]string, error) {
	query := url.Values{"state": {state}}
	var cities []string
	if err := c.doData(ctx, "location_cities", http.MethodGet, "/location/cities", query, "", &cities); err != nil {
		return nil, err
	}
	return cities, nil
}
