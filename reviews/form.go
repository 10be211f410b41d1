// Package reviews builds review submissions from the composer form.
package reviews

import (
	"fmt"
	"strconv"

	"github.com/designmatch/web-client/backend"
)

// Form is the typed review composer: three integer sub-ratings plus
// title and body. Fields are bound by name, not harvested by prefix.
type Form struct {
	RatingQuality   string
	RatingExecution string
	RatingBehaviour string
	Title           string
	Body            string
}

// Build validates the form and assembles the wire payload for a vendor.
// The rating fields are coerced to numbers so they marshal numerically.
func (f Form) Build(vendorID int) (backend.Review, error) {
	if vendorID <= 0 {
		return backend.Review{}, fmt.Errorf("invalid vendor id")
	}

	quality, err := parseRating("quality", f.RatingQuality)
	if err != nil {
		return backend.Review{}, err
	}
	execution, err := parseRating("execution", f.RatingExecution)
	if err != nil {
		return backend.Review{}, err
	}
	behaviour, err := parseRating("behaviour", f.RatingBehaviour)
	if err != nil {
		return backend.Review{}, err
	}

	return backend.Review{
		VendorID:        vendorID,
		RatingQuality:   quality,
		RatingExecution: execution,
		RatingBehaviour: behaviour,
		Title:           f.Title,
		Body:            f.Body,
	}, nil
}

func parseRating(name, value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("Please rate the %s.", name)
	}
	rating, err := strconv.Atoi(value)
	if err != nil || rating < 1 || rating > 5 {
		return 0, fmt.Errorf("The %s rating must be between 1 and 5.", name)
	}
	return rating, nil
}
