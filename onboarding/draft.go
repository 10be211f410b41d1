// Package onboarding implements the four-step vendor onboarding wizard:
// a linear step counter over an accumulating draft, validated per step,
// submitted atomically at the end.
package onboarding

import (
	"fmt"
	"strings"

	"github.com/designmatch/web-client/backend"
	"github.com/designmatch/web-client/internal/errors"
)

// DefaultCategory is the top-level category this wizard onboards into.
const DefaultCategory = "INTERIOR_DESIGNER"

// Axis is one category selection dimension with its own option list
// endpoint and selection cap.
type Axis struct {
	Number int    // subcategory endpoint number (1..3)
	Label  string // display label
	Max    int    // maximum selectable options
}

// Axes are the three classification dimensions: themes and spaces allow
// up to three selections, execution type is single-select.
var Axes = [3]Axis{
	{Number: 1, Label: "themes", Max: 3},
	{Number: 2, Label: "spaces", Max: 3},
	{Number: 3, Label: "execution type", Max: 1},
}

// AxisByNumber returns the axis with the given subcategory number.
func AxisByNumber(number int) (Axis, error) {
	for _, axis := range Axes {
		if axis.Number == number {
			return axis, nil
		}
	}
	return Axis{}, fmt.Errorf("unknown category axis %d", number)
}

// Draft is the wizard's accumulated form state. Numeric-looking fields
// stay strings until submission, where they are coerced; the category
// axes stay slices until submission, where they are comma-joined. The
// draft exists only for the wizard session and is never partially
// persisted.
type Draft struct {
	BusinessName        string
	StartedIn           string
	Address             string
	NumberOfEmployees   string
	AverageProjectValue string
	ProjectsCompleted   string
	Description         string

	Category      string
	SubCategories [3][]string // indexed by axis (themes, spaces, execution type)

	State string
	City  string
	// CityOptions is the city list fetched for the draft's selected
	// state. It lives on the draft so concurrent wizard sessions never
	// see each other's selections.
	CityOptions []string

	LogoFilename string
	LogoContent  []byte

	Social backend.SocialLinks
}

// NewDraft returns an empty draft with the category preset.
func NewDraft() Draft {
	return Draft{Category: DefaultCategory}
}

// SetSubcategories records the selections for one axis. Selections beyond
// the axis maximum are rejected outright, so an over-limit choice is
// never representable in the draft.
func (d *Draft) SetSubcategories(axisNumber int, selected []string) error {
	axis, err := AxisByNumber(axisNumber)
	if err != nil {
		return err
	}
	if len(selected) > axis.Max {
		return errors.Wrapf(errors.ErrSelectionLimit,
			"you can select a maximum of %d %s", axis.Max, axis.Label)
	}
	d.SubCategories[axisNumber-1] = selected
	return nil
}

// Subcategories returns the selections for one axis.
func (d *Draft) Subcategories(axisNumber int) []string {
	if axisNumber < 1 || axisNumber > 3 {
		return nil
	}
	return d.SubCategories[axisNumber-1]
}

// joinedSubcategories flattens one axis to its comma-joined wire form.
func (d *Draft) joinedSubcategories(axisNumber int) string {
	return strings.Join(d.Subcategories(axisNumber), ",")
}
