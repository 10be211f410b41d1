package onboarding

import (
	"fmt"
	"strconv"
)

// validateStep checks the required fields of one step and returns the
// first failure as a user-displayable message.
func validateStep(step int, d *Draft) error {
	switch step {
	case StepBusinessInfo:
		return validateBusinessInfo(d)
	case StepCategories:
		return validateCategories(d)
	case StepLocation:
		return validateLocation(d)
	case StepSocial:
		// Social links are optional.
		return nil
	default:
		return fmt.Errorf("unknown step %d", step)
	}
}

func validateBusinessInfo(d *Draft) error {
	if d.BusinessName == "" {
		return fmt.Errorf("Please enter your business name.")
	}
	if d.StartedIn == "" {
		return fmt.Errorf("Please enter the year you started.")
	}
	if d.Address == "" {
		return fmt.Errorf("Please enter your address.")
	}
	if d.NumberOfEmployees == "" {
		return fmt.Errorf("Please enter your number of employees.")
	}
	if _, err := strconv.Atoi(d.NumberOfEmployees); err != nil {
		return fmt.Errorf("Please enter a valid number of employees.")
	}
	if d.AverageProjectValue == "" {
		return fmt.Errorf("Please enter your average project value.")
	}
	if _, err := strconv.ParseFloat(d.AverageProjectValue, 64); err != nil {
		return fmt.Errorf("Please enter a valid average project value.")
	}
	if d.ProjectsCompleted == "" {
		return fmt.Errorf("Please enter the number of projects completed.")
	}
	if _, err := strconv.Atoi(d.ProjectsCompleted); err != nil {
		return fmt.Errorf("Please enter a valid number of projects completed.")
	}
	if d.Description == "" {
		return fmt.Errorf("Please enter a description.")
	}
	return nil
}

func validateCategories(d *Draft) error {
	for _, axis := range Axes {
		selected := d.Subcategories(axis.Number)
		if len(selected) == 0 {
			return fmt.Errorf("Please select your %s.", axis.Label)
		}
		if len(selected) > axis.Max {
			return fmt.Errorf("You can select a maximum of %d %s.", axis.Max, axis.Label)
		}
	}
	return nil
}

func validateLocation(d *Draft) error {
	if d.State == "" {
		return fmt.Errorf("Please select your state.")
	}
	if d.City == "" {
		return fmt.Errorf("Please select your city.")
	}
	return nil
}
