// Package reference holds the small flat lookup lists managed by the
// console next to the hierarchy: countries and organization types.
package reference

import (
	"fmt"
	"strings"
)

type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Region   string `json:"region,omitempty"`
	IsActive bool   `json:"isActive"`
}

type OrganizationType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func ValidateCountries(countries []Country) error {
	if countries == nil {
		return fmt.Errorf("countries must be present")
	}
	seen := make(map[string]bool, len(countries))
	for _, country := range countries {
		code := strings.ToUpper(strings.TrimSpace(country.Code))
		if code == "" {
			return fmt.Errorf("country %q has no code", country.Name)
		}
		if seen[code] {
			return fmt.Errorf("duplicate country code %s", code)
		}
		seen[code] = true
		if strings.TrimSpace(country.Name) == "" {
			return fmt.Errorf("country %s has no name", code)
		}
	}
	return nil
}

func ValidateOrganizationTypes(types []OrganizationType) error {
	if types == nil {
		return fmt.Errorf("organization types must be present")
	}
	for _, ot := range types {
		if strings.TrimSpace(ot.ID) == "" {
			return fmt.Errorf("organization type %q has no id", ot.Name)
		}
		if strings.TrimSpace(ot.Name) == "" {
			return fmt.Errorf("organization type %s has no name", ot.ID)
		}
	}
	return nil
}
