package models

import "strings"

// Matches reports whether q is a case-insensitive substring of the first
// name, last name or email, folding accented letters too ("É" matches
// "é"). An empty q matches everyone.
func (person Person) Matches(q string) bool {
	if q == "" {
		return true
	}

	q = strings.ToLower(q)
	for _, field := range []string{person.FirstName, person.LastName, person.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}

	return false
}

// FilterPersons keeps the persons matching q, in their original order.
func FilterPersons(persons []Person, q string) []Person {
	if q == "" {
		return persons
	}

	filtered := []Person{}
	for _, person := range persons {
		if person.Matches(q) {
			filtered = append(filtered, person)
		}
	}

	return filtered
}
