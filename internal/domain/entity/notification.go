package entity

import (
	"sort"
	"strconv"
)

// MaxTemplateVariables is the provider's limit on template placeholders.
const MaxTemplateVariables = 30

// VariableSet maps numeric-string placeholder keys ("1","2",...) to the
// text bound into an approved template. Built only by the template binder,
// which enforces the key and size invariants.
type VariableSet map[string]string

// Keys returns the set's keys in ascending numeric order, the order in
// which the provider expects positional placeholders to be bound.
func (v VariableSet) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

// CheckinReminder is one entry of the outbound reminder batch payload.
// FlightNumber is unpadded with the carrier prefix stripped; FlightDate is
// "yyyy-MM-dd".
type CheckinReminder struct {
	Pnr          string `json:"pnr"`
	GivenName    string `json:"givenName"`
	Surname      string `json:"surname"`
	SeatOrPhone  string `json:"seatOrPhone"`
	FlightNumber string `json:"flightNumber"`
	FlightDate   string `json:"flightDate"`
}
