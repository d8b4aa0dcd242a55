package entity

import "time"

// FlightSchedule is one distinct schedule row from the reservation view.
// Rows are read-only; the enricher never mutates them.
type FlightSchedule struct {
	AirlineCode        string
	FlightNumber       string
	DepartureCity      string
	ArrivalCity        string
	ScheduledDeparture time.Time
	// Raw departure time string as stored in the view, e.g. "14:05:00".
	ScheduledDepartureTime string
}

// PortInfo describes one side (departure or arrival) of a flight. All
// time and date fields are canonical strings ("HH:mm" / "dd/MM/yyyy") or
// empty when unknown, keeping the response schema stable.
type PortInfo struct {
	City           string `json:"city"`
	Airport        string `json:"airport"`
	Terminal       *int   `json:"terminal"`
	ScheduledTime  string `json:"scheduledTime"`
	ScheduledDate  string `json:"scheduledDate"`
	EstimatedTime  string `json:"estimatedTime"`
	EstimatedDate  string `json:"estimatedDate"`
	ActualTime     string `json:"actualTime"`
	ActualDate     string `json:"actualDate"`
	CheckinCounter string `json:"checkinCounter"`
	Gate           string `json:"gate"`
	Baggage        string `json:"baggage"`
}

// FlightStatus is the unified record combining a schedule row with the
// status provider's live data. One per (flight, date) per enrichment call,
// regenerated on every request.
type FlightStatus struct {
	Flight          string    `json:"flight"`
	FlightNumber    string    `json:"flightNumber"`
	AirlineCode     string    `json:"airlineCode"`
	Departure       PortInfo  `json:"departure"`
	Arrival         PortInfo  `json:"arrival"`
	Status          string    `json:"status"`
	Delayed         bool      `json:"delayed"`
	StatusWithTime  string    `json:"statusWithTime"`
	CurrentTime     string    `json:"currentTime"`
	CurrentDate     string    `json:"currentDate"`
	CurrentDateTime time.Time `json:"currentDateTime"`
}

// Passenger is an ephemeral row from either passenger source. FlightNumber
// and FlightDate ("yyyy-MM-dd") are only populated by the reservation
// source, where they feed the check-in reminder fan-out.
type Passenger struct {
	Pnr          string `json:"pnr"`
	GivenName    string `json:"givenName"`
	Surname      string `json:"surname"`
	SeatOrPhone  string `json:"seatOrPhone"`
	FlightNumber string `json:"flightNumber,omitempty"`
	FlightDate   string `json:"flightDate,omitempty"`
}
