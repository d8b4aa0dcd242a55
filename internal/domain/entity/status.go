package entity

// Types in this file mirror the status provider's JSON envelope. Only the
// fields the enricher reads are mapped; the provider sends far more.

// StatusResponse is the top-level provider envelope.
type StatusResponse struct {
	Data []FlightInstance `json:"data"`
}

// FlightInstance is one scheduled flight instance. StatusDetails may be
// absent entirely; when present the first element is the authoritative
// current status.
type FlightInstance struct {
	Carrier       CodePair       `json:"carrier"`
	FlightNumber  int            `json:"flightNumber"`
	Departure     ScheduledLeg   `json:"departure"`
	Arrival       ScheduledLeg   `json:"arrival"`
	StatusKey     string         `json:"statusKey"`
	StatusDetails []StatusDetail `json:"statusDetails"`
}

// CurrentStatus returns the first status detail, or nil when the provider
// sent none.
func (f *FlightInstance) CurrentStatus() *StatusDetail {
	if f == nil || len(f.StatusDetails) == 0 {
		return nil
	}
	return &f.StatusDetails[0]
}

type CodePair struct {
	Iata string `json:"iata"`
	Icao string `json:"icao"`
}

// ScheduledLeg carries the planned airport, terminal and local/UTC times
// for one side of the flight.
type ScheduledLeg struct {
	Airport  CodePair `json:"airport"`
	Terminal string   `json:"terminal"`
	Date     LocalUTC `json:"date"`
	Time     LocalUTC `json:"time"`
}

type LocalUTC struct {
	Local string `json:"local"`
	UTC   string `json:"utc"`
}

// StatusDetail is a live status snapshot. State is an enum-like string:
// Scheduled, Airborne, InGate, Arrived and friends.
type StatusDetail struct {
	State     string           `json:"state"`
	UpdatedAt string           `json:"updatedAt"`
	Departure *DepartureStatus `json:"departure"`
	Arrival   *ArrivalStatus   `json:"arrival"`
}

type DepartureStatus struct {
	EstimatedTime *GateTimes `json:"estimatedTime"`
	ActualTime    *GateTimes `json:"actualTime"`
	Airport       CodePair   `json:"airport"`
	Gate          string     `json:"gate"`
}

type ArrivalStatus struct {
	EstimatedTime  *GateTimes `json:"estimatedTime"`
	ActualTime     *GateTimes `json:"actualTime"`
	Airport        CodePair   `json:"airport"`
	ActualTerminal string     `json:"actualTerminal"`
	Gate           string     `json:"gate"`
	Baggage        string     `json:"baggage"`
}

// GateTimes carries out-gate/in-gate instants plus the provider's
// timeliness tag ("Delayed", "OnTime") and variation ("00:25").
type GateTimes struct {
	OutGateTimeliness string    `json:"outGateTimeliness"`
	OutGateVariation  string    `json:"outGateVariation"`
	OutGate           *LocalUTC `json:"outGate"`
	OffGround         *LocalUTC `json:"offGround"`
	InGateTimeliness  string    `json:"inGateTimeliness"`
	InGateVariation   string    `json:"inGateVariation"`
	OnGround          *LocalUTC `json:"onGround"`
	InGate            *LocalUTC `json:"inGate"`
}
