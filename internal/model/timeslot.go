package model

// TimeSlot is one reservable hourly interval of a sub-scenario, together
// with its availability for the date that was queried.  Slots are fetched
// fresh for every (facility, date) pair and never kept beyond the current
// booking session: availability is time-sensitive and a successful
// reservation changes it.
//
// Fields:
//  ID        – slot identifier, unique within a facility's slot catalog.
//  StartTime – inclusive start of the interval, "HH:MM".
//  EndTime   – exclusive end of the interval, "HH:MM".
//  Available – whether the slot can still be booked on the queried date.
type TimeSlot struct {
	ID        int    `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// SlotAggregate reports how a single slot behaves across every calculated
// date of a range configuration.  AvailableInAllDates is only true when the
// backend reported the slot free on each one of the dates.
type SlotAggregate struct {
	Slot                TimeSlot `json:"slot"`
	AvailableInAllDates bool     `json:"availableInAllDates"`
	AvailableDates      int      `json:"availableDates"`
}

// ConfigurationAvailability is the result of querying availability for a
// multi-date configuration: the calendar dates the configuration expands
// to, the per-slot aggregates, and summary statistics.
type ConfigurationAvailability struct {
	Dates              []string        `json:"dates"`
	Slots              []SlotAggregate `json:"slots"`
	TotalDates         int             `json:"totalDates"`
	TotalSlotInstances int             `json:"totalSlotInstances"`
	PercentAvailable   float64         `json:"percentAvailable"`
}
