package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/lfarias/sports-booking-gateway/internal/dateutil"
	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// SlotsForDate fetches the slot catalog with per-slot availability for one
// facility and date.  The query runs under the availability retry policy
// (two automatic retries, linear backoff); once exhausted the failure is
// wrapped in *AvailabilityQueryError so callers treat it as "availability
// unknown" rather than "no slots exist".
func (c *Client) SlotsForDate(ctx context.Context, subScenarioID uint64, dateISO string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := c.retry.Do(ctx, func() error {
		var attempt []model.TimeSlot
		if err := c.fetchSlotsOnce(ctx, subScenarioID, dateISO, &attempt); err != nil {
			return err
		}
		slots = attempt
		return nil
	})
	if err != nil {
		return nil, &AvailabilityQueryError{SubScenarioID: subScenarioID, Date: dateISO, Err: err}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

func (c *Client) fetchSlotsOnce(ctx context.Context, subScenarioID uint64, dateISO string, out *[]model.TimeSlot) error {
	q := url.Values{}
	q.Set("subScenarioId", fmt.Sprintf("%d", subScenarioID))
	q.Set("date", dateISO)
	return c.do(ctx, http.MethodGet, "/reservations/available-timeslots", "", q, nil, out)
}

// SlotsForConfiguration answers an availability query for a multi-date
// configuration: it expands the range (honoring the weekday restriction)
// into calculated calendar dates, fetches each date's slots, and aggregates
// per-slot availability across all of them.  The per-date legs are
// single-shot; only the direct single-date query retries.
func (c *Client) SlotsForConfiguration(ctx context.Context, subScenarioID uint64, startISO, endISO string, weekdays []int) (*model.ConfigurationAvailability, error) {
	dates := dateutil.DatesForRange(startISO, endISO, weekdays)
	if len(dates) == 0 {
		return nil, &AvailabilityQueryError{
			SubScenarioID: subScenarioID,
			Date:          startISO,
			Err:           fmt.Errorf("configuration yields no dates (range %s..%s)", startISO, endISO),
		}
	}

	type slotCount struct {
		slot      model.TimeSlot
		available int
	}
	counts := make(map[int]*slotCount)
	order := make([]int, 0)

	for _, d := range dates {
		var slots []model.TimeSlot
		if err := c.fetchSlotsOnce(ctx, subScenarioID, d, &slots); err != nil {
			return nil, &AvailabilityQueryError{SubScenarioID: subScenarioID, Date: d, Err: err}
		}
		for _, s := range slots {
			sc, ok := counts[s.ID]
			if !ok {
				sc = &slotCount{slot: s}
				counts[s.ID] = sc
				order = append(order, s.ID)
			}
			if s.Available {
				sc.available++
			}
		}
	}

	sort.Slice(order, func(i, j int) bool {
		return counts[order[i]].slot.StartTime < counts[order[j]].slot.StartTime
	})

	out := &model.ConfigurationAvailability{
		Dates:      dates,
		TotalDates: len(dates),
	}
	availableInstances := 0
	for _, id := range order {
		sc := counts[id]
		out.Slots = append(out.Slots, model.SlotAggregate{
			Slot:                sc.slot,
			AvailableInAllDates: sc.available == len(dates),
			AvailableDates:      sc.available,
		})
		out.TotalSlotInstances += len(dates)
		availableInstances += sc.available
	}
	if out.TotalSlotInstances > 0 {
		out.PercentAvailable = float64(availableInstances) / float64(out.TotalSlotInstances) * 100
	}
	return out, nil
}
