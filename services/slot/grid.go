package slot

import (
	"fmt"
	"sort"

	"quickcourt/models"
	"quickcourt/utils"
)

// BuildGrid lays the court's hourly grid for date over the persisted rows.
// Hours with no row are synthesized as free at the court's current price.
func BuildGrid(court *models.Court, date string, persisted []models.TimeSlot) []models.TimeSlot {
	byKey := make(map[string]models.TimeSlot, len(persisted))
	for _, s := range persisted {
		byKey[s.Start+"-"+s.End] = s
	}

	openMin, closeMin := court.Hours()
	grid := make([]models.TimeSlot, 0, (closeMin-openMin)/60)
	for m := openMin; m+60 <= closeMin; m += 60 {
		start, end := models.FormatClock(m), models.FormatClock(m+60)
		if s, ok := byKey[start+"-"+end]; ok {
			grid = append(grid, s)
			delete(byKey, start+"-"+end)
			continue
		}
		grid = append(grid, models.TimeSlot{
			CourtID:       court.ID,
			FacilityID:    court.FacilityID,
			Date:          date,
			Start:         start,
			End:           end,
			PriceSnapshot: court.PricePerHour,
		})
	}
	// rows left over from an earlier opening window stay visible
	for _, s := range byKey {
		grid = append(grid, s)
	}
	sort.SliceStable(grid, func(i, j int) bool { return grid[i].Start < grid[j].Start })
	return grid
}

// HourWindows splits [start, start+duration h) into grid-aligned hourly keys.
func HourWindows(court *models.Court, date, start string, duration int) ([]models.SlotKey, error) {
	if !models.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if duration < 1 {
		return nil, utils.BadRequest("duration must be at least one hour")
	}
	startMin, err := models.ParseClock(start)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	openMin, closeMin := court.Hours()
	if duration > (closeMin-openMin)/60 {
		return nil, utils.BadRequest(fmt.Sprintf("duration exceeds the court's opening hours %s-%s",
			models.FormatClock(openMin), models.FormatClock(closeMin)))
	}
	endMin := startMin + duration*60
	if startMin < openMin || endMin > closeMin {
		return nil, utils.BadRequest(fmt.Sprintf("requested time is outside opening hours %s-%s",
			models.FormatClock(openMin), models.FormatClock(closeMin)))
	}
	if (startMin-openMin)%60 != 0 {
		return nil, utils.BadRequest("start time must align with the hourly slot grid")
	}

	windows := make([]models.SlotKey, 0, duration)
	for m := startMin; m < endMin; m += 60 {
		windows = append(windows, models.SlotKey{
			CourtID: court.ID,
			Date:    date,
			Start:   models.FormatClock(m),
			End:     models.FormatClock(m + 60),
		})
	}
	return windows, nil
}

// RangeWindows is HourWindows for an explicit start/end pair.
func RangeWindows(court *models.Court, date, start, end string) ([]models.SlotKey, error) {
	startMin, err := models.ParseClock(start)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	endMin, err := models.ParseClock(end)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	if endMin <= startMin || (endMin-startMin)%60 != 0 {
		return nil, utils.BadRequest("slot range must span whole hours")
	}
	return HourWindows(court, date, start, (endMin-startMin)/60)
}

// SpanWindows lists the hourly keys of an already-validated booking range.
func SpanWindows(courtID, date, start, end string) []models.SlotKey {
	startMin, err1 := models.ParseClock(start)
	endMin, err2 := models.ParseClock(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	var windows []models.SlotKey
	for m := startMin; m+60 <= endMin; m += 60 {
		windows = append(windows, models.SlotKey{
			CourtID: courtID,
			Date:    date,
			Start:   models.FormatClock(m),
			End:     models.FormatClock(m + 60),
		})
	}
	return windows
}
