package integrations

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quickcourt/models"
	"quickcourt/utils"

	"github.com/google/uuid"
)

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

var (
	ErrMissingLocation = utils.BadRequest("lat/lng or address is required")
	ErrInvalidEvent    = utils.BadRequest("event needs a title and an end after its start")
)

// Weather is the mock forecast returned by GET /api/integrations/weather.
type Weather struct {
	City        string `json:"city"`
	Date        string `json:"date"`
	Condition   string `json:"condition"`
	TempC       int    `json:"tempC"`
	Humidity    int    `json:"humidity"`
	RainChance  int    `json:"rainChance"`
	PlayOutside bool   `json:"playOutside"`
}

// Event is a calendar entry rendered as an ICS file.
type Event struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

var conditions = []string{"sunny", "partly cloudy", "cloudy", "light rain", "thunderstorm"}

// MapsLink builds a Google Maps search URL, preferring coordinates.
func MapsLink(point *models.GeoPoint, address string) (string, error) {
	if point != nil {
		q := strconv.FormatFloat(point.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(point.Lng, 'f', -1, 64)
		return mapsSearchURL + url.QueryEscape(q), nil
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return "", ErrMissingLocation
	}
	return mapsSearchURL + url.QueryEscape(address), nil
}

// MockWeather derives a stable forecast from the city and date so the
// same query always yields the same answer.
func MockWeather(city, date string) Weather {
	city = strings.TrimSpace(city)
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(city) + "|" + date))
	sum := h.Sum32()

	cond := conditions[sum%uint32(len(conditions))]
	w := Weather{
		City:       city,
		Date:       date,
		Condition:  cond,
		TempC:      18 + int((sum>>8)%18),
		Humidity:   35 + int((sum>>16)%55),
		RainChance: int((sum >> 4) % 20),
	}
	if strings.Contains(cond, "rain") || cond == "thunderstorm" {
		w.RainChance += 60
	}
	w.PlayOutside = w.RainChance < 50
	return w
}

// ICS renders ev as a single-event iCalendar document.
func ICS(ev Event, now time.Time) ([]byte, error) {
	if strings.TrimSpace(ev.Title) == "" || !ev.End.After(ev.Start) {
		return nil, ErrInvalidEvent
	}
	const stamp = "20060102T150405Z"
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//QuickCourt//Bookings//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uuid.NewString() + "@quickcourt",
		"DTSTAMP:" + now.UTC().Format(stamp),
		"DTSTART:" + ev.Start.UTC().Format(stamp),
		"DTEND:" + ev.End.UTC().Format(stamp),
		"SUMMARY:" + escapeText(ev.Title),
	}
	if ev.Description != "" {
		lines = append(lines, "DESCRIPTION:"+escapeText(ev.Description))
	}
	if ev.Location != "" {
		lines = append(lines, "LOCATION:"+escapeText(ev.Location))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(fold(l))
		b.WriteString("\r\n")
	}
	return []byte(b.String()), nil
}

// FileName turns a title into a safe .ics download name.
func FileName(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "booking"
	}
	return fmt.Sprintf("%s.ics", name)
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func escapeText(s string) string { return textEscaper.Replace(s) }

// fold splits content lines longer than 75 octets.
func fold(line string) string {
	limit := 75
	if len(line) <= limit {
		return line
	}
	var b strings.Builder
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8Start(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines spend one octet on the leading space
		limit = 74
	}
	b.WriteString(line)
	return b.String()
}

func utf8Start(c byte) bool { return c&0xC0 != 0x80 }
