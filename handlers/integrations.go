package handlers

import (
	"net/http"
	"strconv"
	"time"

	"quickcourt/models"
	"quickcourt/services/integrations"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// IntegrationsHandler serves maps links, mock weather and calendar files.
type IntegrationsHandler struct {
	Now func() time.Time
}

func NewIntegrationsHandler() *IntegrationsHandler {
	return &IntegrationsHandler{Now: time.Now}
}

// MapsLink takes ?lat=&lng= or ?address=.
func (h *IntegrationsHandler) MapsLink(c *gin.Context) {
	var point *models.GeoPoint
	if c.Query("lat") != "" || c.Query("lng") != "" {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			utils.RespondError(c, utils.BadRequest("lat and lng must be valid coordinates"))
			return
		}
		point = &models.GeoPoint{Lat: lat, Lng: lng}
	}
	link, err := integrations.MapsLink(point, c.Query("address"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

// Weather takes ?city=&date=.
func (h *IntegrationsHandler) Weather(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			utils.RespondError(c, utils.BadRequest("date must be YYYY-MM-DD"))
			return
		}
	} else {
		date = h.Now().Format(models.DateLayout)
	}
	c.JSON(http.StatusOK, integrations.MockWeather(c.Query("city"), date))
}

// ICS renders /ics/:title as a download. The window is either ?start=&end=
// in RFC 3339 or ?date=&startTime=&endTime= in server local time.
func (h *IntegrationsHandler) ICS(c *gin.Context) {
	start, end, err := eventWindow(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	title := c.Param("title")
	data, err := integrations.ICS(integrations.Event{
		Title:       title,
		Description: c.Query("description"),
		Location:    c.Query("location"),
		Start:       start,
		End:         end,
	}, h.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+integrations.FileName(title)+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func eventWindow(c *gin.Context) (time.Time, time.Time, error) {
	bad := utils.BadRequest("provide start and end (RFC 3339) or date, startTime and endTime")
	if c.Query("start") != "" {
		start, err1 := time.Parse(time.RFC3339, c.Query("start"))
		end, err2 := time.Parse(time.RFC3339, c.Query("end"))
		if err1 != nil || err2 != nil {
			return time.Time{}, time.Time{}, bad
		}
		return start, end, nil
	}
	date := c.Query("date")
	start, err1 := time.ParseInLocation(models.DateLayout+" 15:04", date+" "+c.Query("startTime"), time.Local)
	end, err2 := time.ParseInLocation(models.DateLayout+" 15:04", date+" "+c.Query("endTime"), time.Local)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, bad
	}
	return start, end, nil
}
