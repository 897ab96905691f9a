package handlers

import (
	"net/http"
	"strconv"
	"time"

	"salon_booking_go/db"
	"salon_booking_go/services"

	"github.com/labstack/echo/v4"
)

// parseDateParam accepts RFC3339 timestamps or plain "2006-01-02" dates.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// parseBoolParam parses an optional boolean query parameter.
func parseBoolParam(c echo.Context, name string) (*bool, *echo.HTTPError) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid boolean for "+name)
	}
	return &value, nil
}

// GetSlotsHandler lists calendar slots with filters and pagination.
// With autofill=1 it first populates the target window, but only when
// that window holds no slots at all, so repeated listing requests stay
// cheap while an empty calendar self-heals.
func GetSlotsHandler(c echo.Context) error {
	filter := services.SlotFilter{}

	isBooked, httpErr := parseBoolParam(c, "isBooked")
	if httpErr != nil {
		return httpErr
	}
	filter.IsBooked = isBooked

	isBlocked, httpErr := parseBoolParam(c, "isBlocked")
	if httpErr != nil {
		return httpErr
	}
	filter.IsBlocked = isBlocked

	if raw := c.QueryParam("fromDate"); raw != "" {
		fromDate, err := parseDateParam(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid fromDate format")
		}
		filter.FromDate = &fromDate
	}
	if raw := c.QueryParam("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		filter.PageSize, _ = strconv.Atoi(raw)
	}

	var autofillResult *services.AutofillResult
	if c.QueryParam("autofill") == "1" {
		months := 3
		if raw := c.QueryParam("months"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid months value")
			}
			months = parsed
		}

		startBoundary := time.Now()
		if filter.FromDate != nil {
			startBoundary = *filter.FromDate
		}
		startBoundary = time.Date(startBoundary.Year(), startBoundary.Month(), startBoundary.Day(), 0, 0, 0, 0, startBoundary.Location())
		endBoundary := startBoundary.AddDate(0, months, 0)

		count, err := services.CountSlotsInWindow(db.DB, startBoundary, endBoundary)
		if err != nil {
			return httpError(err)
		}
		if count == 0 {
			autofillResult, err = services.AutofillSlots(db.DB, services.DefaultTemplate(), months, startBoundary)
			if err != nil {
				return httpError(err)
			}
		}
	}

	page, err := services.ListSlots(db.DB, filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"pagination": map[string]interface{}{
			"page":        page.Page,
			"page_size":   page.PageSize,
			"total":       page.Total,
			"total_pages": page.TotalPages,
		},
		"slots":    page.Slots,
		"autofill": autofillResult,
	})
}

// GetSlotHandler returns a single slot with its appointment
func GetSlotHandler(c echo.Context) error {
	slot, err := services.GetSlotByID(db.DB, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"slot":    slot,
	})
}

// CreateSlotHandler creates a single ad-hoc slot at an explicit timestamp
func CreateSlotHandler(c echo.Context) error {
	var req struct {
		Date        string  `json:"date"`
		IsBlocked   bool    `json:"is_blocked"`
		BlockedNote *string `json:"blocked_note"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Date is required")
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	slot, err := services.CreateSlot(db.DB, date, req.IsBlocked, req.BlockedNote)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"slot":    slot,
	})
}

// UpdateSlotHandler updates a slot's date/booked/blocked/note fields
func UpdateSlotHandler(c echo.Context) error {
	var req struct {
		Date        *string `json:"date"`
		IsBooked    *bool   `json:"is_booked"`
		IsBlocked   *bool   `json:"is_blocked"`
		BlockedNote *string `json:"blocked_note"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	update := services.SlotUpdate{
		IsBooked:    req.IsBooked,
		IsBlocked:   req.IsBlocked,
		BlockedNote: req.BlockedNote,
	}
	if req.Date != nil {
		date, err := parseDateParam(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
		}
		update.Date = &date
	}

	slot, err := services.UpdateSlot(db.DB, c.Param("id"), update)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"slot":    slot,
	})
}

// DeleteSlotHandler deletes a slot unless it carries a booking
func DeleteSlotHandler(c echo.Context) error {
	if err := services.DeleteSlot(db.DB, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Slot deleted",
	})
}

// UnblockSlotHandler returns a blocked slot to availability
func UnblockSlotHandler(c echo.Context) error {
	slot, err := services.UnblockSlot(db.DB, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"slot":    slot,
	})
}

// BlockDayHandler withdraws a whole day from availability
func BlockDayHandler(c echo.Context) error {
	var req struct {
		Date string  `json:"date"`
		Note *string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Date is required")
	}
	day, err := parseDateParam(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	result, err := services.BlockDay(db.DB, services.DefaultTemplate(), day, req.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// BlockRangeHandler blocks the requested times across a date range
func BlockRangeHandler(c echo.Context) error {
	var req struct {
		StartDate   string   `json:"start_date"`
		EndDate     string   `json:"end_date"`
		BlockedNote *string  `json:"blocked_note"`
		TimeSlots   []string `json:"time_slots"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Start and end dates are required")
	}
	startDate, err := parseDateParam(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date format")
	}
	endDate, err := parseDateParam(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date format")
	}

	result, err := services.BlockRange(db.DB, services.BlockRangeParams{
		StartDate: startDate,
		EndDate:   endDate,
		Note:      req.BlockedNote,
		TimeSlots: req.TimeSlots,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// OverrideDayHandler regenerates a day's slot set from a replacement template
func OverrideDayHandler(c echo.Context) error {
	var req struct {
		Date   string               `json:"date"`
		Blocks []services.TimeBlock `json:"blocks"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Date is required")
	}
	day, err := parseDateParam(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	result, err := services.OverrideDay(db.DB, services.DefaultTemplate(), day, req.Blocks)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// ResetSlotsHandler bulk-deletes every slot that is not booked
func ResetSlotsHandler(c echo.Context) error {
	deleted, err := services.ResetUnbookedSlots(db.DB)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}
