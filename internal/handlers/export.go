package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/subscription-tracker/backend/internal/analytics"
)

const (
	exportTypeTimeline   = "timeline"
	exportTypeCategories = "categories"
)

const exportDateLayout = "2006-01-02"

// ExportJSON выгружает аналитический отчет в JSON-файл.
func (h *InsightsHandler) ExportJSON(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return replyError(c, err)
	}

	snap, err := h.Snapshots.Load(c.Request().Context(), userID)
	if err != nil {
		return replyError(c, err)
	}

	report := h.Engine.Analyze(snap, h.period(c), time.Now())

	filename := "insights-" + userID.String() + "-" + report.Period + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, report)
}

// ExportCSV выгружает таймлайн или разбивку по категориям в CSV-файл.
func (h *InsightsHandler) ExportCSV(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return replyError(c, err)
	}

	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeTimeline
	}

	snap, err := h.Snapshots.Load(c.Request().Context(), userID)
	if err != nil {
		return replyError(c, err)
	}

	report := h.Engine.Analyze(snap, h.period(c), time.Now())

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeTimeline:
		if err := writeTimelineCSV(writer, report); err != nil {
			return serverError(c)
		}
	case exportTypeCategories:
		if err := writeCategoriesCSV(writer, report); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "insights-" + userID.String() + "-" + exportType + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeTimelineCSV(writer *csv.Writer, report analytics.InsightsReport) error {
	if err := writer.Write([]string{"date", "amount", "currency"}); err != nil {
		return err
	}

	for _, point := range report.SpendingTrends.Timeline {
		record := []string{
			point.Date.Format(exportDateLayout),
			strconv.FormatFloat(point.Amount, 'f', 2, 64),
			report.Currency,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeCategoriesCSV(writer *csv.Writer, report analytics.InsightsReport) error {
	if err := writer.Write([]string{"category", "monthly_total", "percentage", "currency"}); err != nil {
		return err
	}

	for _, entry := range report.CategoryBreakdown {
		record := []string{
			entry.Category,
			strconv.FormatFloat(entry.MonthlyTotal, 'f', 2, 64),
			strconv.FormatFloat(entry.Percentage, 'f', 1, 64),
			report.Currency,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
