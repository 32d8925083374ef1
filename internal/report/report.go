// Package report renders plain-text schedule and statistics tables for
// terminal output and text API responses.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/example/conference-scheduler/internal/application"
)

// DailySchedule writes one table per calendar day, ordered chronologically.
func DailySchedule(w io.Writer, days []application.ScheduleDay) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No events scheduled.")
		return
	}

	for i, day := range days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, day.Date.Format("Monday, 2 January 2006"))
		writeEventTable(w, day.Events)
	}
}

// UserSchedule writes the events a single attendee is enrolled in.
func UserSchedule(w io.Writer, username string, events []application.EventView) {
	fmt.Fprintf(w, "Schedule for %s\n", username)
	if len(events) == 0 {
		fmt.Fprintln(w, "No enrolled events.")
		return
	}
	writeEventTable(w, events)
}

func writeEventTable(w io.Writer, events []application.EventView) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Start", "End", "Event", "Type", "Room", "Seats", "Speakers"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")

	for _, event := range events {
		name := event.Name
		if event.VIPOnly {
			name += " (VIP)"
		}
		table.Append([]string{
			event.Start.Format("15:04"),
			event.End.Format("15:04"),
			name,
			string(event.Type),
			event.RoomCode,
			fmt.Sprintf("%d/%d", len(event.Attendees), event.Capacity),
			strings.Join(event.Speakers, ", "),
		})
	}
	table.Render()
}

// Statistics writes the organizer summary as a sequence of short tables.
func Statistics(w io.Writer, summary application.StatisticsSummary) {
	labels := make([]string, 0, len(summary.MostPopularTypes))
	for _, typ := range summary.MostPopularTypes {
		labels = append(labels, string(typ))
	}
	popular := "none"
	if len(labels) > 0 {
		popular = fmt.Sprintf("%s (%d events)", strings.Join(labels, ", "), summary.MostPopularCount)
	}

	overview := tablewriter.NewWriter(w)
	overview.SetHeader([]string{"Metric", "Value"})
	overview.SetAutoWrapText(false)
	overview.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	overview.SetAlignment(tablewriter.ALIGN_LEFT)
	overview.Append([]string{"Most popular event type", popular})
	overview.Append([]string{"Average events per day", fmt.Sprintf("%.2f", summary.AverageEventsPerDay)})
	overview.Append([]string{"Average attendees per day", fmt.Sprintf("%.2f", summary.AverageAttendees)})
	overview.Render()

	fmt.Fprintln(w)
	writeRankTable(w, "Top events by attendance", summary.TopEvents)
	fmt.Fprintln(w)
	writeRankTable(w, "Top rooms by usage", summary.TopRooms)

	if len(summary.FillPercentages) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Fill levels")
		for _, line := range summary.FillPercentages {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func writeRankTable(w io.Writer, title string, tiers [3][]string) {
	fmt.Fprintln(w, title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Entries"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, tier := range tiers {
		entries := "-"
		if len(tier) > 0 {
			entries = strings.Join(tier, ", ")
		}
		table.Append([]string{fmt.Sprintf("%d", i+1), entries})
	}
	table.Render()
}
