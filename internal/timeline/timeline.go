// Package timeline builds the chart model for the project Gantt view.
// Render is a pure function of the loaded rows and the client's selection;
// there is no process-global chart state.
package timeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/steamtrack/project-tracking-api/internal/models"
)

const dateFormat = "2006-01-02"

// ItemKind distinguishes the two row types sharing the chart.
type ItemKind string

const (
	KindTask    ItemKind = "task"
	KindMeeting ItemKind = "meeting"
)

// Selection identifies the last-clicked chart item. It lives only in the
// request; a selection pointing at a deleted row renders as no selection.
type Selection struct {
	Kind ItemKind
	ID   uint64
}

// ParseSelection parses the "kind:id" form used by the timeline endpoint,
// e.g. "task:12" or "meeting:3". An empty or malformed value means no
// selection.
func ParseSelection(raw string) (Selection, bool) {
	kind, idStr, found := strings.Cut(raw, ":")
	if !found {
		return Selection{}, false
	}

	k := ItemKind(kind)
	if k != KindTask && k != KindMeeting {
		return Selection{}, false
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return Selection{}, false
	}

	return Selection{Kind: k, ID: id}, true
}

// String renders the selection back into its wire form.
func (s Selection) String() string {
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}

// Bar is one horizontal bar on the chart. Meetings render as single-day
// bars with the fixed "meeting" status label.
type Bar struct {
	Kind        ItemKind `json:"kind"`
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Status      string   `json:"status"`
	StatusLabel string   `json:"status_label"`
	Color       string   `json:"color"`
	Selected    bool     `json:"selected"`
}

// Detail is the text block shown for the selected item.
type Detail struct {
	Kind        ItemKind `json:"kind"`
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

// ChartModel is the full render of the timeline for one request.
type ChartModel struct {
	Bars     []Bar   `json:"bars"`
	Today    string  `json:"today"`
	Selected *Detail `json:"selected,omitempty"`
}

var statusColors = map[models.TaskStatus]string{
	models.TaskStatusNotStarted: "#3CDBEA",
	models.TaskStatusInProgress: "#FD8A17",
	models.TaskStatusDone:       "#63D233",
}

var statusLabels = map[models.TaskStatus]string{
	models.TaskStatusNotStarted: "À commencer",
	models.TaskStatusInProgress: "En cours",
	models.TaskStatusDone:       "Terminé",
}

const meetingColor = "#9B59B6"

// Render derives the chart model from the project's tasks and meetings.
// Tasks sort by status, then start date, then end date; meetings follow,
// sorted by date. The selection is resolved against the freshly loaded rows
// so a stale click on a deleted item simply yields no detail block.
func Render(tasks []models.Task, meetings []models.Meeting, sel Selection, today time.Time) ChartModel {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() < b.Status.Rank()
		}
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.EndDate.Before(b.EndDate)
	})

	sortedMeetings := make([]models.Meeting, len(meetings))
	copy(sortedMeetings, meetings)
	sort.SliceStable(sortedMeetings, func(i, j int) bool {
		return sortedMeetings[i].Date.Before(sortedMeetings[j].Date)
	})

	model := ChartModel{
		Bars:  make([]Bar, 0, len(sorted)+len(sortedMeetings)),
		Today: today.Format(dateFormat),
	}

	for _, task := range sorted {
		selected := sel.Kind == KindTask && sel.ID == task.ID
		model.Bars = append(model.Bars, Bar{
			Kind:        KindTask,
			ID:          task.ID,
			Name:        task.Name,
			StartDate:   task.StartDate.Format(dateFormat),
			EndDate:     task.EndDate.Format(dateFormat),
			Status:      string(task.Status),
			StatusLabel: statusLabels[task.Status],
			Color:       statusColors[task.Status],
			Selected:    selected,
		})
		if selected {
			model.Selected = &Detail{
				Kind:        KindTask,
				ID:          task.ID,
				Name:        task.Name,
				Description: task.Description,
				StartDate:   task.StartDate.Format(dateFormat),
				EndDate:     task.EndDate.Format(dateFormat),
			}
		}
	}

	for _, meeting := range sortedMeetings {
		selected := sel.Kind == KindMeeting && sel.ID == meeting.ID
		date := meeting.Date.Format(dateFormat)
		model.Bars = append(model.Bars, Bar{
			Kind:        KindMeeting,
			ID:          meeting.ID,
			Name:        meeting.Name,
			StartDate:   date,
			EndDate:     date,
			Status:      models.MeetingStatusLabel,
			StatusLabel: models.MeetingStatusLabel,
			Color:       meetingColor,
			Selected:    selected,
		})
		if selected {
			model.Selected = &Detail{
				Kind:        KindMeeting,
				ID:          meeting.ID,
				Name:        meeting.Name,
				Description: meeting.Description,
				StartDate:   date,
				EndDate:     date,
			}
		}
	}

	return model
}
