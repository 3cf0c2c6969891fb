package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.taskList(),
		m.logPane(),
	)
}

func (m *Model) taskList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TASKS") + "\n\n")

	end := min(m.ListOffset+m.ListHeight, len(m.Tasks))
	start := min(m.ListOffset, end)
	for i := start; i < end; i++ {
		s.WriteString(m.renderTaskRow(i, m.Tasks[i]) + "\n")
	}

	return listStyle.Width(m.ListWidth).Render(s.String())
}

func (m *Model) renderTaskRow(index int, task *TaskNode) string {
	rowStyle := taskStyle(task)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if task.Status != StatusDone && task.Status != StatusError {
			rowStyle = selectedStyle
		}
	}

	row := cursor + rowStyle.Render(taskIcon(task)+" "+task.Name)
	if task.Step != "" {
		row += " " + stepStyle.Render(task.Step)
	}
	return row
}

func taskIcon(task *TaskNode) string {
	switch task.Status {
	case StatusRunning:
		return "●"
	case StatusDone:
		return "✓"
	case StatusError:
		return "✗"
	default:
		return "○"
	}
}

func taskStyle(task *TaskNode) lipgloss.Style {
	switch task.Status {
	case StatusRunning:
		return taskRunningStyle
	case StatusDone:
		return taskDoneStyle
	case StatusError:
		return taskErrorStyle
	default:
		return taskPendingStyle
	}
}

func (m *Model) logPane() string {
	header := titleStyle.Render("LOGS (Waiting...)")
	var content string

	if node, ok := m.TaskMap[m.ActiveTaskName]; ok {
		status := " (Manual)"
		if m.FollowMode {
			status = " (Following)"
		}
		title := titleStyle
		if node.Status == StatusError {
			title = failureTitleStyle
		}
		header = title.Render("LOGS: " + node.Name + status)
		content = node.Term.View()
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			content,
		),
	)
}
