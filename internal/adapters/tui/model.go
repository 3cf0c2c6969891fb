package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/comfortmap/internal/adapters/telemetry"
)

const (
	taskListWidthRatio = 0.3
	logPaneBorderWidth = 4
)

// TaskStatus represents the current state of a job.
type TaskStatus string

const (
	// StatusPending indicates the job is waiting to start.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the job is executing.
	StatusRunning TaskStatus = "Running"
	// StatusDone indicates the job completed successfully.
	StatusDone TaskStatus = "Done"
	// StatusError indicates the job failed.
	StatusError TaskStatus = "Error"
)

// TaskNode is one planned job in the list.
type TaskNode struct {
	Name      string
	Status    TaskStatus
	Step      string // Name of the latest stage span, kept on failure.
	SpanID    string // Root span of the job.
	Term      *Vterm
	StartTime time.Time
	EndTime   time.Time
}

// Model represents the TUI state.
type Model struct {
	Tasks          []*TaskNode
	TaskMap        map[string]*TaskNode
	SpanMap        map[string]*TaskNode
	ActiveTaskName string
	SelectedIdx    int
	ListOffset     int
	ListHeight     int
	ListWidth      int
	LogWidth       int
	LogHeight      int
	FollowMode     bool

	// OnResize is called with the log pane size after every layout change.
	OnResize func(rows, cols int)
	// Interrupt is called when the user quits before the run has finished.
	Interrupt func()
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) selectedTask() *TaskNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Tasks) {
		return m.Tasks[m.SelectedIdx]
	}
	return nil
}

func (m *Model) updateActiveView() {
	node := m.selectedTask()
	if node == nil {
		return
	}
	m.ActiveTaskName = node.Name
	if m.FollowMode {
		node.Term.ScrollToBottom()
	}
}

func (m *Model) focus(name string) {
	if !m.FollowMode {
		return
	}
	for i, t := range m.Tasks {
		if t.Name == name {
			m.SelectedIdx = i
			break
		}
	}
	m.ensureVisible()
	m.updateActiveView()
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)

	case telemetry.MsgInitTasks:
		m.Tasks = make([]*TaskNode, len(msg.Tasks))
		m.TaskMap = make(map[string]*TaskNode, len(msg.Tasks))
		m.SpanMap = make(map[string]*TaskNode)
		for i, name := range msg.Tasks {
			term := NewVterm()
			if m.LogWidth > 0 && m.LogHeight > 0 {
				term.SetWidth(m.LogWidth)
				term.SetHeight(m.LogHeight)
			}
			m.Tasks[i] = &TaskNode{Name: name, Status: StatusPending, Term: term}
			m.TaskMap[name] = m.Tasks[i]
		}

	case telemetry.MsgTaskStart:
		if parent, ok := m.SpanMap[msg.ParentID]; ok && msg.ParentID != "" {
			m.SpanMap[msg.SpanID] = parent
			parent.Step = msg.Name
			break
		}
		if node, ok := m.TaskMap[msg.Name]; ok && node.SpanID == "" {
			node.SpanID = msg.SpanID
			node.Status = StatusRunning
			node.StartTime = msg.StartTime
			m.SpanMap[msg.SpanID] = node
			m.focus(node.Name)
		}

	case telemetry.MsgTaskLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Term.Write(msg.Data)
		}

	case telemetry.MsgTaskComplete:
		node, ok := m.SpanMap[msg.SpanID]
		if !ok || node.SpanID != msg.SpanID {
			break
		}
		node.EndTime = msg.EndTime
		if msg.Err != nil {
			node.Status = StatusError
		} else {
			node.Status = StatusDone
			node.Step = ""
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.Interrupt != nil {
			m.Interrupt()
		}
		return tea.Quit
	case "k", "up":
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
			m.FollowMode = false
			m.ensureVisible()
			m.updateActiveView()
		}
	case "j", "down":
		if m.SelectedIdx < len(m.Tasks)-1 {
			m.SelectedIdx++
			m.FollowMode = false
			m.ensureVisible()
			m.updateActiveView()
		}
	case "esc":
		m.FollowMode = true
		for i, t := range m.Tasks {
			if t.Status == StatusRunning {
				m.SelectedIdx = i
				break
			}
		}
		m.ensureVisible()
		m.updateActiveView()
	default:
		if node, ok := m.TaskMap[m.ActiveTaskName]; ok {
			node.Term.Update(msg)
		}
	}
	return nil
}

// layout splits the window into a task list and a log pane, 30/70.
func (m *Model) layout(width, height int) {
	m.ListWidth = int(float64(width) * taskListWidthRatio)
	m.LogWidth = width - m.ListWidth - logPaneBorderWidth
	m.LogHeight = height - lipgloss.Height(titleStyle.Render("LOGS"))
	m.ListHeight = height - lipgloss.Height(titleStyle.Render("TASKS")+"\n\n")
	m.ensureVisible()

	for _, node := range m.Tasks {
		node.Term.SetWidth(m.LogWidth)
		node.Term.SetHeight(m.LogHeight)
	}

	if m.OnResize != nil && m.LogWidth > 0 && m.LogHeight > 0 {
		m.OnResize(m.LogHeight, m.LogWidth)
	}
}
