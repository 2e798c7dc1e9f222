// Package tui is a thin bubbletea viewer demonstrating the watch package
// under a second consumer: it runs one watch.Sequence pull loop per watched
// resource type, each as its own recursive tea.Cmd, and renders the merged
// event feed in a scrolling viewport.
package tui

import (
	"container/ring"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	corev1 "k8s.io/api/core/v1"

	"github.com/fteychene/k8s-resources-watcher-go/watch"
)

const maxFeedLines = 2000

// KeyMap holds the per-action key.Binding values, scoped to the handful of
// actions this viewer actually supports.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
}

func defaultKeyMap(quitKeys, helpKeys []string) KeyMap {
	return KeyMap{
		Quit: key.NewBinding(key.WithKeys(quitKeys...), key.WithHelp(quitKeys[0], "quit")),
		Help: key.NewBinding(key.WithKeys(helpKeys...), key.WithHelp(helpKeys[0], "help")),
	}
}

var (
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// podItemMsg and eventItemMsg each carry the next pull's command alongside
// the item, so Update can keep the recursive read loop alive.
type podItemMsg struct {
	item watch.WatchItem[corev1.Pod]
	next tea.Cmd
}

type eventItemMsg struct {
	item watch.WatchItem[corev1.Event]
	next tea.Cmd
}

// Model is the live-event viewer. It owns both sequences for the lifetime
// of the program; Close releases them once bubbletea exits.
type Model struct {
	podSeq   *watch.Sequence[corev1.Pod]
	eventSeq *watch.Sequence[corev1.Event]

	keys     KeyMap
	viewport viewport.Model
	feed     *ring.Ring
	feedLen  int

	width, height int
	quitting      bool
}

// New builds a Model over two already-open sequences: one for pods, one for
// events. Both namespaces come from whatever path the caller opened them
// against.
func New(podSeq *watch.Sequence[corev1.Pod], eventSeq *watch.Sequence[corev1.Event], quitKeys, helpKeys []string) Model {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return Model{
		podSeq:   podSeq,
		eventSeq: eventSeq,
		keys:     defaultKeyMap(quitKeys, helpKeys),
		viewport: vp,
		feed:     ring.New(maxFeedLines),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(watchPods(m.podSeq), watchEvents(m.eventSeq))
}

func watchPods(seq *watch.Sequence[corev1.Pod]) tea.Cmd {
	return func() tea.Msg {
		item := seq.Next()
		return podItemMsg{item: item, next: watchPods(seq)}
	}
}

func watchEvents(seq *watch.Sequence[corev1.Event]) tea.Cmd {
	return func() tea.Msg {
		item := seq.Next()
		return eventItemMsg{item: item, next: watchEvents(seq)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = msg.Height - 3
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case podItemMsg:
		if line := formatPodItem(msg.item); line != "" {
			m.appendLine(line)
		}
		return m, msg.next

	case eventItemMsg:
		if line := formatEventItem(msg.item); line != "" {
			m.appendLine(line)
		}
		return m, msg.next
	}

	return m, nil
}

func (m *Model) appendLine(line string) {
	m.feed.Value = line
	m.feed = m.feed.Next()
	if m.feedLen < maxFeedLines {
		m.feedLen++
	}

	var lines []string
	m.feed.Do(func(v interface{}) {
		if v != nil {
			lines = append(lines, v.(string))
		}
	})
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func formatPodItem(item watch.WatchItem[corev1.Pod]) string {
	ts := time.Now().Format("15:04:05")
	switch v := item.(type) {
	case watch.WatchResponse[corev1.Pod]:
		return fmt.Sprintf("%s %s pod/%s (rv=%s)", dimStyle.Render(ts), styleForKind(v.Kind).Render(string(v.Kind)), v.Data.Name, v.Data.ResourceVersion)
	case watch.InvalidResourceVersion:
		return fmt.Sprintf("%s %s pods: resourceVersion stale, new=%q", dimStyle.Render(ts), errorStyle.Render("RECONNECT"), v.NewVersion)
	case watch.NoData:
		return ""
	case watch.Error:
		return fmt.Sprintf("%s %s pods: %v", dimStyle.Render(ts), errorStyle.Render("ERROR"), v.Cause)
	default:
		return ""
	}
}

func formatEventItem(item watch.WatchItem[corev1.Event]) string {
	ts := time.Now().Format("15:04:05")
	switch v := item.(type) {
	case watch.WatchResponse[corev1.Event]:
		return fmt.Sprintf("%s %s event/%s: %s", dimStyle.Render(ts), styleForKind(v.Kind).Render(string(v.Kind)), v.Data.Name, v.Data.Message)
	case watch.InvalidResourceVersion:
		return fmt.Sprintf("%s %s events: resourceVersion stale, new=%q", dimStyle.Render(ts), errorStyle.Render("RECONNECT"), v.NewVersion)
	case watch.NoData:
		return ""
	case watch.Error:
		return fmt.Sprintf("%s %s events: %v", dimStyle.Render(ts), errorStyle.Render("ERROR"), v.Cause)
	default:
		return ""
	}
}

func styleForKind(kind watch.EventKind) lipgloss.Style {
	switch kind {
	case watch.EventAdded:
		return addedStyle
	case watch.EventModified, watch.EventBookmark:
		return modifiedStyle
	case watch.EventDeleted:
		return deletedStyle
	default:
		return dimStyle
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	header := headerStyle.Render("k8s-watch-tui — pods & events")
	return header + "\n" + m.viewport.View()
}

// Close releases both underlying sequences' connections.
func (m Model) Close() {
	if m.podSeq != nil {
		m.podSeq.Close()
	}
	if m.eventSeq != nil {
		m.eventSeq.Close()
	}
}
