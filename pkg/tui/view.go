package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/convograph/pkg/explorer"
	"github.com/dd0wney/convograph/pkg/graph"
)

func (m *Model) View() string {
	if !m.mounted {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(m.header())
	s.WriteString("\n")

	switch m.explorer.State() {
	case explorer.StateLoading:
		s.WriteString(fmt.Sprintf("\n  %s Loading...\n", m.spinner.View()))
	case explorer.StateError:
		s.WriteString("\n")
		s.WriteString(errorBoxStyle.Render(errorStyle.Render("✗ "+m.explorer.Message()) + "\n\npress r to retry"))
		s.WriteString("\n")
	case explorer.StateReady:
		graphView := m.explorer.Render(m.canvas, m.viewport.Transform())
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, graphView, " ", m.panel()))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m *Model) header() string {
	title := titleStyle.Render("Conversation Graph")
	var status string
	if sim := m.explorer.Simulation(); sim != nil {
		status = fmt.Sprintf("%d nodes · %d links · α %.3f · zoom %.2fx",
			len(sim.Nodes()), len(sim.Links()), sim.Alpha(), m.viewport.Scale())
		if m.status != "" {
			status += " · " + m.status
		}
	}
	return title + statusStyle.Render(status)
}

func (m *Model) panel() string {
	var sections []string

	node, hasNode := m.explorer.SelectedNode()
	if !hasNode && m.lastNode != nil {
		node, hasNode = *m.lastNode, true
	}
	if hasNode {
		sections = append(sections, nodeDetails(node))
	}

	edge, hasEdge := m.explorer.SelectedEdge()
	if !hasEdge && m.lastEdge != nil {
		edge, hasEdge = *m.lastEdge, true
	}
	if hasEdge {
		sections = append(sections, edgeDetails(edge))
	}

	if len(sections) == 0 {
		sections = append(sections, statusStyle.UnsetMarginLeft().Render("Click a node or edge"))
	}
	sections = append(sections, m.legend())

	return panelStyle.Width(panelWidth - 4).Render(strings.Join(sections, "\n\n"))
}

func nodeDetails(n graph.Node) string {
	content := n.Content
	if content == "" {
		content = "No Content"
	}
	lines := []string{
		headerStyle.Render("Node"),
		labelStyle.Render("ID: ") + n.ID,
		labelStyle.Render("Type: ") + string(n.Type),
		labelStyle.Render("Content: ") + content,
	}
	if n.User != "" {
		lines = append(lines, labelStyle.Render("User: ")+n.User)
	}
	return strings.Join(lines, "\n")
}

func edgeDetails(e graph.Edge) string {
	return strings.Join([]string{
		headerStyle.Render("Edge"),
		labelStyle.Render("Type: ") + string(e.Type),
		labelStyle.Render("From: ") + e.From,
		labelStyle.Render("To: ") + e.To,
	}, "\n")
}

func (m *Model) legend() string {
	lines := []string{headerStyle.Render("Legend")}
	for _, entry := range m.explorer.Style().Legend() {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render("●")
		lines = append(lines, dot+" "+entry.Label)
	}
	return strings.Join(lines, "\n")
}
