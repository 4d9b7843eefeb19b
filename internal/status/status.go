// SPDX-License-Identifier: MPL-2.0

// Package status renders the active selection as a single line. It is the
// stock observer behind the session's status display contract; it never
// feeds anything back into the core.
package status

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// placeholder is shown for an unset target or launch configuration.
const placeholder = "Default"

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// Line holds the three status fields and renders them on demand.
type Line struct {
	mu            sync.Mutex
	configuration string
	target        string
	launch        string
}

// NewLine creates an empty status line.
func NewLine() *Line {
	return &Line{}
}

func (l *Line) SetConfiguration(name string) {
	l.mu.Lock()
	l.configuration = name
	l.mu.Unlock()
}

func (l *Line) SetTarget(name string) {
	l.mu.Lock()
	l.target = name
	l.mu.Unlock()
}

func (l *Line) SetLaunchConfiguration(encoded string) {
	l.mu.Lock()
	l.launch = encoded
	l.mu.Unlock()
}

// Render returns the styled single-line form.
func (l *Line) Render() string {
	l.mu.Lock()
	configuration, target, launch := l.configuration, l.target, l.launch
	l.mu.Unlock()

	sep := separatorStyle.Render(" | ")
	parts := []string{
		field("configuration", orPlaceholder(configuration)),
		field("target", orPlaceholder(target)),
		field("launch", orPlaceholder(launch)),
	}
	return strings.Join(parts, sep)
}

// WriteTo writes the rendered line followed by a newline.
func (l *Line) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintln(w, l.Render())
	return int64(n), err
}

func field(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}

func orPlaceholder(value string) string {
	if value == "" {
		return placeholder
	}
	return value
}
