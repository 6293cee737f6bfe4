// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

// colorWriter wraps w so ANSI colors are downsampled to the terminal's
// capabilities. Production output strips colors entirely.
func (s *Server) colorWriter(w io.Writer) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if s.environment == EnvironmentProduction {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

// printStartupBanner writes the startup banner to stdout before the accept
// loop begins.
func (s *Server) printStartupBanner() {
	w := s.colorWriter(os.Stdout)

	art := figure.NewFigure(s.serviceName, "", false)
	asciiLines := art.Slicify()

	var gradientColors []string
	if s.environment == EnvironmentDevelopment {
		gradientColors = []string{"12", "14", "10", "11"}
	} else {
		gradientColors = []string{"10", "11"}
	}

	var styledArt strings.Builder
	for _, line := range asciiLines {
		if strings.TrimSpace(line) == "" {
			styledArt.WriteString("\n")
			continue
		}
		for i, char := range line {
			color := gradientColors[i%len(gradientColors)]
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
			styledArt.WriteString(style.Render(string(char)))
		}
		styledArt.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(14).
		PaddingLeft(2).
		Align(lipgloss.Left)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	disabledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	providerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	displayAddr := s.address
	if host := s.hostname; host != "" {
		if _, port, ok := strings.Cut(s.address, ":"); ok {
			displayAddr = host + ":" + port
		}
	} else if strings.HasPrefix(displayAddr, ":") {
		displayAddr = "0.0.0.0" + displayAddr
	}
	displayAddr = "gemini://" + displayAddr

	var output strings.Builder

	output.WriteString(categoryStyle.Render("Service") + "\n")
	output.WriteString(labelStyle.Render("Version:") + "  " + valueStyle.Foreground(lipgloss.Color("14")).Render(s.serviceVersion) + "\n")
	output.WriteString(labelStyle.Render("Environment:") + "  " + valueStyle.Foreground(lipgloss.Color("11")).Render(s.environment) + "\n")
	output.WriteString(labelStyle.Render("Address:") + "  " + valueStyle.Foreground(lipgloss.Color("10")).Render(displayAddr) + "\n")

	output.WriteString("\n" + categoryStyle.Render("Observability") + "\n")
	var metricsLine string
	if s.metrics != nil && s.metrics.ServerAddress() != "" {
		metricsAddr := s.metrics.ServerAddress()
		if strings.HasPrefix(metricsAddr, ":") {
			metricsAddr = "0.0.0.0" + metricsAddr
		}
		metricsAddr = "http://" + metricsAddr + s.metrics.Path()
		metricsLine = labelStyle.Render("Metrics:") + "  " +
			valueStyle.Foreground(lipgloss.Color("13")).Render(metricsAddr) + "  " +
			providerStyle.Render(fmt.Sprintf("[%s]", s.metrics.Provider()))
	} else {
		metricsLine = labelStyle.Render("Metrics:") + "  " + disabledStyle.Render("Disabled")
	}
	output.WriteString(metricsLine + "\n")

	fmt.Fprintln(w)
	fmt.Fprint(w, styledArt.String())
	fmt.Fprintln(w)
	fmt.Fprint(w, output.String())

	if s.environment == EnvironmentDevelopment {
		if routes := s.router.Routes(); len(routes) > 0 {
			fmt.Fprintln(w)
			s.renderRoutesTable(w, 80)
		}
	}

	fmt.Fprintln(w)
}

// renderRoutesTable renders the frozen route table in registration order,
// which is also matching order.
func (s *Server) renderRoutesTable(w io.Writer, width int) {
	routes := s.router.Routes()
	if len(routes) == 0 {
		return
	}

	useColors := s.environment == EnvironmentDevelopment
	patternStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	rows := make([][]string, 0, len(routes))
	maxPatternWidth := len("Pattern")
	maxHandlerWidth := len("Handler")
	for _, route := range routes {
		pattern := route.Pattern
		if useColors {
			pattern = patternStyle.Render(pattern)
		}
		maxPatternWidth = max(maxPatternWidth, len(route.Pattern))
		maxHandlerWidth = max(maxHandlerWidth, len(route.HandlerName))
		rows = append(rows, []string{pattern, route.HandlerName})
	}

	// borders (2) + separator (1) + per-column padding (4) + content
	minWidth := 2 + 1 + 4 + maxPatternWidth + maxHandlerWidth

	terminalWidth := width
	if file, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(file.Fd())); err == nil && tw > 0 {
			terminalWidth = tw
		}
	}

	tableWidth := max(minWidth, width)
	if terminalWidth > 0 {
		tableWidth = min(tableWidth, terminalWidth)
	}
	tableWidth = max(60, tableWidth)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(func() lipgloss.Style {
			if useColors {
				return lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
			}
			return lipgloss.NewStyle()
		}()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == 0 && useColors {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("Pattern", "Handler").
		Rows(rows...).
		Width(tableWidth)

	fmt.Fprintln(w, t.Render())
}

// PrintRoutes writes the route table to stdout, for development use.
func (s *Server) PrintRoutes() {
	if len(s.router.Routes()) == 0 {
		fmt.Println("No routes registered")
		return
	}
	s.renderRoutesTable(s.colorWriter(os.Stdout), 120)
}
