package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"valuescan/internal/advisor"
	"valuescan/internal/config"
	"valuescan/internal/dashboard"
	"valuescan/internal/domain"
	"valuescan/internal/scan"
	"valuescan/internal/util"
	"valuescan/internal/valuation"
)

// Styles.
var (
	headerBarStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	colHeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	symbolStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	symbolHlStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")) // brighter blue for highlight
	gainStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	scoreHighStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	scoreMidStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sectionStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	buyStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	holdStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	sellStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9"))
	searchBarStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")) // black on yellow
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	suggestHlStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	barFillStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	highlightBG     = lipgloss.Color("236") // dark grey background
)

func recommendationStyle(r domain.Recommendation) lipgloss.Style {
	switch r {
	case domain.RecommendationBuy:
		return buyStyle
	case domain.RecommendationSell:
		return sellStyle
	default:
		return holdStyle
	}
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return scoreHighStyle
	case score >= 60:
		return scoreMidStyle
	default:
		return dimStyle
	}
}

// hlStyle returns a copy of s with the highlight background applied when hl is true.
func hlStyle(s lipgloss.Style, hl bool) lipgloss.Style {
	if hl {
		return s.Background(highlightBG)
	}
	return s
}

// Messages.
type stateMsg dashboard.State
type startedMsg struct{}

// waitForUpdate blocks until the controller signals a change, then delivers
// a fresh state snapshot. The handler re-issues it so the subscription
// survives for the life of the program.
func waitForUpdate(ctrl *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		<-ctrl.Updates()
		return stateMsg(ctrl.Snapshot())
	}
}

// Model.
type model struct {
	ctrl   *dashboard.Controller
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	state  dashboard.State
	cursor int

	// Ticker search.
	searching   bool
	query       string
	suggestions []dashboard.Ticker
	suggestIdx  int

	viewport      viewport.Model
	ready         bool
	width, height int
}

func initialModel(ctrl *dashboard.Controller, ctx context.Context, cancel context.CancelFunc, logger *slog.Logger) model {
	return model{
		ctrl:   ctrl,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		state:  ctrl.Snapshot(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForUpdate(m.ctrl),
		func() tea.Msg { return startedMsg{} },
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "s":
			ctrl, ctx := m.ctrl, m.ctx
			return m, func() tea.Msg { ctrl.ScanForValue(ctx); return nil }
		case "r":
			ctrl, ctx := m.ctrl, m.ctx
			return m, func() tea.Msg { ctrl.LoadSnapshot(ctx); return nil }
		case "/":
			m.searching = true
			m.query = ""
			m.suggestions = nil
			m.suggestIdx = -1
			return m, nil
		case "b", "esc":
			ctrl := m.ctrl
			return m, func() tea.Msg { ctrl.Back(); return nil }
		case "enter":
			if m.state.View == dashboard.ViewList && m.cursor < len(m.state.Candidates) {
				cand := m.state.Candidates[m.cursor]
				ctrl, ctx := m.ctrl, m.ctx
				return m, func() tea.Msg { ctrl.SelectCandidate(ctx, cand); return nil }
			}
			return m, nil
		case "up":
			if m.state.View == dashboard.ViewList && m.cursor > 0 {
				m.cursor--
				m.syncContent()
			}
			return m, nil
		case "down":
			if m.state.View == dashboard.ViewList && m.cursor < len(m.state.Candidates)-1 {
				m.cursor++
				m.syncContent()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH := 1
		footerH := 1
		vpHeight := m.height - headerH - footerH
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
			m.syncContent()
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		return m, nil

	case startedMsg:
		ctrl, ctx := m.ctrl, m.ctx
		return m, func() tea.Msg { ctrl.LoadSnapshot(ctx); return nil }

	case stateMsg:
		prevView := m.state.View
		m.state = dashboard.State(msg)
		if m.cursor >= len(m.state.Candidates) {
			m.cursor = 0
		}
		m.syncContent()
		if m.state.View != prevView {
			m.viewport.GotoTop()
		}
		return m, waitForUpdate(m.ctrl)
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.searching = false
		return *m, nil
	case "enter":
		symbol := strings.ToUpper(strings.TrimSpace(m.query))
		if m.suggestIdx >= 0 && m.suggestIdx < len(m.suggestions) {
			symbol = m.suggestions[m.suggestIdx].Symbol
		}
		m.searching = false
		if symbol == "" {
			return *m, nil
		}
		ctrl, ctx := m.ctrl, m.ctx
		return *m, func() tea.Msg { ctrl.SelectTicker(ctx, symbol); return nil }
	case "backspace":
		if len(m.query) > 0 {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
			m.refreshSuggestions()
		}
		return *m, nil
	case "up":
		if m.suggestIdx > 0 {
			m.suggestIdx--
		}
		return *m, nil
	case "down", "tab":
		if m.suggestIdx < len(m.suggestions)-1 {
			m.suggestIdx++
		}
		return *m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.query += string(msg.Runes)
		m.refreshSuggestions()
	}
	return *m, nil
}

func (m *model) refreshSuggestions() {
	m.suggestions = dashboard.Suggest(m.query)
	if len(m.suggestions) > 0 {
		m.suggestIdx = 0
	} else {
		m.suggestIdx = -1
	}
}

func (m *model) syncContent() {
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerText := fmt.Sprintf(" valuescan    %s ", m.state.Status)
	headerBar := headerBarStyle.Render(padOrTrunc(headerText, m.width))

	var footerLeft string
	switch {
	case m.searching:
		footerLeft = " enter analyze  up/dn pick  esc cancel"
	case m.state.View == dashboard.ViewDetail:
		footerLeft = " b back  pgup/dn scroll  q quit"
	default:
		footerLeft = " up/dn select  enter analyze  s scan  r refresh  / search  q quit"
	}
	pct := m.viewport.ScrollPercent() * 100
	footerRight := fmt.Sprintf("%.0f%% ", pct)
	gap := m.width - len(footerLeft) - len(footerRight)
	if gap < 0 {
		gap = 0
	}
	footerBar := footerBarStyle.Render(padOrTrunc(footerLeft+strings.Repeat(" ", gap)+footerRight, m.width))

	if m.searching {
		searchBar := searchBarStyle.Render(padOrTrunc(" Ticker: "+m.query+"█ ", m.width))
		var b strings.Builder
		b.WriteString(searchBar)
		b.WriteString("\n")
		for i, s := range m.suggestions {
			line := fmt.Sprintf("  %-8s %s", s.Symbol, s.Name)
			if i == m.suggestIdx {
				b.WriteString(suggestHlStyle.Render(line))
			} else {
				b.WriteString(suggestionStyle.Render(line))
			}
			b.WriteString("\n")
		}
		body := b.String()
		fill := m.height - 2 - strings.Count(body, "\n")
		if fill > 0 {
			body += strings.Repeat("\n", fill)
		}
		return headerBar + "\n" + body + footerBar
	}

	return headerBar + "\n" + m.viewport.View() + "\n" + footerBar
}

func (m model) renderContent() string {
	if m.state.View == dashboard.ViewDetail {
		return m.renderDetail()
	}
	return m.renderList()
}

func (m model) renderList() string {
	var b strings.Builder

	if m.state.ScanMode {
		b.WriteString("\n")
		b.WriteString(renderProgressBar(m.state.Progress, m.width))
		b.WriteString("\n\n")
	}

	if len(m.state.Candidates) == 0 {
		if !m.state.Loading {
			b.WriteString(dimStyle.Render("  (no candidates; press s to scan or r to load the watchlist)"))
			b.WriteString("\n")
		}
		return b.String()
	}

	colLine := fmt.Sprintf("  %-3s %-8s %-26s %-20s %9s %8s %8s %5s  %s",
		"#", "Symbol", "Name", "Sector", "Price", "Chg", "MktCap", "Score", "Reason")
	b.WriteString(colHeaderStyle.Render(colLine))
	b.WriteString("\n")

	reasonWidth := m.width - 96
	if reasonWidth < 10 {
		reasonWidth = 10
	}

	for i, c := range m.state.Candidates {
		hl := i == m.cursor
		b.WriteString(hlStyle(dimStyle, hl).Render(fmt.Sprintf("  %-3d", i+1)))
		symStyle := symbolStyle
		if hl {
			symStyle = symbolHlStyle
		}
		b.WriteString(hlStyle(symStyle, hl).Render(fmt.Sprintf(" %-8s", c.Symbol)))
		b.WriteString(hlStyle(lipgloss.NewStyle(), hl).Render(fmt.Sprintf(" %-26s", dashboard.Truncate(c.Name, 26))))
		b.WriteString(hlStyle(dimStyle, hl).Render(fmt.Sprintf(" %-20s", dashboard.Truncate(c.Sector, 20))))
		b.WriteString(hlStyle(lipgloss.NewStyle(), hl).Render(fmt.Sprintf(" %9s", dashboard.FormatPrice(c.Price))))
		chStyle := gainStyle
		if c.ChangePercent < 0 {
			chStyle = lossStyle
		}
		b.WriteString(hlStyle(chStyle, hl).Render(fmt.Sprintf(" %8s", dashboard.FormatChange(c.ChangePercent))))
		b.WriteString(hlStyle(dimStyle, hl).Render(fmt.Sprintf(" %8s", dashboard.FormatMarketCap(c.MarketCap))))
		b.WriteString(hlStyle(scoreStyle(c.Score), hl).Render(fmt.Sprintf(" %5d", c.Score)))
		b.WriteString(hlStyle(dimStyle, hl).Render("  " + dashboard.Truncate(c.Reason, reasonWidth)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderProgressBar(p scan.Progress, width int) string {
	barWidth := 40
	if width > 0 && width-30 < barWidth {
		barWidth = width - 30
	}
	if barWidth < 10 {
		barWidth = 10
	}
	filled := p.Percent * barWidth / 100
	bar := barFillStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("  %s %3d%%  %s", bar, p.Percent, statusStyle.Render(p.Status))
}

func (m model) renderDetail() string {
	var b strings.Builder
	c := m.state.Selected

	title := fmt.Sprintf("  %s  %s", c.Symbol, c.Name)
	b.WriteString(symbolStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s    %s    %s",
		dashboard.FormatPrice(c.Price),
		dashboard.FormatChange(c.ChangePercent),
		dashboard.FormatMarketCap(c.MarketCap))))
	b.WriteString("\n\n")

	if m.state.Loading {
		b.WriteString(statusStyle.Render("  Running deep analysis, this can take a minute..."))
		b.WriteString("\n")
		return b.String()
	}
	r := m.state.Analysis
	if r == nil {
		b.WriteString(dimStyle.Render("  (no analysis available)"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(recommendationStyle(r.Recommendation).Render(fmt.Sprintf(" %s ", r.Recommendation)))
	mosStyle := gainStyle
	if r.MarginOfSafety < 0 {
		mosStyle = lossStyle
	}
	b.WriteString(fmt.Sprintf("   intrinsic %s   margin of safety ",
		dashboard.FormatPrice(r.IntrinsicValue)))
	b.WriteString(mosStyle.Render(dashboard.FormatSigned(r.MarginOfSafety)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Valuation"))
	b.WriteString("\n")
	for _, vm := range r.ValuationMetrics {
		b.WriteString(fmt.Sprintf("    %-9s %9s  %s\n",
			vm.Method, dashboard.FormatPrice(vm.Value), dimStyle.Render(vm.Details)))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Sentiment"))
	b.WriteString("\n")
	sentStyle := dimStyle
	switch r.SentimentLabel {
	case domain.SentimentPositive:
		sentStyle = gainStyle
	case domain.SentimentNegative:
		sentStyle = lossStyle
	}
	b.WriteString(fmt.Sprintf("    %s (%.0f)  %s\n",
		sentStyle.Render(string(r.SentimentLabel)), r.SentimentScore, r.SentimentSummary))
	b.WriteString(fmt.Sprintf("    Sector: %s\n", r.SectorMomentum))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Strengths"))
	b.WriteString("\n")
	for _, s := range r.Strengths {
		b.WriteString(gainStyle.Render("    + "))
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Risks"))
	b.WriteString("\n")
	for _, s := range r.Risks {
		b.WriteString(lossStyle.Render("    - "))
		b.WriteString(s)
		b.WriteString("\n")
	}

	if len(r.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Sources"))
		b.WriteString("\n")
		for _, src := range r.Sources {
			title := src.Title
			if title == "" {
				title = src.URI
			}
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %s  %s\n", title, src.URI)))
		}
	}
	return b.String()
}

// padOrTrunc pads s with spaces to width runes, or truncates if longer.
func padOrTrunc(s string, width int) string {
	s = dashboard.Truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	demo := flag.Bool("demo", false, "run against the offline simulator instead of Gemini")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logPath := fmt.Sprintf("/tmp/valuescan-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := util.NewLogger(logFile, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var service advisor.Service
	if *demo {
		service = advisor.NewSimulator()
		logger.Info("running in demo mode")
	} else {
		gem, err := advisor.NewGemini(ctx, cfg.Gemini, logger)
		switch {
		case errors.Is(err, advisor.ErrNoCredential):
			logger.Warn("no API key configured, queries disabled")
		case err != nil:
			fmt.Fprintf(os.Stderr, "initializing Gemini client: %v\n", err)
			os.Exit(1)
		default:
			service = gem
		}
	}

	ctrl := dashboard.NewController(
		scan.NewScanner(service, cfg.Scan.PerSector, cfg.Scan.TopN, logger),
		valuation.NewAnalyzer(service, logger),
		logger,
	)

	p := tea.NewProgram(
		initialModel(ctrl, ctx, cancel, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
