package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/galaxyprofile/pkg/observability"
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Progress View
// =============================================================================

// stageMsg announces the stage a task has moved on to.
type stageMsg string

// taskDoneMsg ends the progress view.
type taskDoneMsg struct{ err error }

// progressModel shows completed stages and a spinner for the current one.
type progressModel struct {
	spinner  spinner.Model
	title    string
	stage    string
	finished []string
	start    time.Time
	err      error
	done     bool
	aborted  bool
}

func newProgressModel(title string) progressModel {
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleIconSpinner)),
		title:   title,
		start:   time.Now(),
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case stageMsg:
		if m.stage != "" {
			m.finished = append(m.finished, m.stage)
		}
		m.stage = string(msg)
	case taskDoneMsg:
		m.err = msg.err
		m.done = true
		if m.stage != "" && msg.err == nil {
			m.finished = append(m.finished, m.stage)
			m.stage = ""
		}
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	for _, s := range m.finished {
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + s + "\n")
	}
	switch {
	case m.done && m.err != nil && m.stage != "":
		b.WriteString(styleIconError.Render(iconError) + " " + m.stage + "\n")
	case !m.done && m.stage != "":
		elapsed := time.Since(m.start).Round(100 * time.Millisecond)
		b.WriteString(fmt.Sprintf("%s %s %s\n", m.spinner.View(), StyleDim.Render(m.stage), StyleDim.Render(elapsed.String())))
	}
	return b.String()
}

// =============================================================================
// Task Runner
// =============================================================================

// taskFunc is a unit of work that reports its stages through stage.
type taskFunc func(ctx context.Context, stage func(string)) error

// runTask runs fn behind the progress view when interactive is set, and
// with plain log lines otherwise. Aborting the view cancels fn's context.
func runTask(ctx context.Context, title string, interactive bool, fn taskFunc) error {
	logger := loggerFromContext(ctx)
	if !interactive {
		return fn(ctx, func(s string) { logger.Info(s) })
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(title), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	result := make(chan error, 1)
	go func() {
		err := fn(ctx, func(s string) { p.Send(stageMsg(s)) })
		result <- err
		p.Send(taskDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-result
		if parent.Err() != nil {
			return parent.Err()
		}
		return err
	}
	if m, ok := final.(progressModel); ok && m.aborted {
		cancel()
		<-result
		return context.Canceled
	}
	return <-result
}

// stageHooks turns pipeline events into progress stages.
type stageHooks struct {
	observability.NoopPipelineHooks
	stage func(string)
}

func (h stageHooks) OnFetchStart(_ context.Context, user string) {
	h.stage("Fetching GitHub data for " + user)
}

func (h stageHooks) OnRenderStart(_ context.Context, artifacts []string) {
	h.stage(fmt.Sprintf("Rendering %d documents", len(artifacts)))
}

// reportPipeline also routes pipeline events to stage until the returned
// function is called.
func reportPipeline(stage func(string)) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(observability.Pipelines(prev, stageHooks{stage: stage}))
	return func() { observability.SetPipelineHooks(prev) }
}
