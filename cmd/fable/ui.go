package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/fable-engine/fable/pkg/engine"
	"github.com/fable-engine/fable/pkg/world"
)

const placeholderText = "What do you do?"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// playUI is the BubbleTea model for a local play session.
type playUI struct {
	w        *world.World
	sess     *engine.Session
	saveFile string

	viewport   viewport.Model
	textarea   textarea.Model
	transcript []string
	ready      bool
	width      int
	height     int
}

func newPlayUI(w *world.World, sess *engine.Session, saveFile string) *playUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 300
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	ui := &playUI{
		w:        w,
		sess:     sess,
		saveFile: saveFile,
		viewport: vp,
		textarea: ta,
	}

	ui.appendLine(titleStyle.Render(w.Title))
	if w.Description != "" {
		ui.appendLine(sceneStyle.Render(w.Description))
	}
	if res, err := sess.Look(); err == nil {
		ui.appendResult(res)
	}
	ui.appendLine(hintStyle.Render("(type commands; \"save\" and \"quit\" work too; ctrl+y copies the transcript)"))
	return ui
}

func (ui *playUI) Init() tea.Cmd {
	return textarea.Blink
}

func (ui *playUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)
	ui.textarea, taCmd = ui.textarea.Update(msg)
	ui.viewport, vpCmd = ui.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		ui.viewport.Width = msg.Width - 2
		ui.viewport.Height = msg.Height - 4
		ui.textarea.SetWidth(msg.Width - 4)
		ui.ready = true
		ui.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return ui, tea.Quit
		case tea.KeyCtrlY:
			_ = clipboard.WriteAll(strings.Join(ui.transcript, "\n"))
			return ui, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(ui.textarea.Value())
			ui.textarea.Reset()
			if input == "" {
				return ui, nil
			}
			if cmd := ui.handleInput(input); cmd != nil {
				return ui, cmd
			}
		}
	}

	return ui, tea.Batch(taCmd, vpCmd)
}

// handleInput runs one command cycle and appends the result to the
// transcript. Returns a quit command when the player asks to leave.
func (ui *playUI) handleInput(input string) tea.Cmd {
	ui.appendLine(playerStyle.Render("> " + input))

	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return tea.Quit
	case "save":
		ui.save()
		return nil
	}

	res, err := ui.sess.Step(input)
	if err != nil {
		ui.appendLine(errStyle.Render("Something went wrong: " + err.Error()))
		return nil
	}
	if res.NoMatch {
		ui.appendLine(fmt.Sprintf("You can't %q here.", res.Input))
		ui.refresh()
		return nil
	}
	ui.appendResult(res)
	return nil
}

func (ui *playUI) save() {
	if ui.saveFile == "" {
		ui.appendLine(errStyle.Render("No save file configured. Run with --save <file>."))
		return
	}
	data, err := ui.sess.Snapshot()
	if err == nil {
		err = writeSaveFile(ui.saveFile, data)
	}
	if err != nil {
		ui.appendLine(errStyle.Render("Save failed: " + err.Error()))
		return
	}
	ui.appendLine(hintStyle.Render("Game saved to " + ui.saveFile))
}

// appendResult renders one turn: narrative text, then the scene's visible
// surroundings or the open dialogue options.
func (ui *playUI) appendResult(res *engine.TurnResult) {
	if res.Output != "" {
		if res.Speaker != "" {
			ui.appendLine(speakerStyle.Render(res.Speaker+": ") + res.Output)
		} else {
			ui.appendLine(sceneStyle.Render(res.Output))
		}
	}

	if len(res.DialogueOptions) > 0 {
		var b strings.Builder
		for i, opt := range res.DialogueOptions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, opt)
		}
		ui.appendLine(strings.TrimRight(b.String(), "\n"))
		return
	}

	if res.Scene != nil {
		ui.appendLine(hintStyle.Render(describeSurroundings(res.Scene)))
	}
}

func describeSurroundings(sc *engine.EffectiveScene) string {
	var parts []string
	if len(sc.Exits) > 0 {
		names := make([]string, len(sc.Exits))
		for i, e := range sc.Exits {
			names[i] = e.Name
		}
		parts = append(parts, "Exits: "+strings.Join(names, ", "))
	}
	if len(sc.Items) > 0 {
		names := make([]string, len(sc.Items))
		for i, it := range sc.Items {
			names[i] = it.Name
		}
		parts = append(parts, "You see: "+strings.Join(names, ", "))
	}
	if len(sc.Characters) > 0 {
		names := make([]string, len(sc.Characters))
		for i, c := range sc.Characters {
			names[i] = c.Name
		}
		parts = append(parts, "Present: "+strings.Join(names, ", "))
	}
	return strings.Join(parts, "  ")
}

func (ui *playUI) appendLine(line string) {
	ui.transcript = append(ui.transcript, line)
	ui.refresh()
}

func (ui *playUI) refresh() {
	width := ui.viewport.Width
	if width <= 0 {
		width = 80
	}
	content := wordwrap.String(strings.Join(ui.transcript, "\n\n"), width)
	ui.viewport.SetContent(content)
	ui.viewport.GotoBottom()
}

func (ui *playUI) View() string {
	if !ui.ready {
		return "Loading..."
	}
	return fmt.Sprintf("%s\n\n%s", ui.viewport.View(), ui.textarea.View())
}
