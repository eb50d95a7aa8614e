package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/logging"
)

// CalcState represents the current state of the calculator form.
type CalcState int

const (
	// CalcStateBrowsing indicates the user is moving between rows.
	CalcStateBrowsing CalcState = iota
	// CalcStateEditing indicates a numeric field is being edited.
	CalcStateEditing
	// CalcStateQuitting indicates the form is closing.
	CalcStateQuitting
)

// ComputeFunc computes a result for a set of inputs.
type ComputeFunc func(context.Context, engine.Inputs) (engine.Result, error)

// calcRecalculateMsg is sent when a recalculation completes.
type calcRecalculateMsg struct {
	seq    int
	result engine.Result
	err    error
}

// Default dimensions for the calculator model.
const (
	calcDefaultWidth  = 80
	calcDefaultHeight = 30
)

// CalcModel is the Bubble Tea model for the interactive ECT form.
type CalcModel struct {
	ctx context.Context

	original engine.Inputs
	inputs   engine.Inputs
	fields   []string

	focusedRow int
	state      CalcState
	editor     textinput.Model
	editErr    error

	// seq numbers recalculations so a stale result never overwrites a newer one.
	seq    int
	result engine.Result
	err    error

	width  int
	height int

	computeFn ComputeFunc
}

// NewCalcModel creates a form for inputs. The result for the starting inputs
// is computed immediately; every later change is recomputed with computeFn.
// A nil computeFn uses engine.Compute.
func NewCalcModel(ctx context.Context, inputs engine.Inputs, computeFn ComputeFunc) *CalcModel {
	if computeFn == nil {
		computeFn = func(_ context.Context, in engine.Inputs) (engine.Result, error) {
			return engine.Compute(in)
		}
	}

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 32

	m := &CalcModel{
		ctx:       ctx,
		original:  inputs,
		inputs:    inputs,
		fields:    engine.InputFields(),
		state:     CalcStateBrowsing,
		editor:    editor,
		width:     calcDefaultWidth,
		height:    calcDefaultHeight,
		computeFn: computeFn,
	}
	m.result, m.err = computeFn(ctx, inputs)
	return m
}

// Init initializes the model.
func (m *CalcModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *CalcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case calcRecalculateMsg:
		if msg.seq == m.seq {
			m.result, m.err = msg.result, msg.err
		}
		return m, nil

	case tea.KeyMsg:
		if m.state == CalcStateEditing {
			return m.handleEditKey(msg)
		}
		return m.handleBrowseKey(msg)
	}

	return m, nil
}

// handleBrowseKey processes navigation keys.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *CalcModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalcStateQuitting
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = CalcStateQuitting
			return m, tea.Quit
		case "k":
			m.moveFocus(-1)
		case "j":
			m.moveFocus(1)
		case "r":
			m.inputs = m.original
			m.editErr = nil
			return m, m.triggerRecalculation()
		}

	case tea.KeyUp, tea.KeyShiftTab:
		m.moveFocus(-1)

	case tea.KeyDown, tea.KeyTab:
		m.moveFocus(1)

	case tea.KeyLeft:
		return m, m.cycle(-1)

	case tea.KeyRight:
		return m, m.cycle(1)

	case tea.KeyEnter:
		field := m.focusedField()
		if engine.Options(field) != nil {
			return m, m.cycle(1)
		}
		value, _ := m.inputs.Get(field)
		m.editor.SetValue(value)
		m.editor.CursorEnd()
		m.editErr = nil
		m.state = CalcStateEditing
		return m, m.editor.Focus()
	}

	return m, nil
}

// handleEditKey processes keys while a numeric field is being edited.
//
//nolint:exhaustive // Only handling relevant key types for text editing.
func (m *CalcModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalcStateQuitting
		return m, tea.Quit

	case tea.KeyEnter:
		if err := m.inputs.Set(m.focusedField(), m.editor.Value()); err != nil {
			m.editErr = err
			return m, nil
		}
		m.stopEditing()
		return m, m.triggerRecalculation()

	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *CalcModel) stopEditing() {
	m.editor.Blur()
	m.editor.Reset()
	m.editErr = nil
	m.state = CalcStateBrowsing
}

func (m *CalcModel) moveFocus(delta int) {
	next := m.focusedRow + delta
	if next >= 0 && next < len(m.fields) {
		m.focusedRow = next
	}
}

// cycle steps a categorical field through its options, wrapping at the ends.
// Numeric fields are left alone.
func (m *CalcModel) cycle(delta int) tea.Cmd {
	field := m.focusedField()
	options := engine.Options(field)
	if len(options) == 0 {
		return nil
	}

	current, _ := m.inputs.Get(field)
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	next := 0
	if idx >= 0 {
		next = (idx + delta + len(options)) % len(options)
	}
	if err := m.inputs.Set(field, options[next]); err != nil {
		m.editErr = err
		return nil
	}
	return m.triggerRecalculation()
}

// triggerRecalculation creates a command that recomputes the current inputs.
func (m *CalcModel) triggerRecalculation() tea.Cmd {
	m.seq++

	// Capture values before the command runs off the update loop.
	ctx := m.ctx
	seq := m.seq
	inputs := m.inputs
	computeFn := m.computeFn

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "tui").
		Int("seq", seq).
		Msg("recalculating")

	return func() tea.Msg {
		result, err := computeFn(ctx, inputs)
		return calcRecalculateMsg{seq: seq, result: result, err: err}
	}
}

func (m *CalcModel) focusedField() string {
	return m.fields[m.focusedRow]
}

// Inputs returns the form's current inputs.
func (m *CalcModel) Inputs() engine.Inputs {
	return m.inputs
}

// Result returns the latest result and its error.
func (m *CalcModel) Result() (engine.Result, error) {
	return m.result, m.err
}

// State returns the current form state.
func (m *CalcModel) State() CalcState {
	return m.state
}

// Run shows the form on the terminal until the user quits and returns the
// final model.
func Run(ctx context.Context, inputs engine.Inputs, computeFn ComputeFunc) (*CalcModel, error) {
	m := NewCalcModel(ctx, inputs, computeFn)
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(*CalcModel); ok {
		return fm, nil
	}
	return m, nil
}
