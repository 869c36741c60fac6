// Package pane is the task pane view: connect, find times, pick a slot,
// create the meeting. All state decisions live in the task pane controller;
// the view renders phases and translates key presses into controller calls.
package pane

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driving/tui/messages"
	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driving/tui/styles"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driving"
)

// connectTimeout bounds how long an abandoned browser sign-in can keep the
// pane in the authenticating state.
const connectTimeout = 5 * time.Minute

// View is the task pane model.
type View struct {
	styles *styles.Styles
	svc    driving.TaskPaneService

	spinner spinner.Model
	cursor  int
	ready   bool
	width   int
	height  int

	// cancelConnect aborts the pending connect when the user presses esc.
	cancelConnect context.CancelFunc
}

// NewView creates the task pane view.
func NewView(s *styles.Styles, svc driving.TaskPaneService) *View {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &View{
		styles:  s,
		svc:     svc,
		spinner: sp,
	}
}

// Init restores the persisted session before the first render.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		if v.svc == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("task pane service not configured")}
		}
		return messages.HostReady{State: v.svc.HandleHostReady()}
	})
}

// Update handles messages.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AuthCompleted, messages.ErrorOccurred:
		if v.cancelConnect != nil {
			v.cancelConnect()
			v.cancelConnect = nil
		}
		return v, nil

	case messages.HostReady, messages.MeetingCreated:
		// State lives in the controller; a render pass is enough.
		return v, nil

	case messages.TimesLoaded:
		v.cursor = 0
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return v, tea.Quit

	case "c":
		if v.svc != nil && !v.svc.Auth().IsAuthenticated {
			return v, v.connectCmd()
		}

	case "esc":
		if v.cancelConnect != nil {
			v.cancelConnect()
			v.cancelConnect = nil
		}

	case "f", "r":
		if v.svc != nil && v.svc.Auth().IsAuthenticated {
			return v, v.findTimesCmd()
		}

	case "d":
		if v.svc != nil {
			v.svc.Disconnect()
			return v, nil
		}

	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}

	case "down", "j":
		if result := v.result(); result != nil && v.cursor < len(result.ProposedTimes)-1 {
			v.cursor++
		}

	case "enter":
		if v.svc != nil && v.svc.Phase() == domain.PhaseResultsShown {
			return v, v.createMeetingCmd(v.cursor)
		}
	}
	return v, nil
}

func (v *View) connectCmd() tea.Cmd {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	v.cancelConnect = cancel
	return func() tea.Msg {
		defer cancel()
		state, err := v.svc.Connect(ctx)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return messages.ErrorOccurred{Err: err}
		}
		// Cancellation and timeout are already reflected in the state.
		return messages.AuthCompleted{State: state}
	}
}

func (v *View) findTimesCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := v.svc.FindMeetingTimes(context.Background())
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.TimesLoaded{Result: result}
	}
}

func (v *View) createMeetingCmd(index int) tea.Cmd {
	return func() tea.Msg {
		meeting, err := v.svc.CreateMeeting(context.Background(), index)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.MeetingCreated{Meeting: meeting}
	}
}

func (v *View) result() *domain.AvailabilityResult {
	if v.svc == nil {
		return nil
	}
	return v.svc.Result()
}

// View renders the pane for the controller's current phase.
func (v *View) View() string {
	if v.svc == nil {
		return "task pane service not configured\n"
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("SmartMeet"))
	b.WriteString("\n\n")

	auth := v.svc.Auth()
	phase := v.svc.Phase()

	if auth.Error != "" {
		b.WriteString(v.styles.Error.Render(auth.Error))
		b.WriteString("\n\n")
	}

	switch {
	case phase == domain.PhaseUninitialized:
		b.WriteString(v.spinner.View() + " Starting...\n")

	case phase == domain.PhaseAuthenticating:
		b.WriteString(v.spinner.View() + " Waiting for browser sign-in...\n")
		b.WriteString(v.styles.Help.Render("Complete the sign-in in your browser  -  esc cancel"))
		b.WriteString("\n")

	case !auth.IsAuthenticated:
		b.WriteString("Connect your calendar to start scheduling.\n\n")
		b.WriteString(v.styles.Help.Render("c connect  -  q quit"))
		b.WriteString("\n")

	case phase == domain.PhaseLoadingAvailability:
		b.WriteString(v.spinner.View() + " Finding times that work for everyone...\n")

	case phase == domain.PhaseCreatingMeeting:
		b.WriteString(v.spinner.View() + " Creating the meeting...\n")

	case phase == domain.PhaseMeetingCreated:
		v.renderCreated(&b)

	case phase == domain.PhaseResultsShown:
		v.renderResults(&b)

	default:
		b.WriteString("Connected.\n\n")
		b.WriteString(v.styles.Help.Render("f find meeting times  -  d disconnect  -  q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderResults(b *strings.Builder) {
	result := v.svc.Result()
	if result == nil || len(result.ProposedTimes) == 0 {
		b.WriteString("No times found where everyone is available.\n\n")
		b.WriteString(v.styles.Help.Render("f search again  -  d disconnect  -  q quit"))
		b.WriteString("\n")
		return
	}

	b.WriteString(v.styles.Subtitle.Render(
		fmt.Sprintf("%d proposed times", len(result.ProposedTimes))))
	b.WriteString("\n\n")

	for i, pt := range result.ProposedTimes {
		tier := pt.Tier()
		card := fmt.Sprintf("%s\n%s - %s  %s",
			pt.Start.Local().Format("Mon, Jan 2 2006"),
			pt.Start.Local().Format("3:04 PM"),
			pt.End.Local().Format("3:04 PM"),
			v.styles.TierStyle(tier).Render(tier.Label()),
		)
		if i == v.cursor {
			b.WriteString(v.styles.SelectedCard.Render(card))
		} else {
			b.WriteString(v.styles.Card.Render(card))
		}
		b.WriteString("\n")
	}

	if result.PortalURL != "" {
		b.WriteString(v.styles.Subtitle.Render("Share: " + result.PortalURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter schedule  -  up/down select  -  f search again  -  q quit"))
	b.WriteString("\n")
}

func (v *View) renderCreated(b *strings.Builder) {
	b.WriteString(v.styles.Success.Render("Meeting created"))
	b.WriteString("\n\n")

	result := v.svc.Result()
	if result != nil && v.cursor < len(result.ProposedTimes) {
		pt := result.ProposedTimes[v.cursor]
		b.WriteString(fmt.Sprintf("%s, %s - %s\n",
			pt.Start.Local().Format("Mon, Jan 2 2006"),
			pt.Start.Local().Format("3:04 PM"),
			pt.End.Local().Format("3:04 PM"),
		))
	}
	b.WriteString("\nInvitations are on their way to all attendees.\n\n")
	b.WriteString(v.styles.Help.Render("f schedule another  -  q quit"))
	b.WriteString("\n")
}
