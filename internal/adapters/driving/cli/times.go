package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
)

var timesCmd = &cobra.Command{
	Use:   "times",
	Short: "Find meeting times for your draft's recipients",
	Long: `Find meeting times that work for everyone on the draft's To: line.

The proposed times come from the SmartMeet backend with a confidence score
per slot. Pick one to create the meeting, or use --select to pick
non-interactively.

Examples:
  # Find times for the default draft
  smartmeet times

  # A one-hour in-person meeting, searched over the next 14 days
  smartmeet times --duration 60 --type in_person --location "Room 4" --days 14

  # Schedule the second proposed time without prompting
  smartmeet times --select 2`,
	RunE: runTimes,
}

// Flags for times.
var (
	timesSubject  string
	timesDuration int
	timesType     string
	timesLocation string
	timesDays     int
	timesSelect   int
)

func init() {
	timesCmd.Flags().StringVar(&timesSubject, "subject", "", "meeting subject")
	timesCmd.Flags().IntVar(&timesDuration, "duration", 0, "meeting duration in minutes")
	timesCmd.Flags().StringVar(&timesType, "type", "", "meeting type: teams, in_person or phone")
	timesCmd.Flags().StringVar(&timesLocation, "location", "", "location for in-person meetings")
	timesCmd.Flags().IntVar(&timesDays, "days", 0, "search window in days from now")
	timesCmd.Flags().IntVar(&timesSelect, "select", 0, "schedule the Nth proposed time (1-based) without prompting")
	rootCmd.AddCommand(timesCmd)
}

func runTimes(cmd *cobra.Command, _ []string) error {
	if taskPaneService == nil {
		return errors.New("task pane service not configured")
	}

	taskPaneService.HandleHostReady()
	taskPaneService.SetConfig(meetingConfigFromFlags())

	ctx := cmd.Context()
	result, err := taskPaneService.FindMeetingTimes(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecipients) {
			cmd.Println("No recipients found. Add attendee emails to the draft's To: line.")
			return nil
		}
		if errors.Is(err, domain.ErrNotAuthenticated) {
			cmd.Println("Not connected. Run 'smartmeet connect' first.")
			return nil
		}
		return fmt.Errorf("failed to find meeting times: %w", err)
	}

	if len(result.ProposedTimes) == 0 {
		cmd.Println("No times found where everyone is available.")
		return nil
	}

	cmd.Printf("Found %d proposed times:\n\n", len(result.ProposedTimes))
	for i, pt := range result.ProposedTimes {
		cmd.Printf("  %d. %s\n", i+1, pt.Start.Local().Format("Mon, Jan 2 2006 3:04 PM"))
		cmd.Printf("     until %s - %s (%.0f%%)\n",
			pt.End.Local().Format("3:04 PM"), pt.Tier().Label(), pt.Confidence*100)
	}
	if result.PortalURL != "" {
		cmd.Printf("\nShare with attendees: %s\n", result.PortalURL)
	}

	index, err := chooseTimeIndex(cmd, len(result.ProposedTimes))
	if err != nil {
		return err
	}
	if index < 0 {
		return nil
	}

	meeting, err := taskPaneService.CreateMeeting(ctx, index)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}

	cmd.Printf("\nMeeting created: %s\n", meeting.Subject)
	cmd.Printf("  %s - %s\n",
		meeting.Start.Local().Format("Mon, Jan 2 2006 3:04 PM"),
		meeting.End.Local().Format("3:04 PM MST"))
	if meeting.TeamsLink != "" {
		cmd.Printf("  Join: %s\n", meeting.TeamsLink)
	} else if meeting.WebLink != "" {
		cmd.Printf("  Details: %s\n", meeting.WebLink)
	}
	return nil
}

// chooseTimeIndex resolves the slot to schedule: the --select flag when
// given, otherwise an interactive prompt. Returns -1 when the user skips.
func chooseTimeIndex(cmd *cobra.Command, count int) (int, error) {
	if timesSelect != 0 {
		if timesSelect < 1 || timesSelect > count {
			return 0, fmt.Errorf("--select %d is out of range (1-%d)", timesSelect, count)
		}
		return timesSelect - 1, nil
	}

	cmd.Printf("\nSchedule a time? (1-%d, empty to skip): ", count)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return -1, nil
	}

	var idx int
	if _, err := fmt.Sscanf(input, "%d", &idx); err != nil || idx < 1 || idx > count {
		return 0, fmt.Errorf("invalid selection: %s", input)
	}
	return idx - 1, nil
}

// meetingConfigFromFlags layers the times flags over the configured meeting
// defaults.
func meetingConfigFromFlags() domain.MeetingConfig {
	cfg := settings.MeetingConfig()
	if timesSubject != "" {
		cfg.Subject = timesSubject
	}
	if timesDuration > 0 {
		cfg.DurationMinutes = timesDuration
	}
	switch domain.MeetingType(timesType) {
	case domain.MeetingTeams, domain.MeetingInPerson, domain.MeetingPhone:
		cfg.Type = domain.MeetingType(timesType)
	}
	if timesLocation != "" {
		cfg.Location = timesLocation
	}
	if timesDays > 0 {
		cfg.TimeRangeDays = timesDays
	}
	return cfg
}
