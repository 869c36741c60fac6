package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
)

func resetTimesFlags() {
	timesSubject = ""
	timesDuration = 0
	timesType = ""
	timesLocation = ""
	timesDays = 0
	timesSelect = 0
}

func TestRunTimes_ListsProposedTimes(t *testing.T) {
	resetTimesFlags()
	timesSelect = -1 // suppress the interactive prompt path via out-of-range guard

	svc := &mockTaskPaneService{
		auth:   domain.AuthState{IsAuthenticated: true},
		result: sampleAvailability(),
	}
	cleanup := setupTestServices(svc)
	defer cleanup()

	cmd, buf := newCaptureCmd()
	err := runTimes(cmd, nil)

	require.Error(t, err) // -1 is out of range; listing still happened first
	assert.Contains(t, buf.String(), "Found 3 proposed times")
	assert.Contains(t, buf.String(), "High Confidence")
	assert.Contains(t, buf.String(), "https://portal.example/availability/m-1")
}

func TestRunTimes_SelectCreatesMeeting(t *testing.T) {
	resetTimesFlags()
	timesSelect = 2

	svc := &mockTaskPaneService{
		auth:    domain.AuthState{IsAuthenticated: true},
		result:  sampleAvailability(),
		meeting: &domain.Meeting{MeetingID: "m-1", Subject: "Quarterly Sync"},
	}
	cleanup := setupTestServices(svc)
	defer cleanup()

	cmd, buf := newCaptureCmd()
	err := runTimes(cmd, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, svc.createdIndex, "--select is 1-based")
	assert.Contains(t, buf.String(), "Meeting created: Quarterly Sync")
}

func TestRunTimes_SelectOutOfRange(t *testing.T) {
	resetTimesFlags()
	timesSelect = 9

	svc := &mockTaskPaneService{
		auth:   domain.AuthState{IsAuthenticated: true},
		result: sampleAvailability(),
	}
	cleanup := setupTestServices(svc)
	defer cleanup()

	cmd, _ := newCaptureCmd()
	err := runTimes(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestRunTimes_NoRecipients(t *testing.T) {
	resetTimesFlags()

	svc := &mockTaskPaneService{findErr: domain.ErrNoRecipients}
	cleanup := setupTestServices(svc)
	defer cleanup()

	cmd, buf := newCaptureCmd()
	err := runTimes(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No recipients found")
}

func TestRunTimes_NotAuthenticated(t *testing.T) {
	resetTimesFlags()

	svc := &mockTaskPaneService{findErr: domain.ErrNotAuthenticated}
	cleanup := setupTestServices(svc)
	defer cleanup()

	cmd, buf := newCaptureCmd()
	err := runTimes(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "smartmeet connect")
}

func TestRunTimes_EmptyResult(t *testing.T) {
	resetTimesFlags()

	svc := &mockTaskPaneService{
		auth:   domain.AuthState{IsAuthenticated: true},
		result: &domain.AvailabilityResult{MeetingID: "m-1"},
	}
	cleanup := setupTestServices(svc)
	defer cleanup()

	cmd, buf := newCaptureCmd()
	err := runTimes(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No times found")
}

func TestMeetingConfigFromFlags_LayersOverDefaults(t *testing.T) {
	resetTimesFlags()
	cleanup := setupTestServices(&mockTaskPaneService{})
	defer cleanup()

	timesSubject = "Design Review"
	timesDuration = 45
	timesType = "in_person"
	timesLocation = "Room 4"
	timesDays = 14

	cfg := meetingConfigFromFlags()
	assert.Equal(t, "Design Review", cfg.Subject)
	assert.Equal(t, 45, cfg.DurationMinutes)
	assert.Equal(t, domain.MeetingInPerson, cfg.Type)
	assert.Equal(t, "Room 4", cfg.Location)
	assert.Equal(t, 14, cfg.TimeRangeDays)
}

func TestMeetingConfigFromFlags_InvalidTypeKeepsDefault(t *testing.T) {
	resetTimesFlags()
	cleanup := setupTestServices(&mockTaskPaneService{})
	defer cleanup()

	timesType = "hologram"

	cfg := meetingConfigFromFlags()
	assert.Equal(t, domain.MeetingTeams, cfg.Type)
}
