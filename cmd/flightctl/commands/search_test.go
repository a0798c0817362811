package commands

import (
	"errors"
	"testing"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

func TestSearchCmd_InvalidQueryFails(t *testing.T) {
	cmd := SearchCmd()
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"--from", "DEL", "--to", "BOM"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for a search without a departure date")
	}
	if !errors.Is(err, models.ErrMissingDepartureDate) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSearchCmd_MalformedSegmentsFails(t *testing.T) {
	cmd := SearchCmd()
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"--segments", `[{"from"`})

	if err := cmd.Execute(); !models.IsClientError(err) {
		t.Errorf("expected a client error, got %v", err)
	}
}
