package enums

import "testing"

func TestPayoutStatusTerminality(t *testing.T) {
	terminal := map[PayoutStatus]bool{
		PayoutStatusCreated:              false,
		PayoutStatusQueued:               false,
		PayoutStatusBroadcasting:         false,
		PayoutStatusSucceeded:            true,
		PayoutStatusFailedInvoiceExpired: true,
		PayoutStatusFailedLockup:         true,
		PayoutStatusRefunded:             true,
		PayoutStatusManualReview:         true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s IsTerminal = %v, want %v", status, got, want)
		}
	}

	if PayoutStatus("made_up").IsTerminal() {
		t.Error("unknown status must not read as terminal")
	}
}

func TestOnlyExpiredInvoiceSupportsRetryClaim(t *testing.T) {
	for _, status := range validPayoutStatuses {
		want := status == PayoutStatusFailedInvoiceExpired
		if got := status.SupportsRetryClaim(); got != want {
			t.Errorf("%s SupportsRetryClaim = %v, want %v", status, got, want)
		}
	}
}

func TestParsePayoutStatus(t *testing.T) {
	status, err := ParsePayoutStatus("failed_lockup")
	if err != nil || status != PayoutStatusFailedLockup {
		t.Fatalf("ParsePayoutStatus = %s, %v", status, err)
	}
	if _, err := ParsePayoutStatus("bogus"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
