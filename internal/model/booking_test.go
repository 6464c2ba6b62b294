package model

import "testing"

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCompleted, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusPending, true},

		{BookingStatusConfirmed, BookingStatusConfirmed, true},
		{BookingStatusConfirmed, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusPending, false},

		{BookingStatusCompleted, BookingStatusCompleted, true},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusPending, false},

		{BookingStatusCancelled, BookingStatusCancelled, true},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusPending, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled} {
		if !ValidBookingStatus(s) {
			t.Fatalf("expected %s valid", s)
		}
	}
	if ValidBookingStatus("archived") {
		t.Fatalf("expected archived invalid")
	}
}

func TestValidCarStatus(t *testing.T) {
	for _, s := range []CarStatus{CarStatusActive, CarStatusMaintenance, CarStatusInactive} {
		if !ValidCarStatus(s) {
			t.Fatalf("expected %s valid", s)
		}
	}
	if ValidCarStatus("scrapped") {
		t.Fatalf("expected scrapped invalid")
	}
}
