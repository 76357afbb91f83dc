package models

import (
	"testing"
	"time"

	"gorm.io/gorm"
)

func newBooking(t *testing.T, conn *gorm.DB, status BookingStatus) *Booking {
	t.Helper()
	b := &Booking{
		ServiceID:   1,
		CustomerID:  2,
		ProviderID:  3,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		QuotedPrice: 500,
	}
	if err := conn.Create(b).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if status != BookingRequested {
		b.Status = status
		if err := conn.Save(b).Error; err != nil {
			t.Fatalf("set status: %v", err)
		}
	}
	return b
}

func TestBookingAccept(t *testing.T) {
	conn := testDB(t)
	b := newBooking(t, conn, BookingRequested)

	if err := b.Accept(conn); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if b.Status != BookingAccepted {
		t.Errorf("status = %s, want ACCEPTED", b.Status)
	}
	if b.AcceptedAt == nil {
		t.Error("AcceptedAt not stamped")
	}

	var stored Booking
	if err := conn.First(&stored, b.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != BookingAccepted {
		t.Errorf("persisted status = %s, want ACCEPTED", stored.Status)
	}
}

func TestBookingRejectRecordsReason(t *testing.T) {
	conn := testDB(t)
	b := newBooking(t, conn, BookingRequested)

	if err := b.Reject(conn, "fully booked that day"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if b.Status != BookingRejected {
		t.Errorf("status = %s, want REJECTED", b.Status)
	}
	if b.CancellationReason != "fully booked that day" {
		t.Errorf("reason = %q", b.CancellationReason)
	}
	if b.CancelledBy != CancelledByProvider {
		t.Errorf("cancelled by = %s, want PROVIDER", b.CancelledBy)
	}
}

func TestBookingStartThenComplete(t *testing.T) {
	conn := testDB(t)
	b := newBooking(t, conn, BookingAccepted)

	if err := b.Start(conn); err != nil {
		t.Fatalf("start: %v", err)
	}
	if b.Status != BookingInProgress || b.ActualStartTime == nil {
		t.Fatalf("after start: status=%s start=%v", b.Status, b.ActualStartTime)
	}
	if err := b.Complete(conn); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.Status != BookingCompleted || b.ActualEndTime == nil {
		t.Fatalf("after complete: status=%s end=%v", b.Status, b.ActualEndTime)
	}
	if b.FinalPrice != 500 {
		t.Errorf("final price = %v, want quoted price 500", b.FinalPrice)
	}
}

func TestBookingCompleteDirectlyFromAccepted(t *testing.T) {
	conn := testDB(t)
	b := newBooking(t, conn, BookingAccepted)

	if err := b.Complete(conn); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.ActualStartTime == nil {
		t.Error("expected start time backfilled when completing without an explicit start")
	}
	if b.ActualDurationMinutes() != 0 {
		t.Errorf("duration = %d, want 0 for a backfilled start", b.ActualDurationMinutes())
	}
}

func TestBookingCancelFromRequestedAndAccepted(t *testing.T) {
	conn := testDB(t)
	for _, from := range []BookingStatus{BookingRequested, BookingAccepted} {
		b := newBooking(t, conn, from)
		if err := b.Cancel(conn, CancelledByCustomer, "changed plans"); err != nil {
			t.Fatalf("cancel from %s: %v", from, err)
		}
		if b.Status != BookingCancelled || b.CancelledBy != CancelledByCustomer {
			t.Errorf("cancel from %s: status=%s by=%s", from, b.Status, b.CancelledBy)
		}
	}
}

func TestBookingIllegalTransitions(t *testing.T) {
	conn := testDB(t)
	cases := []struct {
		name string
		from BookingStatus
		act  func(*Booking) error
	}{
		{"accept accepted", BookingAccepted, func(b *Booking) error { return b.Accept(conn) }},
		{"accept completed", BookingCompleted, func(b *Booking) error { return b.Accept(conn) }},
		{"reject accepted", BookingAccepted, func(b *Booking) error { return b.Reject(conn, "") }},
		{"start requested", BookingRequested, func(b *Booking) error { return b.Start(conn) }},
		{"start completed", BookingCompleted, func(b *Booking) error { return b.Start(conn) }},
		{"complete requested", BookingRequested, func(b *Booking) error { return b.Complete(conn) }},
		{"complete cancelled", BookingCancelled, func(b *Booking) error { return b.Complete(conn) }},
		{"cancel in progress", BookingInProgress, func(b *Booking) error { return b.Cancel(conn, CancelledByCustomer, "") }},
		{"cancel completed", BookingCompleted, func(b *Booking) error { return b.Cancel(conn, CancelledByAdmin, "") }},
	}
	for _, tc := range cases {
		b := newBooking(t, conn, tc.from)
		if err := tc.act(b); err == nil {
			t.Errorf("%s: expected transition error", tc.name)
			continue
		}

		var stored Booking
		if err := conn.First(&stored, b.ID).Error; err != nil {
			t.Fatalf("%s: reload: %v", tc.name, err)
		}
		if stored.Status != tc.from {
			t.Errorf("%s: status changed to %s after rejected transition", tc.name, stored.Status)
		}
	}
}

func TestBookingIsTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		BookingRequested:  false,
		BookingAccepted:   false,
		BookingInProgress: false,
		BookingCompleted:  true,
		BookingRejected:   true,
		BookingCancelled:  true,
	}
	for status, want := range terminal {
		b := Booking{Status: status}
		if got := b.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}
