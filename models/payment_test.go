package models

import (
	"testing"
	"time"
)

func TestPaymentFeeBreakdown(t *testing.T) {
	conn := testDB(t)
	booking := newBooking(t, conn, BookingCompleted)

	p := &Payment{
		BookingID: booking.ID,
		Amount:    100,
		Method:    MethodCreditCard,
	}
	if err := conn.Create(p).Error; err != nil {
		t.Fatalf("create payment: %v", err)
	}

	if p.ProcessingFee != 4.90 {
		t.Errorf("processing fee = %v, want 4.90", p.ProcessingFee)
	}
	if p.PlatformFee != 5.00 {
		t.Errorf("platform fee = %v, want 5.00", p.PlatformFee)
	}
	if p.NetAmount != 95.10 {
		t.Errorf("net amount = %v, want 95.10", p.NetAmount)
	}
	if p.ProviderAmount != 90.10 {
		t.Errorf("provider amount = %v, want 90.10", p.ProviderAmount)
	}
	if p.Status != PaymentPending {
		t.Errorf("status = %s, want PENDING", p.Status)
	}
	if p.TransactionRef == "" {
		t.Error("transaction ref not generated")
	}
}

func TestPaymentOnePerBooking(t *testing.T) {
	conn := testDB(t)
	booking := newBooking(t, conn, BookingCompleted)

	first := &Payment{BookingID: booking.ID, Amount: 250, Method: MethodCash}
	if err := conn.Create(first).Error; err != nil {
		t.Fatalf("create first payment: %v", err)
	}
	second := &Payment{BookingID: booking.ID, Amount: 250, Method: MethodCash}
	if err := conn.Create(second).Error; err == nil {
		t.Error("expected unique constraint on booking_id to reject the second payment")
	}
}

func TestPaymentExplicitFeesKept(t *testing.T) {
	conn := testDB(t)
	booking := newBooking(t, conn, BookingCompleted)

	p := &Payment{
		BookingID:     booking.ID,
		Amount:        200,
		Method:        MethodBankTransfer,
		ProcessingFee: 1.50,
	}
	if err := conn.Create(p).Error; err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if p.ProcessingFee != 1.50 {
		t.Errorf("processing fee = %v, want the explicit 1.50", p.ProcessingFee)
	}
	if p.NetAmount != 198.50 {
		t.Errorf("net amount = %v, want 198.50", p.NetAmount)
	}
}

func TestPaymentIsSuccessful(t *testing.T) {
	now := time.Now()
	captured := Payment{Status: PaymentCaptured, CapturedAt: &now}
	if !captured.IsSuccessful() {
		t.Error("captured payment should be successful")
	}
	if (&Payment{Status: PaymentFailed}).IsSuccessful() {
		t.Error("failed payment must not be successful")
	}
}
