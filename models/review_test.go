package models

import "testing"

func TestReviewRatingValidation(t *testing.T) {
	conn := testDB(t)

	for _, bad := range []float64{0, 0.5, 5.5, 4.55, -1} {
		booking := newBooking(t, conn, BookingCompleted)
		r := &Review{
			BookingID:     booking.ID,
			ServiceID:     booking.ServiceID,
			CustomerID:    booking.CustomerID,
			OverallRating: bad,
		}
		if err := conn.Create(r).Error; err == nil {
			t.Errorf("rating %v: expected rejection", bad)
		}
	}
}

func TestReviewDetailRatingsDefaultToOverall(t *testing.T) {
	conn := testDB(t)
	booking := newBooking(t, conn, BookingCompleted)

	r := &Review{
		BookingID:     booking.ID,
		ServiceID:     booking.ServiceID,
		CustomerID:    booking.CustomerID,
		OverallRating: 4.5,
		QualityRating: 3.0,
	}
	if err := conn.Create(r).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	if r.QualityRating != 3.0 {
		t.Errorf("quality = %v, want the explicit 3.0", r.QualityRating)
	}
	for name, got := range map[string]float64{
		"communication": r.CommunicationRating,
		"punctuality":   r.PunctualityRating,
		"value":         r.ValueRating,
	} {
		if got != 4.5 {
			t.Errorf("%s = %v, want overall 4.5", name, got)
		}
	}
}

func TestReviewOnePerBooking(t *testing.T) {
	conn := testDB(t)
	booking := newBooking(t, conn, BookingCompleted)

	first := &Review{BookingID: booking.ID, ServiceID: 1, CustomerID: 2, OverallRating: 5.0}
	if err := conn.Create(first).Error; err != nil {
		t.Fatalf("create first review: %v", err)
	}
	second := &Review{BookingID: booking.ID, ServiceID: 1, CustomerID: 2, OverallRating: 4.0}
	if err := conn.Create(second).Error; err == nil {
		t.Error("expected unique constraint on booking_id to reject the second review")
	}
}

func TestServiceRecomputeRating(t *testing.T) {
	conn := testDB(t)
	svc := &Service{Title: "Deep Cleaning", BasePrice: 999, ProviderID: 3, CategoryID: 1}
	if err := conn.Create(svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}

	for _, rating := range []float64{4.0, 5.0} {
		booking := newBooking(t, conn, BookingCompleted)
		r := &Review{
			BookingID:     booking.ID,
			ServiceID:     svc.ID,
			CustomerID:    booking.CustomerID,
			OverallRating: rating,
		}
		if err := conn.Create(r).Error; err != nil {
			t.Fatalf("create review: %v", err)
		}
	}

	if err := svc.RecomputeRating(conn); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	var stored Service
	if err := conn.First(&stored, svc.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.AverageRating != 4.5 {
		t.Errorf("average = %v, want 4.5", stored.AverageRating)
	}
	if stored.TotalReviews != 2 {
		t.Errorf("total reviews = %d, want 2", stored.TotalReviews)
	}
}

func TestServiceRecomputeRatingNoReviews(t *testing.T) {
	conn := testDB(t)
	svc := &Service{Title: "Gutter Repair", BasePrice: 499, ProviderID: 3, CategoryID: 1}
	if err := conn.Create(svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	if err := svc.RecomputeRating(conn); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	var stored Service
	if err := conn.First(&stored, svc.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.AverageRating != 0 || stored.TotalReviews != 0 {
		t.Errorf("aggregate = (%v, %d), want (0, 0)", stored.AverageRating, stored.TotalReviews)
	}
}
