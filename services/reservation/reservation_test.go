package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sftails/models"
	"sftails/services/identity"
	"sftails/services/payment"

	"go.uber.org/zap"
)

type fixture struct {
	svc       *DefaultReservationService
	bookings  *mockBookingRepo
	clients   *mockClientRepo
	pets      *mockPetRepo
	gateway   *mockGateway
	notifier  *mockNotifier
	authStore *mockAuthStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookings: newMockBookingRepo(),
		clients: newMockClientRepo(&models.Client{
			ID:    "client-1",
			Name:  "Ariela",
			Email: "ariela@example.com",
			Phone: "555-0100",
		}),
		pets: newMockPetRepo(&models.Pet{
			ID:       "pet-1",
			ClientID: "client-1",
			Name:     "Biscuit",
		}),
		gateway:   &mockGateway{},
		notifier:  &mockNotifier{},
		authStore: newMockAuthStore(),
	}
	f.svc = &DefaultReservationService{
		BookingRepo: f.bookings,
		ClientRepo:  f.clients,
		PetRepo:     f.pets,
		Gateway:     f.gateway,
		Notifier:    f.notifier,
		AuthStore:   f.authStore,
		Logger:      zap.NewNop(),
	}
	return f
}

func (f *fixture) mustCreateBooking(t *testing.T) *models.Booking {
	t.Helper()
	booking, err := f.svc.CreateBooking(context.Background(), "client-1", models.BookingInput{
		ServiceType: models.ServiceGrooming,
		Date:        "2026-09-15",
		Time:        "10:00",
		PetID:       "pet-1",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	return booking
}

var staffPrincipal = identity.Principal{SubjectID: "staff-1", Role: models.RoleStaff}

func TestCreateBooking(t *testing.T) {
	t.Run("Given valid input, When a client books, Then a pending booking is stored and a submitted event fires", func(t *testing.T) {
		f := newFixture(t)

		booking := f.mustCreateBooking(t)

		if booking.Status != models.BookingStatusPending {
			t.Errorf("expected status %q, got %q", models.BookingStatusPending, booking.Status)
		}
		if booking.ID == "" {
			t.Error("expected a generated booking id")
		}
		stored, _ := f.bookings.GetBookingByID(booking.ID)
		if stored == nil {
			t.Fatal("booking was not persisted")
		}
		events := f.notifier.recorded()
		if len(events) != 1 || events[0].Event != models.EventBookingSubmitted {
			t.Fatalf("expected one submitted event, got %+v", events)
		}
		if events[0].Email != "ariela@example.com" {
			t.Errorf("event routed to %q", events[0].Email)
		}
	})

	t.Run("Given an unknown service type, When booking, Then a validation error is returned", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateBooking(context.Background(), "client-1", models.BookingInput{
			ServiceType: "taxidermy",
			Date:        "2026-09-15",
			Time:        "10:00",
		})

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "serviceType" {
			t.Fatalf("expected serviceType validation error, got %v", err)
		}
	})

	t.Run("Given a malformed date, When booking, Then a validation error is returned", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateBooking(context.Background(), "client-1", models.BookingInput{
			ServiceType: models.ServiceBoarding,
			Date:        "15/09/2026",
			Time:        "10:00",
		})

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "date" {
			t.Fatalf("expected date validation error, got %v", err)
		}
	})

	t.Run("Given an unknown client, When booking, Then a validation error is returned", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateBooking(context.Background(), "ghost", models.BookingInput{
			ServiceType: models.ServiceGrooming,
			Date:        "2026-09-15",
			Time:        "10:00",
		})

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "clientId" {
			t.Fatalf("expected clientId validation error, got %v", err)
		}
	})

	t.Run("Given a pet owned by another client, When booking, Then a validation error is returned", func(t *testing.T) {
		f := newFixture(t)
		f.clients.Create(&models.Client{ID: "client-2", Name: "Sam", Email: "sam@example.com"})

		_, err := f.svc.CreateBooking(context.Background(), "client-2", models.BookingInput{
			ServiceType: models.ServiceGrooming,
			Date:        "2026-09-15",
			Time:        "10:00",
			PetID:       "pet-1",
		})

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "petId" {
			t.Fatalf("expected petId validation error, got %v", err)
		}
	})

	t.Run("Given two bookings for the same slot, When both are created, Then both succeed", func(t *testing.T) {
		f := newFixture(t)

		first := f.mustCreateBooking(t)
		second := f.mustCreateBooking(t)

		if first.ID == second.ID {
			t.Fatal("bookings should get distinct ids")
		}
		all, _ := f.bookings.GetBookingsByStatus(models.BookingStatusPending)
		if len(all) != 2 {
			t.Fatalf("expected 2 pending bookings, got %d", len(all))
		}
	})
}

func TestAcceptBooking(t *testing.T) {
	t.Run("Given a pending booking, When staff accept it, Then it is confirmed and the client is notified", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		updated, err := f.svc.AcceptBooking(context.Background(), booking.ID, staffPrincipal)
		if err != nil {
			t.Fatalf("AcceptBooking failed: %v", err)
		}

		if updated.Status != models.BookingStatusConfirmed {
			t.Errorf("expected confirmed, got %q", updated.Status)
		}
		events := f.notifier.recorded()
		if len(events) != 2 || events[1].Event != models.EventBookingConfirmed {
			t.Fatalf("expected a confirmed event after the submitted one, got %+v", events)
		}
	})

	t.Run("Given a client caller, When accepting, Then an authorization error is returned and nothing changes", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		_, err := f.svc.AcceptBooking(context.Background(), booking.ID,
			identity.Principal{SubjectID: "client-1", Role: models.RoleClient})

		var ae *AuthorizationError
		if !errors.As(err, &ae) {
			t.Fatalf("expected AuthorizationError, got %v", err)
		}
		stored, _ := f.bookings.GetBookingByID(booking.ID)
		if stored.Status != models.BookingStatusPending {
			t.Errorf("booking status changed to %q", stored.Status)
		}
	})

	t.Run("Given an unknown booking id, When accepting, Then a not-found error is returned", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AcceptBooking(context.Background(), "no-such-booking", staffPrincipal)

		var nf *BookingNotFoundError
		if !errors.As(err, &nf) || nf.BookingID != "no-such-booking" {
			t.Fatalf("expected BookingNotFoundError, got %v", err)
		}
	})

	t.Run("Given an already cancelled booking, When accepting, Then the call succeeds without changing the row", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)
		if _, err := f.svc.RejectBooking(context.Background(), booking.ID, staffPrincipal); err != nil {
			t.Fatalf("RejectBooking failed: %v", err)
		}

		result, err := f.svc.AcceptBooking(context.Background(), booking.ID, staffPrincipal)
		if err != nil {
			t.Fatalf("AcceptBooking on settled booking failed: %v", err)
		}

		if result.Status != models.BookingStatusCancelled {
			t.Errorf("expected row returned as found (cancelled), got %q", result.Status)
		}
		if f.bookings.transitions != 1 {
			t.Errorf("expected exactly 1 applied transition, got %d", f.bookings.transitions)
		}
	})

	t.Run("Given two staff accepting concurrently, When both calls race, Then exactly one transition applies and both succeed", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.svc.AcceptBooking(context.Background(), booking.ID, staffPrincipal)
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				t.Errorf("caller %d failed: %v", i, err)
			}
		}
		if f.bookings.transitions != 1 {
			t.Errorf("expected exactly 1 applied transition, got %d", f.bookings.transitions)
		}
		stored, _ := f.bookings.GetBookingByID(booking.ID)
		if stored.Status != models.BookingStatusConfirmed {
			t.Errorf("expected confirmed, got %q", stored.Status)
		}
	})
}

func TestRejectBooking(t *testing.T) {
	t.Run("Given a pending booking, When staff reject it, Then it is cancelled with no confirmation event", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		updated, err := f.svc.RejectBooking(context.Background(), booking.ID, staffPrincipal)
		if err != nil {
			t.Fatalf("RejectBooking failed: %v", err)
		}

		if updated.Status != models.BookingStatusCancelled {
			t.Errorf("expected cancelled, got %q", updated.Status)
		}
		for _, ev := range f.notifier.recorded() {
			if ev.Event == models.EventBookingConfirmed {
				t.Error("rejection must not emit a confirmed event")
			}
		}
	})
}

func TestRequestPayment(t *testing.T) {
	t.Run("Given a pending booking, When payment is requested, Then the gateway authorizes with booking metadata", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		auth, err := f.svc.RequestPayment(context.Background(), booking.ID, 5000)
		if err != nil {
			t.Fatalf("RequestPayment failed: %v", err)
		}

		if auth.ClientSecret == "" || auth.IntentID == "" {
			t.Errorf("incomplete authorization: %+v", auth)
		}
		if auth.Amount != 5000 {
			t.Errorf("expected amount 5000, got %d", auth.Amount)
		}
		if f.gateway.calls != 1 {
			t.Fatalf("expected one gateway call, got %d", f.gateway.calls)
		}
		if got := f.gateway.metadata[0]["booking_id"]; got != booking.ID {
			t.Errorf("metadata booking_id = %q, want %q", got, booking.ID)
		}
		stored, _ := f.bookings.GetBookingByID(booking.ID)
		if stored.Status != models.BookingStatusPending {
			t.Errorf("authorization must not change booking status, got %q", stored.Status)
		}
		record, _ := f.authStore.Get(context.Background(), booking.ID)
		if record == nil || record.Amount != 5000 {
			t.Errorf("authorization record not saved: %+v", record)
		}
	})

	t.Run("Given a non-positive amount, When payment is requested, Then validation fails before the gateway is called", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		_, err := f.svc.RequestPayment(context.Background(), booking.ID, 0)

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if f.gateway.calls != 0 {
			t.Errorf("gateway called %d times", f.gateway.calls)
		}
	})

	t.Run("Given an unknown booking, When payment is requested, Then a not-found error is returned", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.RequestPayment(context.Background(), "no-such-booking", 5000)

		var nf *BookingNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected BookingNotFoundError, got %v", err)
		}
	})

	t.Run("Given a gateway rejection, When payment is requested, Then the gateway error passes through and is not retried", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)
		f.gateway.err = &payment.GatewayError{Code: "card_declined", Message: "your card was declined"}

		_, err := f.svc.RequestPayment(context.Background(), booking.ID, 5000)

		if !payment.IsGatewayError(err) {
			t.Fatalf("expected a gateway error, got %v", err)
		}
		var ge *payment.GatewayError
		errors.As(err, &ge)
		if ge.Message != "your card was declined" {
			t.Errorf("gateway message not passed through: %q", ge.Message)
		}
		if f.gateway.calls != 1 {
			t.Errorf("expected exactly one gateway call, got %d", f.gateway.calls)
		}
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("Given a matching authorization, When payment is recorded, Then a completed settlement row is written", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)
		if _, err := f.svc.RequestPayment(context.Background(), booking.ID, 5000); err != nil {
			t.Fatalf("RequestPayment failed: %v", err)
		}

		pay, err := f.svc.RecordPayment(context.Background(), booking.ID, 5000, "card")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}

		if pay.Status != models.PaymentStatusCompleted {
			t.Errorf("expected completed, got %q", pay.Status)
		}
		rows, _ := f.bookings.GetPaymentsByBooking(booking.ID)
		if len(rows) != 1 || rows[0].Amount != 5000 {
			t.Fatalf("unexpected payment rows: %+v", rows)
		}
		stored, _ := f.bookings.GetBookingByID(booking.ID)
		if stored.Status != models.BookingStatusPending {
			t.Errorf("recording a payment must not change booking status, got %q", stored.Status)
		}
	})

	t.Run("Given a mismatched amount, When payment is recorded, Then the settlement is refused", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)
		if _, err := f.svc.RequestPayment(context.Background(), booking.ID, 5000); err != nil {
			t.Fatalf("RequestPayment failed: %v", err)
		}

		_, err := f.svc.RecordPayment(context.Background(), booking.ID, 4500, "card")

		var mm *AmountMismatchError
		if !errors.As(err, &mm) {
			t.Fatalf("expected AmountMismatchError, got %v", err)
		}
		if mm.Authorized != 5000 || mm.Recorded != 4500 {
			t.Errorf("mismatch details wrong: %+v", mm)
		}
		rows, _ := f.bookings.GetPaymentsByBooking(booking.ID)
		if len(rows) != 0 {
			t.Errorf("refused settlement still wrote %d rows", len(rows))
		}
	})

	t.Run("Given an expired authorization record, When payment is recorded, Then the settlement is still written", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		pay, err := f.svc.RecordPayment(context.Background(), booking.ID, 5000, "card")
		if err != nil {
			t.Fatalf("RecordPayment without auth record failed: %v", err)
		}
		if pay.Status != models.PaymentStatusCompleted {
			t.Errorf("expected completed, got %q", pay.Status)
		}
	})

	t.Run("Given an unknown booking, When payment is recorded, Then a not-found error is returned", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.RecordPayment(context.Background(), "no-such-booking", 5000, "card")

		var nf *BookingNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected BookingNotFoundError, got %v", err)
		}
	})

	t.Run("Given a repeated confirmation, When payment is recorded twice, Then two rows exist", func(t *testing.T) {
		f := newFixture(t)
		booking := f.mustCreateBooking(t)

		if _, err := f.svc.RecordPayment(context.Background(), booking.ID, 5000, "card"); err != nil {
			t.Fatalf("first RecordPayment failed: %v", err)
		}
		if _, err := f.svc.RecordPayment(context.Background(), booking.ID, 5000, "card"); err != nil {
			t.Fatalf("second RecordPayment failed: %v", err)
		}

		rows, _ := f.bookings.GetPaymentsByBooking(booking.ID)
		if len(rows) != 2 {
			t.Fatalf("expected 2 settlement rows, got %d", len(rows))
		}
	})
}

func TestBookingWorkflow(t *testing.T) {
	t.Run("Given a fresh client, When the full book-pay-confirm flow runs, Then each stage leaves the expected state", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		booking := f.mustCreateBooking(t)
		if booking.Status != models.BookingStatusPending {
			t.Fatalf("expected pending after creation, got %q", booking.Status)
		}

		auth, err := f.svc.RequestPayment(ctx, booking.ID, 5000)
		if err != nil {
			t.Fatalf("RequestPayment failed: %v", err)
		}
		if auth.ClientSecret == "" {
			t.Fatal("no client secret issued")
		}

		pay, err := f.svc.RecordPayment(ctx, booking.ID, 5000, "card")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if pay.Status != models.PaymentStatusCompleted {
			t.Fatalf("expected completed payment, got %q", pay.Status)
		}
		stored, _ := f.bookings.GetBookingByID(booking.ID)
		if stored.Status != models.BookingStatusPending {
			t.Fatalf("payment must not confirm the booking, got %q", stored.Status)
		}

		confirmed, err := f.svc.AcceptBooking(ctx, booking.ID, staffPrincipal)
		if err != nil {
			t.Fatalf("AcceptBooking failed: %v", err)
		}
		if confirmed.Status != models.BookingStatusConfirmed {
			t.Fatalf("expected confirmed, got %q", confirmed.Status)
		}

		events := f.notifier.recorded()
		if len(events) != 2 {
			t.Fatalf("expected submitted and confirmed events, got %+v", events)
		}
		if events[0].Event != models.EventBookingSubmitted || events[1].Event != models.EventBookingConfirmed {
			t.Errorf("events out of order: %+v", events)
		}
	})
}
