package handlers

import "sftails/services/identity"

// HandlerBundle wires every handler the routes need, plus the identity
// service the auth middleware resolves tokens with.
type HandlerBundle struct {
	Identity identity.IdentityService

	Client       *ClientHandler
	Staff        *StaffHandler
	Pet          *PetHandler
	Booking      *BookingHandler
	StaffBooking *StaffBookingHandler
}
