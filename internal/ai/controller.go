package ai

import "time"

// Controller is a unit the owning scheduler drives explicitly.
// No engine callbacks: Init once, Update once per frame, Shutdown once.
type Controller interface {
	// ID returns unique identifier used as registry key
	ID() string

	// Init prepares controller before the first Update
	Init()

	// Update advances controller by dt of simulated time
	Update(dt time.Duration)

	// Shutdown stops controller; it is not updated afterwards
	Shutdown()
}

var _ Controller = (*Agent)(nil)
