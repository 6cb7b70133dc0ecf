package srv

import "context"

// exitService stops the whole process once the wrapped service returns from
// Start, e.g. when the user leaves an interactive session.
type exitService struct {
	Service
	stop func()
}

func (e *exitService) Start(ctx context.Context) error {
	defer e.stop()
	return e.Service.Start(ctx)
}

func (e *exitService) String() string { return Name(e.Service) }

func StopOnExit(s Service, stop func()) Service {
	return &exitService{Service: s, stop: stop}
}
