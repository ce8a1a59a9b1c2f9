package source

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/model"
)

const (
	// DefaultSeed makes runs repeatable unless configured otherwise.
	DefaultSeed int64 = 12345
	// DefaultCreationProbability is the chance of a new passenger per tick.
	DefaultCreationProbability = 0.06
)

// Config holds the generator parameters.
type Config struct {
	Seed                int64
	CreationProbability float64
	Logger              logger.Logger
	Events              events.Publisher
}

// PassengerSource creates at most one passenger per tick with a fixed
// probability. It owns its random generator so the sequence of passengers
// only depends on the seed and the number of ticks.
type PassengerSource struct {
	ledger
	rng         *rand.Rand
	probability float64
}

// NewPassengerSource creates a source submitting requests to req and
// registering waiting passengers in reg.
func NewPassengerSource(reg city.Registry, req Requester, cfg Config) (*PassengerSource, error) {
	if cfg.CreationProbability < 0 || cfg.CreationProbability > 1 {
		return nil, fmt.Errorf("%w: creation probability %v", model.ErrInvalidArgument, cfg.CreationProbability)
	}
	l, err := newLedger(reg, req, cfg.Logger, cfg.Events)
	if err != nil {
		return nil, err
	}
	return &PassengerSource{
		ledger:      l,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		probability: cfg.CreationProbability,
	}, nil
}

// Act possibly creates a passenger and requests a pickup for it.
func (s *PassengerSource) Act(ctx context.Context) error {
	if s.rng.Float64() > s.probability {
		return nil
	}
	p, err := s.createPassenger()
	if err != nil {
		return err
	}
	return s.submit(p)
}

// createPassenger draws a pickup and a distinct destination inside the city.
func (s *PassengerSource) createPassenger() (*model.Passenger, error) {
	w, h := s.city.Width(), s.city.Height()
	if w*h < 2 {
		return nil, fmt.Errorf("%w: city %dx%d cannot hold distinct pickup and destination", model.ErrInvalidArgument, w, h)
	}
	pickup := model.Position{X: s.rng.Intn(w), Y: s.rng.Intn(h)}
	dest := model.Position{X: s.rng.Intn(w), Y: s.rng.Intn(h)}
	for dest == pickup {
		dest = model.Position{X: s.rng.Intn(w), Y: s.rng.Intn(h)}
	}
	return model.NewPassenger(pickup, dest)
}
