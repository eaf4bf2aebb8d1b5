package navigation

import (
	"context"
	"fmt"

	"hub-route-service/internal/domain"
)

type MockLeg struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockLegProvider serves fixed legs keyed by coordinate pair and counts
// oracle calls for assertions on call volume.
type MockLegProvider struct {
	m     map[string]domain.RouteLeg
	Calls int
}

func NewMockLegProvider(legs []MockLeg) *MockLegProvider {
	m := make(map[string]domain.RouteLeg, len(legs))
	for _, l := range legs {
		m[coordParam(l.From)+"|"+coordParam(l.To)] = domain.RouteLeg{
			DistanceMeters:  l.Meters,
			DurationSeconds: l.Seconds,
		}
	}
	return &MockLegProvider{m: m}
}

func (p *MockLegProvider) ComputeLeg(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteLeg, error) {
	p.Calls++
	leg, ok := p.m[coordParam(origin)+"|"+coordParam(destination)]
	if !ok {
		return domain.RouteLeg{}, fmt.Errorf("%w: missing leg %s -> %s", domain.ErrExternal, coordParam(origin), coordParam(destination))
	}
	return leg, nil
}
