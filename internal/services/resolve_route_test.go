package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hub-route-service/internal/adapters/navigation"
	"hub-route-service/internal/domain"

	"github.com/google/uuid"
)

// Shared test topology: Daejeon bridges the two peripheral centers.
var (
	seoulID    = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	daejeonID  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	gyeonggiID = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	daeguID    = uuid.MustParse("00000000-0000-0000-0000-000000000004")

	incheonID  = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	cheongjuID = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	sejongID   = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	icheonID   = uuid.MustParse("00000000-0000-0000-0000-000000000104")
	gumiID     = uuid.MustParse("00000000-0000-0000-0000-000000000105")
)

type fakeHubRepo struct {
	byID   map[uuid.UUID]*domain.Hub
	byName map[string]*domain.Hub
}

func (f *fakeHubRepo) GetHubByID(ctx context.Context, id uuid.UUID) (*domain.Hub, error) {
	hub, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: hub %s", domain.ErrNotFound, id)
	}
	return hub, nil
}

func (f *fakeHubRepo) GetHubByName(ctx context.Context, name string) (*domain.Hub, error) {
	hub, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: hub named %q", domain.ErrNotFound, name)
	}
	return hub, nil
}

func testHubs() *fakeHubRepo {
	center := func(id uuid.UUID, name string, lon, lat float64) *domain.Hub {
		return &domain.Hub{HubID: id, Name: name, Coords: domain.Coordinates{Lon: lon, Lat: lat}, IsCenter: true}
	}
	seoul := center(seoulID, "Seoul Center", 1, 1)
	daejeon := center(daejeonID, "Daejeon Center", 2, 2)
	gyeonggi := center(gyeonggiID, "South Gyeonggi Center", 3, 3)
	daegu := center(daeguID, "Daegu Center", 4, 4)

	spoke := func(id uuid.UUID, name string, lon, lat float64, c *domain.Hub) *domain.Hub {
		return &domain.Hub{HubID: id, Name: name, Coords: domain.Coordinates{Lon: lon, Lat: lat}, CenterHub: c}
	}
	incheon := spoke(incheonID, "Incheon Hub", 11, 11, seoul)
	cheongju := spoke(cheongjuID, "Cheongju Hub", 12, 12, daejeon)
	sejong := spoke(sejongID, "Sejong Hub", 13, 13, daejeon)
	icheon := spoke(icheonID, "Icheon Hub", 14, 14, gyeonggi)
	gumi := spoke(gumiID, "Gumi Hub", 15, 15, daegu)

	repo := &fakeHubRepo{
		byID:   map[uuid.UUID]*domain.Hub{},
		byName: map[string]*domain.Hub{},
	}
	for _, h := range []*domain.Hub{seoul, daejeon, gyeonggi, daegu, incheon, cheongju, sejong, icheon, gumi} {
		repo.byID[h.HubID] = h
		repo.byName[h.Name] = h
	}
	return repo
}

func testTopology() Topology {
	return Topology{
		seoulID:    {},
		daejeonID:  {},
		gyeonggiID: {Peripheral: true, BridgeVia: daejeonID},
		daeguID:    {Peripheral: true, BridgeVia: daejeonID},
	}
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newResolver(hubs *fakeHubRepo, legs *navigation.MockLegProvider) *RouteResolver {
	return &RouteResolver{
		Hubs:     hubs,
		Legs:     legs,
		Topology: testTopology(),
		Now:      func() time.Time { return testNow },
	}
}

func coords(repo *fakeHubRepo, id uuid.UUID) domain.Coordinates {
	return repo.byID[id].Coords
}

func TestResolveCenterToCenterSingleDirectLeg(t *testing.T) {
	repo := testHubs()
	legs := navigation.NewMockLegProvider([]navigation.MockLeg{
		{From: coords(repo, seoulID), To: coords(repo, daejeonID), Meters: 10000, Seconds: 600},
	})
	r := newResolver(repo, legs)

	resolved, err := r.Resolve(context.Background(), repo.byID[seoulID], repo.byID[daejeonID])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if legs.Calls != 1 {
		t.Fatalf("oracle calls = %d, want 1", legs.Calls)
	}
	if resolved.DistanceKm != 10.00 {
		t.Fatalf("distance = %v, want 10.00", resolved.DistanceKm)
	}
	if want := testNow.Add(600 * time.Second); !resolved.EstimatedArrivalAt.Equal(want) {
		t.Fatalf("arrival = %v, want %v", resolved.EstimatedArrivalAt, want)
	}
}

func TestResolveSameCenterSumsApproachesOnly(t *testing.T) {
	repo := testHubs()
	legs := navigation.NewMockLegProvider([]navigation.MockLeg{
		{From: coords(repo, cheongjuID), To: coords(repo, daejeonID), Meters: 1234, Seconds: 100},
		{From: coords(repo, sejongID), To: coords(repo, daejeonID), Meters: 2000, Seconds: 200},
	})
	r := newResolver(repo, legs)

	resolved, err := r.Resolve(context.Background(), repo.byID[cheongjuID], repo.byID[sejongID])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two approach legs, no inter-center leg.
	if legs.Calls != 2 {
		t.Fatalf("oracle calls = %d, want 2", legs.Calls)
	}
	if resolved.DistanceKm != 3.23 {
		t.Fatalf("distance = %v, want 3.23", resolved.DistanceKm)
	}
	if want := testNow.Add(300 * time.Second); !resolved.EstimatedArrivalAt.Equal(want) {
		t.Fatalf("arrival = %v, want %v", resolved.EstimatedArrivalAt, want)
	}
}

func TestResolveStartAtOwnCenterZeroLeg(t *testing.T) {
	repo := testHubs()
	legs := navigation.NewMockLegProvider([]navigation.MockLeg{
		{From: coords(repo, cheongjuID), To: coords(repo, daejeonID), Meters: 5000, Seconds: 500},
	})
	r := newResolver(repo, legs)

	// Daejeon Center is Cheongju's own center: only the approach leg counts.
	resolved, err := r.Resolve(context.Background(), repo.byID[daejeonID], repo.byID[cheongjuID])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if legs.Calls != 1 {
		t.Fatalf("oracle calls = %d, want 1", legs.Calls)
	}
	if resolved.DistanceKm != 5.00 {
		t.Fatalf("distance = %v, want 5.00", resolved.DistanceKm)
	}
}

func TestResolveOneHopBetweenCenters(t *testing.T) {
	repo := testHubs()
	legs := navigation.NewMockLegProvider([]navigation.MockLeg{
		{From: coords(repo, cheongjuID), To: coords(repo, daejeonID), Meters: 1000, Seconds: 100},
		{From: coords(repo, incheonID), To: coords(repo, seoulID), Meters: 2000, Seconds: 200},
		{From: coords(repo, daejeonID), To: coords(repo, seoulID), Meters: 150000, Seconds: 7200},
	})
	r := newResolver(repo, legs)

	resolved, err := r.Resolve(context.Background(), repo.byID[cheongjuID], repo.byID[incheonID])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if legs.Calls != 3 {
		t.Fatalf("oracle calls = %d, want 3", legs.Calls)
	}
	if resolved.DistanceKm != 153.00 {
		t.Fatalf("distance = %v, want 153.00", resolved.DistanceKm)
	}
	if want := testNow.Add(7500 * time.Second); !resolved.EstimatedArrivalAt.Equal(want) {
		t.Fatalf("arrival = %v, want %v", resolved.EstimatedArrivalAt, want)
	}
}

func TestResolveTwoHopThroughBridge(t *testing.T) {
	repo := testHubs()
	legs := navigation.NewMockLegProvider([]navigation.MockLeg{
		{From: coords(repo, icheonID), To: coords(repo, gyeonggiID), Meters: 1000, Seconds: 100},
		{From: coords(repo, gumiID), To: coords(repo, daeguID), Meters: 2000, Seconds: 200},
		{From: coords(repo, gyeonggiID), To: coords(repo, daejeonID), Meters: 100000, Seconds: 3600},
		{From: coords(repo, daejeonID), To: coords(repo, daeguID), Meters: 120000, Seconds: 4000},
	})
	r := newResolver(repo, legs)

	resolved, err := r.Resolve(context.Background(), repo.byID[icheonID], repo.byID[gumiID])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if legs.Calls != 4 {
		t.Fatalf("oracle calls = %d, want 4", legs.Calls)
	}
	if resolved.DistanceKm != 223.00 {
		t.Fatalf("distance = %v, want 223.00", resolved.DistanceKm)
	}
	if want := testNow.Add(7900 * time.Second); !resolved.EstimatedArrivalAt.Equal(want) {
		t.Fatalf("arrival = %v, want %v", resolved.EstimatedArrivalAt, want)
	}
}

func TestResolveFailedLegFailsWholeResolution(t *testing.T) {
	repo := testHubs()
	legs := navigation.NewMockLegProvider(nil)
	r := newResolver(repo, legs)

	_, err := r.Resolve(context.Background(), repo.byID[cheongjuID], repo.byID[incheonID])
	if !errors.Is(err, domain.ErrExternal) {
		t.Fatalf("error = %v, want ErrExternal", err)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	r := &RouteResolver{Now: func() time.Time { return testNow }}

	l1 := domain.RouteLeg{DistanceMeters: 100, DurationSeconds: 10}
	l2 := domain.RouteLeg{DistanceMeters: 250, DurationSeconds: 25}
	l3 := domain.RouteLeg{DistanceMeters: 999, DurationSeconds: 99}

	orders := [][]domain.RouteLeg{
		{l1, l2, l3},
		{l3, l1, l2},
		{l2, l3, l1},
	}

	want := r.aggregate(l1, l2, l3)
	for i, legs := range orders {
		got := r.aggregate(legs...)
		if got != want {
			t.Errorf("order %d: aggregate = %+v, want %+v", i, got, want)
		}
	}
}

func TestRoundKmHalfUp(t *testing.T) {
	cases := []struct {
		meters int
		want   float64
	}{
		{0, 0},
		{1234, 1.23},
		{1235, 1.24},
		{999999, 1000.00},
	}

	for _, c := range cases {
		if got := roundKm(c.meters); got != c.want {
			t.Errorf("roundKm(%d) = %v, want %v", c.meters, got, c.want)
		}
	}
}
