package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"hub-route-service/internal/domain"
	"hub-route-service/internal/ports"

	"github.com/google/uuid"
)

// CenterLink describes how a center hub reaches the rest of the center
// network. Peripheral centers have no direct long-haul connection to other
// centers and must route through their bridge center, except when the far
// center is the bridge itself.
type CenterLink struct {
	Peripheral bool
	BridgeVia  uuid.UUID
}

// Topology is the fixed center-hub network, keyed by stable hub ids.
// Display names never participate in routing decisions.
type Topology map[uuid.UUID]CenterLink

// LegPlanKind tags the long-haul shape a hub pair requires.
type LegPlanKind int

const (
	// PlanDirect: both endpoints are centers; a single leg between them.
	PlanDirect LegPlanKind = iota
	// PlanSameCenter: both hubs share one center; approach legs only.
	PlanSameCenter
	// PlanOneHop: one inter-center leg plus both approach legs.
	PlanOneHop
	// PlanTwoHop: inter-center travel bridged through a third center.
	PlanTwoHop
)

// LegPlan is the classifier output: which oracle legs to compute between
// the two effective centers. From/To/Via are center hub ids.
type LegPlan struct {
	Kind LegPlanKind
	From uuid.UUID
	To   uuid.UUID
	Via  uuid.UUID
}

// PlanBetween classifies the long-haul segment between two effective
// centers. The function is symmetric: a peripheral center on either side
// forces the bridge unless the far center is that bridge.
func (t Topology) PlanBetween(a, b *domain.Hub) LegPlan {
	if a.HubID == b.HubID {
		return LegPlan{Kind: PlanSameCenter}
	}

	la := t[a.HubID]
	lb := t[b.HubID]

	switch {
	case la.Peripheral && b.HubID != la.BridgeVia:
		return LegPlan{Kind: PlanTwoHop, From: a.HubID, Via: la.BridgeVia, To: b.HubID}
	case lb.Peripheral && a.HubID != lb.BridgeVia:
		return LegPlan{Kind: PlanTwoHop, From: a.HubID, Via: lb.BridgeVia, To: b.HubID}
	default:
		return LegPlan{Kind: PlanOneHop, From: a.HubID, To: b.HubID}
	}
}

type topologyConfig struct {
	Centers []struct {
		Name       string `json:"name"`
		Peripheral bool   `json:"peripheral"`
		BridgeVia  string `json:"bridge_via"`
	} `json:"centers"`
}

// LoadTopology reads the center topology configuration and resolves every
// named center to its stable hub id through the hub registry. Routing after
// startup is therefore immune to hub renames.
func LoadTopology(ctx context.Context, path string, hubs ports.HubRepository) (Topology, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load topology: read %q: %w", path, err)
	}

	var cfg topologyConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("load topology: parse %q: %w", path, err)
	}
	if len(cfg.Centers) == 0 {
		return nil, errors.New("load topology: no centers configured")
	}

	ids := make(map[string]uuid.UUID, len(cfg.Centers))
	for _, c := range cfg.Centers {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, errors.New("load topology: center with empty name")
		}

		hub, err := hubs.GetHubByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load topology: resolve center %q: %w", name, err)
		}
		if !hub.IsCenter {
			return nil, fmt.Errorf("load topology: hub %q is not a center", name)
		}
		ids[name] = hub.HubID
	}

	topo := make(Topology, len(cfg.Centers))
	for _, c := range cfg.Centers {
		link := CenterLink{Peripheral: c.Peripheral}

		if c.Peripheral {
			bridge, ok := ids[strings.TrimSpace(c.BridgeVia)]
			if !ok {
				return nil, fmt.Errorf(
					"load topology: peripheral center %q bridges via unknown center %q",
					c.Name, c.BridgeVia,
				)
			}
			link.BridgeVia = bridge
		}

		topo[ids[strings.TrimSpace(c.Name)]] = link
	}

	for id, link := range topo {
		if link.Peripheral && topo[link.BridgeVia].Peripheral {
			return nil, fmt.Errorf("load topology: center %s bridges via a peripheral center", id)
		}
	}

	return topo, nil
}
