package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// portSpec maps a port kind onto its bridge tools and REST path.
type portSpec struct {
	bulkTool string
	itemTool string
	restPath string
	field    string
}

var portSpecs = map[PortKind]portSpec{
	PortInterfaces: {
		bulkTool: "netbox_create_interfaces",
		itemTool: "netbox_create_interface",
		restPath: "/api/dcim/interfaces/",
		field:    "interfaces",
	},
	PortRearPorts: {
		bulkTool: "netbox_create_rear_ports",
		itemTool: "netbox_create_rear_port",
		restPath: "/api/dcim/rear-ports/",
		field:    "rear_ports",
	},
	PortFrontPorts: {
		bulkTool: "netbox_create_front_ports",
		itemTool: "netbox_create_front_port",
		restPath: "/api/dcim/front-ports/",
		field:    "front_ports",
	},
}

// CreatePorts creates a batch of child objects for a device.
//
// One bulk bridge call covers the whole batch first; a bulk success is
// returned as the channel delivered it, with no per-item reconciliation.
// On bulk failure — of any kind, transient or permanent — each item is
// processed independently: bridge create, then direct REST create when
// the bridge fails, recording either the created object or an input/error
// pair. One item's failure never halts the remaining items.
//
// When every item failed, an *AggregateError carries the full error list
// so callers can tell "all failed" from a partial result.
func (s *Service) CreatePorts(ctx context.Context, kind PortKind, deviceID int, items []map[string]any) (*BatchResult, error) {
	spec, ok := portSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("inventory: unknown port kind %q", kind)
	}

	if len(items) == 0 {
		return nil, &ValidationError{Reason: spec.field + "[] is required"}
	}
	// Front ports may omit the device: NetBox infers it from the rear port.
	if deviceID == 0 && kind != PortFrontPorts {
		return nil, &ValidationError{Missing: []string{"device_id"}}
	}

	bulkArgs := map[string]any{spec.field: items}
	if deviceID != 0 {
		bulkArgs["device_id"] = deviceID
	}
	result, bulkErr := s.bridge.Invoke(ctx, spec.bulkTool, bulkArgs)
	if bulkErr == nil {
		return &BatchResult{Bulk: result, Channel: ChannelBridge}, nil
	}
	s.logger.Debug("bulk create failed, falling back to per-item",
		"kind", string(kind),
		"count", len(items),
		"error", bulkErr,
	)

	created := make([]any, 0, len(items))
	var itemErrors []ItemError
	var viaBridge, viaDirect int

	for _, item := range items {
		payload, err := buildPortPayload(kind, deviceID, item)
		if err != nil {
			itemErrors = append(itemErrors, ItemError{Input: item, Error: err.Error()})
			continue
		}

		result, bridgeErr := s.bridge.Invoke(ctx, spec.itemTool, map[string]any{"payload": payload})
		if bridgeErr != nil {
			result, err = s.direct.Post(ctx, spec.restPath, payload)
			if err != nil {
				// An unconfigured fallback says nothing about the item;
				// report the bridge failure instead.
				if errors.Is(err, ErrDirectNotConfigured) {
					err = bridgeErr
				}
				itemErrors = append(itemErrors, ItemError{Input: item, Error: err.Error()})
				continue
			}
			viaDirect++
		} else {
			viaBridge++
		}
		created = append(created, result)
	}

	if len(itemErrors) > 0 && len(created) == 0 {
		return nil, &AggregateError{Kind: kind, Errors: itemErrors}
	}

	return &BatchResult{
		Channel: batchChannel(viaBridge, viaDirect),
		Created: created,
		Errors:  itemErrors,
	}, nil
}

// batchChannel names the channel a per-item batch went through.
func batchChannel(viaBridge, viaDirect int) string {
	switch {
	case viaBridge > 0 && viaDirect > 0:
		return ChannelMixed
	case viaDirect > 0:
		return ChannelDirect
	default:
		return ChannelBridge
	}
}

// buildPortPayload assembles the type-specific creation payload for one
// batch item. Validation failures here become per-item errors, not batch
// failures.
func buildPortPayload(kind PortKind, deviceID int, item map[string]any) (map[string]any, error) {
	name := stringField(item, "name")
	portType := strings.ToLower(stringField(item, "type"))
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if portType == "" {
		return nil, fmt.Errorf("type is required")
	}

	payload := map[string]any{
		"name": name,
		"type": portType,
	}

	switch kind {
	case PortInterfaces:
		payload["device"] = deviceID
	case PortRearPorts:
		payload["device"] = deviceID
		payload["positions"] = positiveOrOne(item["positions"])
	case PortFrontPorts:
		rearPort := toInt(item["rear_port_id"])
		if rearPort == 0 {
			return nil, fmt.Errorf("rear_port_id is required")
		}
		payload["rear_port"] = rearPort
		payload["rear_port_position"] = positiveOrOne(item["rear_port_position"])
		if deviceID != 0 {
			payload["device"] = deviceID
		}
	}

	if desc := stringField(item, "description"); desc != "" {
		payload["description"] = desc
	}

	return payload, nil
}

// positiveOrOne converts v to an int, defaulting anything non-positive to 1.
func positiveOrOne(v any) int {
	if n := toInt(v); n > 0 {
		return n
	}
	return 1
}
