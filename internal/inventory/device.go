package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DeviceWithPorts resolves a device by decimal identifier or by name
// (plus optional site slug) and fetches its three port collections.
//
// Name resolution with a site constraint broadens exactly once: if the
// site-scoped filter yields nothing, the name alone is tried, never more.
// Port fetches run concurrently; they share no state and depend only on
// the already-resolved device id. A port fetch failure is surfaced as-is,
// since partial port data would mislead the caller.
func (s *Service) DeviceWithPorts(ctx context.Context, ref, site string) (*DeviceDetail, error) {
	if ref == "" {
		return nil, &ValidationError{Missing: []string{"device"}}
	}

	var device map[string]any
	if isDigits(ref) {
		id, _ := strconv.Atoi(ref)
		resolved, err := s.deviceByID(ctx, id)
		if err != nil {
			return nil, err
		}
		device = resolved
	} else {
		filters := []Filter{{"name": ref}}
		if site != "" {
			filters = []Filter{{"name": ref, "site": site}, {"name": ref}}
		}
		handle, err := s.ResolveOne(ctx, "netbox_get_devices", "/api/dcim/devices/", filters)
		if err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				nf.Ref = deviceRefLabel(ref, site)
			}
			return nil, err
		}
		device = handle.Raw
	}

	deviceID := toInt(device["id"])

	var interfaces, frontPorts, rearPorts []map[string]any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interfaces, err = s.devicePorts(gctx, "netbox_get_interfaces", deviceID)
		return err
	})
	g.Go(func() error {
		var err error
		frontPorts, err = s.devicePorts(gctx, "netbox_get_front_ports", deviceID)
		return err
	})
	g.Go(func() error {
		var err error
		rearPorts, err = s.devicePorts(gctx, "netbox_get_rear_ports", deviceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DeviceDetail{
		Device: DeviceSummary{
			ID:         deviceID,
			Name:       stringField(device, "name"),
			Site:       slugOrName(device["site"]),
			Role:       slugOrName(device["role"]),
			DeviceType: deviceTypeLabel(device["device_type"]),
		},
		Interfaces: interfaces,
		FrontPorts: frontPorts,
		RearPorts:  rearPorts,
	}, nil
}

// deviceByID resolves a device by numeric identifier: bridge first, direct
// REST when configured. Neither channel responding yields a NotFoundError
// wrapping the bridge failure.
func (s *Service) deviceByID(ctx context.Context, id int) (map[string]any, error) {
	const tool = "netbox_get_device"
	path := fmt.Sprintf("/api/dcim/devices/%d/", id)

	result, bridgeErr := s.bridge.Invoke(ctx, tool, map[string]any{"id": id})
	if bridgeErr == nil {
		if device, ok := result.(map[string]any); ok && len(device) > 0 {
			return device, nil
		}
		return nil, &NotFoundError{Tool: tool, Path: path, Ref: fmt.Sprintf("device %d", id)}
	}

	if s.direct.Configured() {
		result, err := s.direct.Get(ctx, path, nil)
		if err == nil {
			if device, ok := result.(map[string]any); ok && len(device) > 0 {
				return device, nil
			}
		}
	}

	return nil, &NotFoundError{
		Tool: tool,
		Path: path,
		Ref:  fmt.Sprintf("device %d", id),
		err:  bridgeErr,
	}
}

// devicePorts fetches one port collection for a device via the bridge.
func (s *Service) devicePorts(ctx context.Context, tool string, deviceID int) ([]map[string]any, error) {
	result, err := s.bridge.Invoke(ctx, tool, map[string]any{
		"device_id": deviceID,
		"all":       true,
	})
	if err != nil {
		return nil, err
	}
	return resultRows(result), nil
}

// deviceTypeLabel prefers the device type's slug, falling back to its model
// (the device type's display name).
func deviceTypeLabel(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if slug := stringField(m, "slug"); slug != "" {
		return slug
	}
	return stringField(m, "model")
}

// deviceRefLabel formats a device reference for error messages.
func deviceRefLabel(ref, site string) string {
	if site == "" {
		return fmt.Sprintf("device %q", ref)
	}
	return fmt.Sprintf("device %q (site %q)", ref, site)
}
