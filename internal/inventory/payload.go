package inventory

import (
	"context"
	"fmt"
	"strings"
)

// Role identifier keys. NetBox v3 installs expect "device_role" while v4
// expects "role"; the prepared payload carries the resolved role id under
// both keys so one payload posts cleanly against either schema variant.
// This duplication is a compatibility shim, not an oversight.
const (
	roleKey       = "role"
	roleKeyLegacy = "device_role"
)

// defaultDeviceStatus is applied when the caller does not specify a status.
const defaultDeviceStatus = "active"

// requiredDeviceFields are validated together before any network call;
// a ValidationError lists every missing field at once.
var requiredDeviceFields = []string{"name", "site", "role", "device_type"}

// optionalDeviceFields are copied into the payload only when present,
// never defaulted. NetBox validates their values.
var optionalDeviceFields = []string{"serial", "rack", "position", "face"}

// PrepareDevice resolves the reference fields of a device creation request
// and assembles a creation-ready payload.
//
// site, role, and manufacturer accept a name or a slug; device_type accepts
// a model or a slug. Each reference resolves through ResolveOne with the
// exact-name filter first, the slug filter second.
func (s *Service) PrepareDevice(ctx context.Context, fields map[string]any) (*PrepareResult, error) {
	var missing []string
	for _, key := range requiredDeviceFields {
		if stringField(fields, key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	name := stringField(fields, "name")
	siteIn := stringField(fields, "site")
	roleIn := stringField(fields, "role")
	dtypeIn := stringField(fields, "device_type")

	site, err := s.ResolveOne(ctx, "netbox_get_sites", "/api/dcim/sites/",
		[]Filter{{"name": siteIn}, {"slug": siteIn}})
	if err != nil {
		return nil, fmt.Errorf("resolving site %q: %w", siteIn, err)
	}

	role, err := s.ResolveOne(ctx, "netbox_get_device_roles", "/api/dcim/device-roles/",
		[]Filter{{"name": roleIn}, {"slug": roleIn}})
	if err != nil {
		return nil, fmt.Errorf("resolving role %q: %w", roleIn, err)
	}

	var manufacturerID *int
	if manuIn := stringField(fields, "manufacturer"); manuIn != "" {
		manu, err := s.ResolveOne(ctx, "netbox_get_manufacturers", "/api/dcim/manufacturers/",
			[]Filter{{"name": manuIn}, {"slug": manuIn}})
		if err != nil {
			return nil, fmt.Errorf("resolving manufacturer %q: %w", manuIn, err)
		}
		manufacturerID = &manu.ID
	}

	dtype, err := s.ResolveOne(ctx, "netbox_get_device_types", "/api/dcim/device-types/",
		[]Filter{{"model": dtypeIn}, {"slug": dtypeIn}})
	if err != nil {
		return nil, fmt.Errorf("resolving device type %q: %w", dtypeIn, err)
	}

	status := stringField(fields, "status")
	if status == "" {
		status = defaultDeviceStatus
	}

	payload := map[string]any{
		"name":        name,
		"site":        site.ID,
		roleKeyLegacy: role.ID,
		roleKey:       role.ID,
		"device_type": dtype.ID,
		"status":      strings.ToLower(status),
	}

	for _, key := range optionalDeviceFields {
		if v, ok := fields[key]; ok && v != nil && fmt.Sprint(v) != "" {
			payload[key] = v
		}
	}

	return &PrepareResult{
		Payload: payload,
		Resolved: ResolvedRefs{
			SiteID:         site.ID,
			RoleID:         role.ID,
			DeviceTypeID:   dtype.ID,
			ManufacturerID: manufacturerID,
		},
	}, nil
}

// CreateDevice creates a device. When body lacks a ready "payload" object
// the request is prepared first, so callers may send raw name/slug strings.
//
// The bridge channel is tried first; on bridge failure the payload is
// POSTed directly to NetBox when the fallback is configured. When both
// channels fail, the direct error is returned wrapped with the original
// bridge failure retained for context. The returned CreateResult names
// the channel that served the creation.
func (s *Service) CreateDevice(ctx context.Context, body map[string]any) (*CreateResult, error) {
	payload, _ := body["payload"].(map[string]any)
	if payload == nil {
		prepared, err := s.PrepareDevice(ctx, body)
		if err != nil {
			return nil, err
		}
		payload = prepared.Payload
	}

	result, bridgeErr := s.bridge.Invoke(ctx, "netbox_create_device", map[string]any{"payload": payload})
	if bridgeErr == nil {
		return &CreateResult{Result: result, Channel: ChannelBridge}, nil
	}

	if s.direct.Configured() {
		s.logger.Debug("bridge create failed, trying direct channel", "error", bridgeErr)
		result, err := s.direct.Post(ctx, "/api/dcim/devices/", payload)
		if err == nil {
			return &CreateResult{Result: result, Channel: ChannelDirect}, nil
		}
		return nil, fmt.Errorf("creating device: %w (bridge: %v)", err, bridgeErr)
	}

	return nil, bridgeErr
}
