package inventory

import (
	"context"
	"fmt"
)

// entityEndpoints maps an entity kind onto its bridge tool and REST paths.
// Some kinds carry more than one REST path because the endpoint moved
// between NetBox major versions; paths are tried in order.
type entityEndpoints struct {
	listTool  string
	restPaths []string
}

var endpoints = map[Kind]entityEndpoints{
	KindSite: {
		listTool:  "netbox_get_sites",
		restPaths: []string{"/api/dcim/sites/"},
	},
	KindRole: {
		listTool: "netbox_get_device_roles",
		// NetBox v3 serves /device-roles/, v4 installs may serve /roles/.
		restPaths: []string{"/api/dcim/device-roles/", "/api/dcim/roles/"},
	},
	KindManufacturer: {
		listTool:  "netbox_get_manufacturers",
		restPaths: []string{"/api/dcim/manufacturers/"},
	},
	KindDeviceType: {
		listTool:  "netbox_get_device_types",
		restPaths: []string{"/api/dcim/device-types/"},
	},
	KindDevice: {
		listTool:  "netbox_get_devices",
		restPaths: []string{"/api/dcim/devices/"},
	},
}

// List returns entities of the given kind, bridge channel first, direct
// REST on bridge failure. The response is passed through in the shape the
// winning channel produced.
//
// When the bridge fails and every REST path also fails (or REST is not
// configured), the original bridge error is returned.
func (s *Service) List(ctx context.Context, kind Kind, opts ListOptions) (any, error) {
	ep, ok := endpoints[kind]
	if !ok {
		return nil, fmt.Errorf("inventory: unknown entity kind %q", kind)
	}

	params := s.listParams(kind, opts)

	result, bridgeErr := s.bridge.Invoke(ctx, ep.listTool, params)
	if bridgeErr == nil {
		return result, nil
	}

	if s.direct.Configured() {
		s.logger.Debug("bridge list failed, trying direct channel",
			"kind", string(kind),
			"error", bridgeErr,
		)
		for _, path := range ep.restPaths {
			result, err := s.direct.Get(ctx, path, params)
			if err == nil {
				return result, nil
			}
		}
	}

	return nil, bridgeErr
}

// listParams assembles query parameters for a list operation. Absent
// options are omitted entirely rather than sent empty.
func (s *Service) listParams(kind Kind, opts ListOptions) map[string]any {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.limit
	}
	params := map[string]any{"limit": limit}

	switch kind {
	case KindDeviceType:
		if opts.Manufacturer != "" {
			params["manufacturer"] = opts.Manufacturer
		}
		if opts.ModelContains != "" {
			params["model__ic"] = opts.ModelContains
		}
	case KindDevice:
		if opts.NameContains != "" {
			params["name__ic"] = opts.NameContains
		}
		if opts.Site != "" {
			params["site"] = opts.Site
		}
	default:
		if opts.NameContains != "" {
			params["name__ic"] = opts.NameContains
		}
	}

	return params
}
