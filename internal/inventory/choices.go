package inventory

import (
	"context"
	"strings"
)

// Vendor-keyed field names used by NetBox's legacy _choices endpoint and
// some bridge tools.
const (
	vendorKeyInterfaceType = "interface:type"
	vendorKeyRearPortType  = "rearport:type"
	vendorKeyFrontPortType = "frontport:type"
)

// Choices aggregates the enumerated type choices for interfaces, rear
// ports, and front ports from up to three sources:
//
//  1. The bridge "netbox_get_choices" tool
//  2. NetBox 3.x's REST bulk-choices endpoint
//  3. DRF OPTIONS metadata on the three port resources
//
// Sources are attempted independently; a failing source is skipped, never
// fatal. Merging keeps the first occurrence of each value (case-insensitive)
// in source order, so the earliest source's label wins. When every source
// is empty or unreachable, a built-in default catalog is returned — callers
// never receive an all-empty catalog.
func (s *Service) Choices(ctx context.Context) ChoiceCatalog {
	var sources []ChoiceCatalog

	if cat, err := s.bridgeChoices(ctx); err == nil {
		sources = append(sources, cat)
	} else {
		s.logger.Debug("bridge choices unavailable", "error", err)
	}

	if cat, err := s.restChoices(ctx); err == nil {
		sources = append(sources, cat)
	} else {
		s.logger.Debug("rest choices unavailable", "error", err)
	}

	if cat, err := s.optionsChoices(ctx); err == nil {
		sources = append(sources, cat)
	} else {
		s.logger.Debug("options choices unavailable", "error", err)
	}

	merged := mergeChoiceSources(sources)
	if merged.Empty() {
		return defaultCatalog()
	}
	return merged
}

// bridgeChoices queries the bridge "choices" tool. Tools that already
// answer in target field names pass through; a raw vendor-keyed shape is
// normalized first.
func (s *Service) bridgeChoices(ctx context.Context) (ChoiceCatalog, error) {
	result, err := s.bridge.Invoke(ctx, "netbox_get_choices", nil)
	if err != nil {
		return nil, err
	}

	raw, ok := result.(map[string]any)
	if !ok || len(raw) == 0 {
		return ChoiceCatalog{}, nil
	}

	for _, field := range choiceFields {
		if _, ok := raw[field]; ok {
			return catalogFromFieldKeys(raw), nil
		}
	}
	return catalogFromVendorKeys(raw), nil
}

// restChoices queries NetBox 3.x's bulk choices endpoint.
func (s *Service) restChoices(ctx context.Context) (ChoiceCatalog, error) {
	result, err := s.direct.Get(ctx, "/api/dcim/_choices/", nil)
	if err != nil {
		return nil, err
	}
	raw, ok := result.(map[string]any)
	if !ok {
		return ChoiceCatalog{}, nil
	}
	return catalogFromVendorKeys(raw), nil
}

// optionsChoices issues DRF OPTIONS requests against the three port
// resources and extracts the "type" field's choices from each write-action
// schema. All three requests must succeed for the source to count.
func (s *Service) optionsChoices(ctx context.Context) (ChoiceCatalog, error) {
	paths := []struct {
		field string
		path  string
	}{
		{FieldInterfaceTypes, "/api/dcim/interfaces/"},
		{FieldRearPortTypes, "/api/dcim/rear-ports/"},
		{FieldFrontPortTypes, "/api/dcim/front-ports/"},
	}

	cat := ChoiceCatalog{}
	for _, p := range paths {
		result, err := s.direct.Options(ctx, p.path)
		if err != nil {
			return nil, err
		}
		cat[p.field] = typeChoicesFromSchema(result)
	}
	return cat, nil
}

// typeChoicesFromSchema digs actions.POST.type.choices out of a DRF
// OPTIONS response.
func typeChoicesFromSchema(schema any) []ChoiceItem {
	root, ok := schema.(map[string]any)
	if !ok {
		return nil
	}
	actions, _ := root["actions"].(map[string]any)
	post, _ := actions["POST"].(map[string]any)
	field, _ := post["type"].(map[string]any)
	choices, _ := field["choices"].([]any)
	return normalizeChoiceList(choices)
}

// catalogFromFieldKeys reads a source that already uses target field names.
func catalogFromFieldKeys(raw map[string]any) ChoiceCatalog {
	cat := ChoiceCatalog{}
	for _, field := range choiceFields {
		list, _ := raw[field].([]any)
		cat[field] = normalizeChoiceList(list)
	}
	return cat
}

// catalogFromVendorKeys reads a raw vendor-keyed shape ("interface:type"
// and friends) into target field names.
func catalogFromVendorKeys(raw map[string]any) ChoiceCatalog {
	read := func(key string) []ChoiceItem {
		list, _ := raw[key].([]any)
		return normalizeChoiceList(list)
	}
	return ChoiceCatalog{
		FieldInterfaceTypes: read(vendorKeyInterfaceType),
		FieldRearPortTypes:  read(vendorKeyRearPortType),
		FieldFrontPortTypes: read(vendorKeyFrontPortType),
	}
}

// normalizeChoiceList converts one source's raw choice list into the common
// shape: lowercase value, best-available label. Items without a value are
// dropped.
func normalizeChoiceList(list []any) []ChoiceItem {
	out := make([]ChoiceItem, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value := strings.ToLower(stringField(m, "value"))
		if value == "" {
			continue
		}
		label := stringField(m, "label")
		if label == "" {
			label = stringField(m, "display")
		}
		if label == "" {
			label = stringField(m, "display_name")
		}
		if label == "" {
			label = value
		}
		out = append(out, ChoiceItem{Value: value, Label: label})
	}
	return out
}

// mergeChoiceSources concatenates sources per field, keeping the first
// occurrence of each value (case-insensitive). The merge is shape-agnostic:
// sources are already normalized, so adding a source never touches this
// logic.
func mergeChoiceSources(sources []ChoiceCatalog) ChoiceCatalog {
	merged := ChoiceCatalog{}
	for _, field := range choiceFields {
		seen := make(map[string]bool)
		var items []ChoiceItem
		for _, src := range sources {
			for _, item := range src[field] {
				value := strings.ToLower(item.Value)
				if value == "" || seen[value] {
					continue
				}
				seen[value] = true
				label := item.Label
				if label == "" {
					label = value
				}
				items = append(items, ChoiceItem{Value: value, Label: label})
			}
		}
		merged[field] = items
	}
	return merged
}

// defaultCatalog is the built-in fallback when no choice source is
// available: minimal but useful values for common copper and fibre ports.
func defaultCatalog() ChoiceCatalog {
	return ChoiceCatalog{
		FieldInterfaceTypes: {
			{Value: "virtual", Label: "Virtual"},
			{Value: "1000base-t", Label: "1G Copper (1000BASE-T)"},
			{Value: "10gbase-x-sfpp", Label: "10G SFP+"},
		},
		FieldRearPortTypes: {
			{Value: "8p8c", Label: "8P8C (RJ45)"},
			{Value: "lc", Label: "LC"},
		},
		FieldFrontPortTypes: {
			{Value: "8p8c", Label: "8P8C (RJ45)"},
			{Value: "lc", Label: "LC"},
		},
	}
}
