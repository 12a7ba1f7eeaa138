package inventory

import (
	"context"
	"testing"
)

func choiceList(pairs ...[2]string) []any {
	out := make([]any, len(pairs))
	for i, p := range pairs {
		out[i] = map[string]any{"value": p[0], "label": p[1]}
	}
	return out
}

func TestChoicesMergeFirstSourceLabelWins(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return map[string]any{
			FieldInterfaceTypes: choiceList([2]string{"1000BASE-T", "1G Copper"}),
			FieldRearPortTypes:  choiceList(),
			FieldFrontPortTypes: choiceList(),
		}, nil
	}}
	direct := &fakeDirect{configured: true, handler: func(method, path string, params map[string]any, _ any) (any, error) {
		if method == "GET" {
			return map[string]any{
				vendorKeyInterfaceType: choiceList(
					[2]string{"1000base-t", "Different Label"},
					[2]string{"virtual", "Virtual"},
				),
			}, nil
		}
		return nil, &DirectError{Method: method, Path: path, Status: 405, Body: "no"}
	}}
	svc := newTestService(t, bridge, direct)

	cat := svc.Choices(context.Background())

	items := cat[FieldInterfaceTypes]
	if len(items) != 2 {
		t.Fatalf("interface types = %v, want 2 deduplicated items", items)
	}
	if items[0].Value != "1000base-t" || items[0].Label != "1G Copper" {
		t.Errorf("first item = %+v, want earliest source's label to win", items[0])
	}
	if items[1].Value != "virtual" {
		t.Errorf("second item = %+v, want virtual from later source", items[1])
	}
}

func TestChoicesFallsBackToDefaults(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return nil, &BridgeError{Tool: tool, Status: 502, Body: "down"}
	}}
	svc := newTestService(t, bridge, &fakeDirect{})

	cat := svc.Choices(context.Background())

	if cat.Empty() {
		t.Fatal("catalog must never be empty")
	}
	found := false
	for _, item := range cat[FieldInterfaceTypes] {
		if item.Value == "1000base-t" {
			found = true
		}
	}
	if !found {
		t.Errorf("default catalog missing 1000base-t: %v", cat[FieldInterfaceTypes])
	}
}

func TestChoicesFromOptionsSchema(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return nil, &BridgeError{Tool: tool, Status: 502, Body: "down"}
	}}
	schema := func(value, label string) map[string]any {
		return map[string]any{
			"actions": map[string]any{
				"POST": map[string]any{
					"type": map[string]any{
						"choices": choiceList([2]string{value, label}),
					},
				},
			},
		}
	}
	direct := &fakeDirect{configured: true, handler: func(method, path string, params map[string]any, _ any) (any, error) {
		if method != "OPTIONS" {
			return nil, &DirectError{Method: method, Path: path, Status: 404, Body: "gone"}
		}
		switch path {
		case "/api/dcim/interfaces/":
			return schema("10gbase-x-sfpp", "10G SFP+"), nil
		case "/api/dcim/rear-ports/":
			return schema("8p8c", "8P8C"), nil
		case "/api/dcim/front-ports/":
			return schema("lc", "LC"), nil
		}
		return nil, &DirectError{Method: method, Path: path, Status: 404, Body: "gone"}
	}}
	svc := newTestService(t, bridge, direct)

	cat := svc.Choices(context.Background())

	if got := cat[FieldInterfaceTypes]; len(got) != 1 || got[0].Value != "10gbase-x-sfpp" {
		t.Errorf("interface types = %v, want schema-extracted value", got)
	}
	if got := cat[FieldRearPortTypes]; len(got) != 1 || got[0].Value != "8p8c" {
		t.Errorf("rear port types = %v, want schema-extracted value", got)
	}
	if got := cat[FieldFrontPortTypes]; len(got) != 1 || got[0].Value != "lc" {
		t.Errorf("front port types = %v, want schema-extracted value", got)
	}
}

// One OPTIONS failure invalidates the whole source: partial schema data
// would misrepresent the port resources.
func TestOptionsSourceIsAllOrNothing(t *testing.T) {
	bridge := &fakeBridge{handler: func(tool string, args map[string]any) (any, error) {
		return nil, &BridgeError{Tool: tool, Status: 502, Body: "down"}
	}}
	direct := &fakeDirect{configured: true, handler: func(method, path string, params map[string]any, _ any) (any, error) {
		if method == "OPTIONS" && path == "/api/dcim/front-ports/" {
			return nil, &DirectError{Method: method, Path: path, Status: 500, Body: "boom"}
		}
		if method == "OPTIONS" {
			return map[string]any{
				"actions": map[string]any{
					"POST": map[string]any{
						"type": map[string]any{"choices": choiceList([2]string{"8p8c", "8P8C"})},
					},
				},
			}, nil
		}
		return nil, &DirectError{Method: method, Path: path, Status: 404, Body: "gone"}
	}}
	svc := newTestService(t, bridge, direct)

	cat := svc.Choices(context.Background())

	// With every source failed or discarded, the defaults apply.
	if cat.Empty() {
		t.Fatal("catalog must never be empty")
	}
	if got := cat[FieldInterfaceTypes]; len(got) == 0 || got[0].Value != "virtual" {
		t.Errorf("interface types = %v, want default catalog", got)
	}
}

func TestNormalizeChoiceList(t *testing.T) {
	in := []any{
		map[string]any{"value": "LC", "display": "LC Connector"},
		map[string]any{"value": "8p8c"},
		map[string]any{"label": "no value, dropped"},
		"not an object",
	}
	got := normalizeChoiceList(in)

	if len(got) != 2 {
		t.Fatalf("normalized = %v, want 2 items", got)
	}
	if got[0].Value != "lc" {
		t.Errorf("value = %q, want lowercased %q", got[0].Value, "lc")
	}
	if got[0].Label != "LC Connector" {
		t.Errorf("label = %q, want display fallback", got[0].Label)
	}
	if got[1].Label != "8p8c" {
		t.Errorf("label = %q, want value as final fallback", got[1].Label)
	}
}
