package inventory

// Kind identifies an inventory entity class.
type Kind string

// Entity kinds known to the resolver and list operations.
const (
	KindSite         Kind = "site"
	KindRole         Kind = "role"
	KindManufacturer Kind = "manufacturer"
	KindDeviceType   Kind = "device_type"
	KindDevice       Kind = "device"
)

// Channel names identify which path served an operation. ChannelMixed
// appears only on per-item batch results where the items split between
// the two channels.
const (
	ChannelBridge = "bridge"
	ChannelDirect = "direct"
	ChannelMixed  = "mixed"
)

// Filter is one attempt to locate an entity, expressed as exact-match
// query parameters (e.g. {"name": "Camera"} or {"slug": "camera"}).
// Filters are tried in order; the first one yielding a result wins.
type Filter map[string]any

// EntityHandle identifies a resolved inventory object. It is read-only
// once resolved and never cached across requests.
type EntityHandle struct {
	ID   int            `json:"id"`
	Name string         `json:"name,omitempty"`
	Slug string         `json:"slug,omitempty"`
	Raw  map[string]any `json:"-"`
}

// ListOptions controls entity list operations.
type ListOptions struct {
	// Limit is the maximum result count. Zero means the service default.
	Limit int

	// NameContains is an optional case-insensitive substring filter on name.
	NameContains string

	// Manufacturer and ModelContains apply to device-type lookups only.
	Manufacturer  string
	ModelContains string

	// Site applies to device lookups only (site slug).
	Site string
}

// ChoiceItem is one enumerated value for a field. Value is the uniqueness
// key (always lowercase); Label is display-only.
type ChoiceItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Choice catalog field names.
const (
	FieldInterfaceTypes = "interface_types"
	FieldRearPortTypes  = "rear_port_types"
	FieldFrontPortTypes = "front_port_types"
)

// choiceFields is the fixed field order used when merging sources.
var choiceFields = []string{FieldInterfaceTypes, FieldRearPortTypes, FieldFrontPortTypes}

// ChoiceCatalog maps field names to their enumerated choices.
// Insertion order within each field is discovery order across sources.
type ChoiceCatalog map[string][]ChoiceItem

// Empty reports whether every field of the catalog is empty.
func (c ChoiceCatalog) Empty() bool {
	for _, items := range c {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// DeviceSummary is a compact device description for UI consumption.
// Site and Role carry the slug when present, the name otherwise; DeviceType
// carries the slug when present, the model otherwise.
type DeviceSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Site       string `json:"site,omitempty"`
	Role       string `json:"role,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
}

// DeviceDetail is a resolved device plus its three port collections.
type DeviceDetail struct {
	Device     DeviceSummary    `json:"device"`
	Interfaces []map[string]any `json:"interfaces"`
	FrontPorts []map[string]any `json:"front_ports"`
	RearPorts  []map[string]any `json:"rear_ports"`
}

// ResolvedRefs records the identifiers a prepared payload was built from.
type ResolvedRefs struct {
	SiteID         int  `json:"site_id"`
	RoleID         int  `json:"role_id"`
	DeviceTypeID   int  `json:"device_type_id"`
	ManufacturerID *int `json:"manufacturer_id"`
}

// PrepareResult is a creation-ready device payload plus the resolved
// reference identifiers.
type PrepareResult struct {
	Payload  map[string]any `json:"payload"`
	Resolved ResolvedRefs   `json:"resolved"`
}

// CreateResult pairs a channel's creation response with the name of the
// channel that served it. Result is what the channel delivered, untouched.
type CreateResult struct {
	Result  any
	Channel string
}

// PortKind identifies a child-object collection of a device.
type PortKind string

// Port kinds supported by batch creation.
const (
	PortInterfaces PortKind = "interfaces"
	PortRearPorts  PortKind = "rear_ports"
	PortFrontPorts PortKind = "front_ports"
)

// ItemError pairs a batch input item with the failure it produced.
type ItemError struct {
	Input map[string]any `json:"input"`
	Error string         `json:"error"`
}

// BatchResult reports the outcome of a batch creation.
//
// When the bulk channel call succeeded, Bulk holds its result as the
// channel delivered it and Created/Errors are empty. In per-item mode,
// len(Created) + len(Errors) equals the input batch size exactly.
// Channel names the serving channel: ChannelBridge for a bulk success,
// and in per-item mode the channel the created items went through, or
// ChannelMixed when they split.
type BatchResult struct {
	Bulk    any         `json:"-"`
	Channel string      `json:"-"`
	Created []any       `json:"created"`
	Errors  []ItemError `json:"errors"`
}
