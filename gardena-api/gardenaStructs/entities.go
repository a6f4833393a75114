package gardenaStructs

import (
	"encoding/json"
	"reflect"
	"strconv"

	"golang.org/x/exp/slices"
)

// Session is the authenticated context returned by the sessions endpoint.
// A Session without token is the logged out state.
type Session struct {
	fieldSet

	Token        string         `mapstructure:"token"`
	UserId       string         `mapstructure:"user_id"`
	RefreshToken string         `mapstructure:"refresh_token"`
	Extra        map[string]any `mapstructure:",remain"`
}

// Valid reports whether the session can be used for authenticated calls.
func (s Session) Valid() bool {
	return s.Token != ""
}

func (s Session) String() string {
	masked := s
	if masked.Token != "" {
		masked.Token = "***"
	}
	if masked.RefreshToken != "" {
		masked.RefreshToken = "***"
	}
	return describe("Session", masked)
}

// Location is a physical site holding devices.
type Location struct {
	fieldSet

	Id      string         `mapstructure:"id"`
	Name    string         `mapstructure:"name"`
	Devices []DeviceRef    `mapstructure:"devices"`
	Extra   map[string]any `mapstructure:",remain"`
}

// DeviceIds returns the ids of all devices of the location.
func (l Location) DeviceIds() []string {
	ids := make([]string, 0, len(l.Devices))
	for _, d := range l.Devices {
		ids = append(ids, d.Id)
	}
	return ids
}

func (l Location) String() string {
	return describe("Location", l)
}

// DeviceRef is an entry of a location's device list. The locations endpoint
// only lists device ids, other payloads embed the whole device.
type DeviceRef struct {
	Id     string
	Device *Device
}

func (r DeviceRef) flatten() any {
	if r.Device != nil {
		return Flatten(r.Device)
	}
	return r.Id
}

var deviceRefType = reflect.TypeOf(DeviceRef{})

func deviceRefHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != deviceRefType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return DeviceRef{Id: v}, nil
	case Device:
		return DeviceRef{Id: v.Id, Device: &v}, nil
	case *Device:
		return DeviceRef{Id: v.Id, Device: v}, nil
	case map[string]any:
		device, err := Construct[Device](v)
		if err != nil {
			return nil, err
		}
		return DeviceRef{Id: device.Id, Device: &device}, nil
	}
	return data, nil
}

// Property is a single named value reported by an ability.
type Property struct {
	fieldSet

	Id              string         `mapstructure:"id"`
	Name            string         `mapstructure:"name"`
	Value           any            `mapstructure:"value"`
	Unit            string         `mapstructure:"unit"`
	Timestamp       string         `mapstructure:"timestamp"`
	Writeable       bool           `mapstructure:"writeable"`
	SupportedValues []any          `mapstructure:"supported_values"`
	Extra           map[string]any `mapstructure:",remain"`
}

// Float returns the property value as a number. Booleans map to 0 and 1.
func (p Property) Float() (float64, bool) {
	switch v := p.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func (p Property) String() string {
	return describe("Property", p)
}

// Ability is one capability class of a device, bundling its properties.
type Ability struct {
	fieldSet

	Id         string         `mapstructure:"id"`
	Name       string         `mapstructure:"name"`
	Type       string         `mapstructure:"type"`
	Properties []Property     `mapstructure:"properties"`
	Extra      map[string]any `mapstructure:",remain"`
}

// Property returns the first property with the given name.
func (a Ability) Property(name string) (Property, bool) {
	i := slices.IndexFunc(a.Properties, func(p Property) bool { return p.Name == name })
	if i == -1 {
		return Property{}, false
	}
	return a.Properties[i], true
}

func (a Ability) String() string {
	return describe("Ability", a)
}

// Device is a controllable unit and the root of its abilities, schedules and
// status history.
type Device struct {
	fieldSet

	Id                  string                `mapstructure:"id"`
	Name                string                `mapstructure:"name"`
	Description         string                `mapstructure:"description"`
	Category            string                `mapstructure:"category"`
	DeviceState         string                `mapstructure:"device_state"`
	Abilities           []Ability             `mapstructure:"abilities"`
	Constraints         []any                 `mapstructure:"constraints"`
	PropertyConstraints []any                 `mapstructure:"property_constraints"`
	ScheduledEvents     []ScheduledEvent      `mapstructure:"scheduled_events"`
	Settings            []any                 `mapstructure:"settings"`
	StatusReportHistory []StatusReportHistory `mapstructure:"status_report_history"`
	Zones               []any                 `mapstructure:"zones"`
	Extra               map[string]any        `mapstructure:",remain"`
}

// Ability returns the first ability with the given name.
func (d Device) Ability(name string) (Ability, bool) {
	i := slices.IndexFunc(d.Abilities, func(a Ability) bool { return a.Name == name })
	if i == -1 {
		return Ability{}, false
	}
	return d.Abilities[i], true
}

// PropertyValue looks up the value of property in ability.
func (d Device) PropertyValue(ability, property string) (any, bool) {
	a, ok := d.Ability(ability)
	if !ok {
		return nil, false
	}
	p, ok := a.Property(property)
	if !ok {
		return nil, false
	}
	return p.Value, true
}

func (d Device) String() string {
	return describe("Device", d)
}

type ScheduledEvent struct {
	fieldSet

	Id         string         `mapstructure:"id"`
	Type       string         `mapstructure:"type"`
	StartAt    string         `mapstructure:"start_at"`
	EndAt      string         `mapstructure:"end_at"`
	Weekday    string         `mapstructure:"weekday"`
	Recurrence Recurrence     `mapstructure:"recurrence"`
	Extra      map[string]any `mapstructure:",remain"`
}

func (e ScheduledEvent) String() string {
	return describe("ScheduledEvent", e)
}

type Recurrence struct {
	fieldSet

	Type     string         `mapstructure:"type"`
	Weekdays []string       `mapstructure:"weekdays"`
	Extra    map[string]any `mapstructure:",remain"`
}

func (r Recurrence) String() string {
	return describe("Recurrence", r)
}

type StatusReportHistory struct {
	fieldSet

	Level      string         `mapstructure:"level"`
	Message    string         `mapstructure:"message"`
	RawMessage string         `mapstructure:"raw_message"`
	Source     string         `mapstructure:"source"`
	Timestamp  string         `mapstructure:"timestamp"`
	Extra      map[string]any `mapstructure:",remain"`
}

func (h StatusReportHistory) String() string {
	return describe("StatusReportHistory", h)
}

// Error is the error payload of the API.
type Error struct {
	fieldSet

	Id     string         `mapstructure:"id"`
	Status string         `mapstructure:"status"`
	Title  string         `mapstructure:"title"`
	Detail string         `mapstructure:"detail"`
	Extra  map[string]any `mapstructure:",remain"`
}

func (e Error) String() string {
	return describe("Error", e)
}
