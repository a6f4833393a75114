package gardenaStructs

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func decodeJSON(t *testing.T, doc string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("invalid test document: %v", err)
	}
	return raw
}

func sameJSON(t *testing.T, got, want any) {
	t.Helper()
	g, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	w, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	if string(g) != string(w) {
		t.Errorf("got %s, want %s", g, w)
	}
}

const mowerDevice = `{
	"id": "D1",
	"name": "Mower",
	"category": "mower",
	"device_state": "ok",
	"abilities": [
		{"id": "A1", "name": "mower", "type": "robotic_mower", "properties": [
			{"id": "P1", "name": "status", "value": "ok_cutting", "timestamp": "2019-05-01T10:00:00Z", "writeable": true, "supported_values": ["ok_cutting", "paused"]},
			{"id": "P2", "name": "level", "value": 87, "unit": "%"}
		]},
		{"id": "A2", "name": "radio_link", "type": "radio", "properties": [{"id": "P1", "name": "quality", "value": 80}]}
	],
	"scheduled_events": [
		{"id": "E1", "type": "mowing", "start_at": "08:00", "end_at": "10:00", "weekday": "monday",
		 "recurrence": {"type": "weekly", "weekdays": ["monday", "thursday"]}}
	],
	"status_report_history": [
		{"level": "info", "message": "started", "raw_message": "mower started", "source": "mower", "timestamp": "2019-05-01T08:00:00Z"}
	],
	"settings": [{"name": "cutting_height", "value": 3}],
	"zones": []
}`

func TestConstruct_Device(t *testing.T) {
	device, err := Construct[Device](decodeJSON(t, mowerDevice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if device.Id != "D1" || device.Name != "Mower" {
		t.Errorf("device = %s/%s, want D1/Mower", device.Id, device.Name)
	}
	if len(device.Abilities) != 2 {
		t.Fatalf("got %d abilities, want 2", len(device.Abilities))
	}
	status := device.Abilities[0].Properties[0]
	if status.Name != "status" || status.Value != "ok_cutting" || !status.Writeable {
		t.Errorf("status property = %s", status)
	}
	if len(status.SupportedValues) != 2 {
		t.Errorf("got %d supported values, want 2", len(status.SupportedValues))
	}
	event := device.ScheduledEvents[0]
	if event.Recurrence.Type != "weekly" {
		t.Errorf("recurrence type = %q, want %q", event.Recurrence.Type, "weekly")
	}
	if !reflect.DeepEqual(event.Recurrence.Weekdays, []string{"monday", "thursday"}) {
		t.Errorf("weekdays = %v", event.Recurrence.Weekdays)
	}
	if device.StatusReportHistory[0].RawMessage != "mower started" {
		t.Errorf("raw_message = %q", device.StatusReportHistory[0].RawMessage)
	}
	if device.Extra != nil {
		t.Errorf("Extra = %v, want nil", device.Extra)
	}
}

func TestConstruct_RoundTrip(t *testing.T) {
	raw := decodeJSON(t, mowerDevice)
	delete(raw, "zones")

	device, err := Construct[Device](raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flat := Flatten(device)
	for key, want := range raw {
		got, ok := flat[key]
		if !ok {
			t.Errorf("key %q missing after flatten", key)
			continue
		}
		sameJSON(t, got, want)
	}
}

func TestConstruct_RoundTripZeroValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"false and empty scalars", `{"id": "P1", "name": "n", "writeable": false, "unit": ""}`},
		{"null values", `{"id": "P1", "unit": null, "value": null, "supported_values": null}`},
		{"empty list", `{"id": "P1", "supported_values": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decodeJSON(t, tt.doc)
			property, err := Construct[Property](raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			flat := Flatten(property)
			if len(flat) != len(raw) {
				t.Errorf("Flatten = %v, want keys of %v", flat, raw)
			}
			for key, want := range raw {
				got, ok := flat[key]
				if !ok {
					t.Errorf("key %q missing after flatten", key)
					continue
				}
				sameJSON(t, got, want)
			}
		})
	}
}

func TestConstruct_RoundTripNestedZeroValues(t *testing.T) {
	raw := decodeJSON(t, `{"id": "D1", "description": "", "abilities": [
		{"id": "A1", "name": "mower", "properties": [{"id": "P1", "name": "manual", "writeable": false}]}]}`)
	device, err := Construct[Device](raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sameJSON(t, Flatten(device), raw)
}

func TestFlatten_UnsuppliedZeroValues(t *testing.T) {
	flat := Flatten(Property{Id: "P1"})
	if _, ok := flat["writeable"]; ok {
		t.Errorf("Flatten = %v, unsupplied zero field emitted", flat)
	}
}

func TestConstruct_Idempotent(t *testing.T) {
	raw := decodeJSON(t, mowerDevice)
	fromRaw, err := Construct[Device](raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mixed := decodeJSON(t, mowerDevice)
	mixed["abilities"] = fromRaw.Abilities
	events := mixed["scheduled_events"].([]any)
	events[0].(map[string]any)["recurrence"] = fromRaw.ScheduledEvents[0].Recurrence

	fromMixed, err := Construct[Device](mixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fromRaw, fromMixed) {
		t.Errorf("records differ:\n%s\n%s", fromRaw, fromMixed)
	}
}

func TestConstruct_UnknownKeys(t *testing.T) {
	raw := decodeJSON(t, `{"id": "A1", "name": "battery", "firmware_flag": true,
		"properties": [{"id": "P1", "name": "level", "value": 50, "vendor": {"x": 1}}]}`)

	ability, err := Construct[Ability](raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ability.Extra["firmware_flag"] != true {
		t.Errorf("Extra[firmware_flag] = %v, want true", ability.Extra["firmware_flag"])
	}
	vendor, ok := ability.Properties[0].Extra["vendor"].(map[string]any)
	if !ok || vendor["x"] != float64(1) {
		t.Errorf("Extra[vendor] = %v", ability.Properties[0].Extra["vendor"])
	}
	if Flatten(ability)["firmware_flag"] != true {
		t.Error("undeclared key lost by Flatten")
	}
}

func TestConstruct_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"nested record is a string", `{"id": "D1", "abilities": ["mower"]}`},
		{"nested list is a mapping", `{"id": "D1", "abilities": {"id": "A1"}}`},
		{"nested record is a number", `{"id": "E1", "recurrence": 7}`},
		{"declared string is an object", `{"id": {"nested": true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if strings.Contains(tt.doc, "recurrence") {
				_, err = Construct[ScheduledEvent](decodeJSON(t, tt.doc))
			} else {
				_, err = Construct[Device](decodeJSON(t, tt.doc))
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestConstruct_Empty(t *testing.T) {
	device, err := Construct[Device](map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if device.Name != "" || device.Abilities != nil {
		t.Errorf("expected zero device, got %s", device)
	}
	if len(Flatten(device)) != 0 {
		t.Errorf("Flatten(zero) = %v, want empty", Flatten(device))
	}
}

func TestFlatten_NotARecord(t *testing.T) {
	if Flatten("text") != nil {
		t.Error("expected nil for non-struct input")
	}
}

func TestDescribe(t *testing.T) {
	p := Property{Id: "P1", Name: "status", Value: "OK", Extra: map[string]any{"a": 1}}
	want := "Property(a=1, id=P1, name=status, value=OK)"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
