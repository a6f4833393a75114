package main

import (
	"reflect"
	"testing"
	"time"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

func TestPropertyLines(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	location := gardenaStructs.Location{Id: "L1", Name: "Back Garden"}
	devices := []gardenaStructs.Device{{
		Id:   "D1",
		Name: "Mower",
		Abilities: []gardenaStructs.Ability{
			{Name: "battery", Properties: []gardenaStructs.Property{
				{Name: "level", Value: float64(87)},
				{Name: "charging", Value: true},
			}},
			{Name: "mower", Properties: []gardenaStructs.Property{
				{Name: "status", Value: "ok_cutting"},
			}},
		},
	}}

	want := []string{
		`gardena_battery,location=Back\ Garden,deviceId=D1,device=Mower,property=level value=87.000000 1700000000000000000`,
		`gardena_battery,location=Back\ Garden,deviceId=D1,device=Mower,property=charging value=1.000000 1700000000000000000`,
	}
	if got := propertyLines(location, devices, ts); !reflect.DeepEqual(got, want) {
		t.Errorf("propertyLines() =\n%v\nwant\n%v", got, want)
	}
}

func TestSelectLocations(t *testing.T) {
	all := []gardenaStructs.Location{{Id: "L1", Name: "Garden"}, {Id: "L2", Name: "Balcony"}}

	if got := selectLocations(all, nil); len(got) != 2 {
		t.Errorf("got %d locations, want all", len(got))
	}
	got := selectLocations(all, []string{"L2", "Garden", "Roof"})
	if len(got) != 2 || got[0].Id != "L2" || got[1].Id != "L1" {
		t.Errorf("selectLocations() = %v", got)
	}
}
