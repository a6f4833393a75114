package gardenaCommands

import "github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"

var Outlet = register(NewFamily(gardenaStructs.AbilityOutlet,
	Spec{Name: "manual_override", Params: []Param{Required("duration"), Optional("mode", "open")}},
	Spec{Name: "cancel_override"},
))

// ManualOverride switches the outlet for duration minutes. An empty mode
// falls back to "open".
func ManualOverride(duration int, mode string) Command {
	if mode == "" {
		return Outlet.must("manual_override", duration)
	}
	return Outlet.must("manual_override", duration, mode)
}

func CancelOverride() Command {
	return Outlet.must("cancel_override")
}
