package gardenaCommands

import "github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"

var Mower = register(NewFamily(gardenaStructs.AbilityMower,
	Spec{Name: "park_until_further_notice"},
	Spec{Name: "park_until_next_timer"},
	Spec{Name: "start_override_timer", Params: []Param{Required("duration")}},
	Spec{Name: "resume_schedule"},
))

func ParkUntilFurtherNotice() Command {
	return Mower.must("park_until_further_notice")
}

func ParkUntilNextTimer() Command {
	return Mower.must("park_until_next_timer")
}

// StartOverrideTimer mows for duration minutes regardless of the schedule.
func StartOverrideTimer(duration int) Command {
	return Mower.must("start_override_timer", duration)
}

func ResumeSchedule() Command {
	return Mower.must("resume_schedule")
}
