package gardenaCommands

import "github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"

var Sensor = register(NewFamily(gardenaStructs.AbilitySensor,
	Spec{Name: "measure_ambient_temperature"},
	Spec{Name: "measure_light"},
	Spec{Name: "measure_soil_humidity"},
	Spec{Name: "measure_soil_temperature"},
))

func MeasureAmbientTemperature() Command {
	return Sensor.must("measure_ambient_temperature")
}

func MeasureLight() Command {
	return Sensor.must("measure_light")
}

func MeasureSoilHumidity() Command {
	return Sensor.must("measure_soil_humidity")
}

func MeasureSoilTemperature() Command {
	return Sensor.must("measure_soil_temperature")
}
