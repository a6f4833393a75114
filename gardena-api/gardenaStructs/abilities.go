package gardenaStructs

// Ability names known to the Gardena Smart System.
const (
	AbilityAmbientTemperature  = "ambient_temperature"
	AbilityBattery             = "battery"
	AbilityBatteryPower        = "battery_power"
	AbilityDeviceInfo          = "device_info"
	AbilityFirmware            = "firmware"
	AbilityHumidity            = "humidity"
	AbilityInternalTemperature = "internal_temperature"
	AbilityLight               = "light"
	AbilityManualWatering      = "manual_watering"
	AbilityMower               = "mower"
	AbilityMowerStats          = "mower_stats"
	AbilityMowerType           = "mower_type"
	AbilityOutlet              = "outlet"
	AbilityPower               = "power"
	AbilityRadioLink           = "radio_link"
	AbilityScheduling          = "scheduling"
	AbilitySensor              = "sensor"
	AbilitySoilHumidity        = "soil_humidity"
	AbilitySoilTemperature     = "soil_temperature"
	AbilityWatering            = "watering"
)
