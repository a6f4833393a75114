package gardenaStructs

// Property names known to the Gardena Smart System.
const (
	PropertyBatteryLevel       = "level"
	PropertyBatteryStatus      = "battery_status"
	PropertyCategory           = "category"
	PropertyCharging           = "charging"
	PropertyChargingCycles     = "charging_cycles"
	PropertyCollisions         = "collisions"
	PropertyConnectionStatus   = "connection_status"
	PropertyCuttingTime        = "cutting_time"
	PropertyError              = "error"
	PropertyFrostWarning       = "frost_warning"
	PropertyHumidity           = "humidity"
	PropertyLastTimeOnline     = "last_time_online"
	PropertyLight              = "light"
	PropertyManualOperation    = "manual_operation"
	PropertyManualOverride     = "manual_override"
	PropertyManufacturer       = "manufacturer"
	PropertyOverrideEndTime    = "override_end_time"
	PropertyPowerTimer         = "power_timer"
	PropertyProduct            = "product"
	PropertyQuality            = "quality"
	PropertyRunningTime        = "running_time"
	PropertySerialNumber       = "serial_number"
	PropertySourceForNextStart = "source_for_next_start"
	PropertyStatus             = "status"
	PropertyTemperature        = "temperature"
	PropertyTimestampNextStart = "timestamp_next_start"
	PropertyValveOpen          = "valve_open"
	PropertyVersion            = "version"
	PropertyWateringTimerOne   = "watering_timer_1"
)
