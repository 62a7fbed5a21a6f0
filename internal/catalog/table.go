package catalog

// Default returns the catalog for the ATS_Stork_V1_05 (Borri STS32A) MIB
// trap group. Codes are the trap OID suffixes under
// 1.3.6.1.4.1.37662.1.2.3.1.2.
//
// Severity and clearing relationships come from the MIB, not from the
// identifier text; two triggers (emdmUpdateFail, atsLoadOff) have no
// automatic resumption and only clear via operator reset.
func Default() *Catalog {
	c, err := New(defaultTable)
	if err != nil {
		// The shipped table is validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}

var defaultTable = []Definition{
	// Warning alarms.
	{Identifier: "atsAtsAlarm", Code: 1, Severity: SeverityWarning, Type: EventTrigger,
		Description: "ATS alarm", Resumption: "atsAtsAlarmToNormal"},
	{Identifier: "atsSourceAvoltageAbnormal", Code: 2, Severity: SeverityWarning, Type: EventTrigger,
		Description: "Source A voltage abnormal", Resumption: "atsSourceAvoltageAbnormalToNormal"},
	{Identifier: "atsSourceBvoltageAbnormal", Code: 3, Severity: SeverityWarning, Type: EventTrigger,
		Description: "Source B voltage abnormal", Resumption: "atsSourceBvoltageAbnormalToNormal"},
	{Identifier: "atsSourceAfrequencyAbnormal", Code: 4, Severity: SeverityWarning, Type: EventTrigger,
		Description: "Source A frequency abnormal", Resumption: "atsSourceAfrequencyAbnormalToNormal"},
	{Identifier: "atsSourceBfrequencyAbnormal", Code: 5, Severity: SeverityWarning, Type: EventTrigger,
		Description: "Source B frequency abnormal", Resumption: "atsSourceBfrequencyAbnormalToNormal"},
	{Identifier: "atsOverTemperature", Code: 9, Severity: SeverityWarning, Type: EventTrigger,
		Description: "Cabinet over temperature", Resumption: "atsOverTemperatureToNormal"},
	{Identifier: "atsUserSetOverLoad", Code: 15, Severity: SeverityWarning, Type: EventTrigger,
		Description: "User defined load pre-alarm", Resumption: "atsUserSetOverLoadToNormal"},
	{Identifier: "atsEpoAlarm", Code: 17, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EPO alarm", Resumption: "atsEpoToNormal"},

	// Critical alarms.
	{Identifier: "atsOutputOverLoad", Code: 6, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Output over load", Resumption: "atsOutputOverLoadToNormal"},
	{Identifier: "atsWorkPowerAabnormal", Code: 7, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Unit fault: working power A abnormal", Resumption: "atsWorkPowerAabnormalToNormal"},
	{Identifier: "atsWorkPowerBabnormal", Code: 8, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Unit fault: working power B abnormal", Resumption: "atsWorkPowerBabnormalToNormal"},
	{Identifier: "atsDcOffsetAbnormal", Code: 10, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Unit fault: sensor circuit abnormal", Resumption: "atsDcOffsetAbnormalToNormal"},
	{Identifier: "atsEepromAbnormal", Code: 11, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Unit fault: EEPROM data abnormal", Resumption: "atsEepromAbnormalToNormal"},
	{Identifier: "atsLcdNotConnect", Code: 12, Severity: SeverityCritical, Type: EventTrigger,
		Description: "LCD panel connection abnormal", Resumption: "atsLcdNotConnectToNormal"},
	{Identifier: "atsOutputExceedsOverloadTime", Code: 13, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Overload time out, output off, reset needed", Resumption: "atsOutputExceedsOverloadTimeToNormal"},
	{Identifier: "atsInputPhaseDifference", Code: 14, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Input phase difference exceeds limit, output off, reset needed", Resumption: "atsInputPhaseDifferenceToNormal"},
	{Identifier: "atsCommunicationAbnormal", Code: 16, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Communication connection abnormal", Resumption: "atsCommunicationToNormal"},
	{Identifier: "atsCommunicationLost", Code: 35, Severity: SeverityCritical, Type: EventTrigger,
		Description: "Communication to the ATS has been lost", Resumption: "atsCommunicationEstablished"},

	// Resumptions.
	{Identifier: "atsAtsAlarmToNormal", Code: 18, Severity: SeverityInfo, Type: EventResumption,
		Description: "ATS alarm normal"},
	{Identifier: "atsSourceAvoltageAbnormalToNormal", Code: 19, Severity: SeverityInfo, Type: EventResumption,
		Description: "Source A voltage normal"},
	{Identifier: "atsSourceBvoltageAbnormalToNormal", Code: 20, Severity: SeverityInfo, Type: EventResumption,
		Description: "Source B voltage normal"},
	{Identifier: "atsSourceAfrequencyAbnormalToNormal", Code: 21, Severity: SeverityInfo, Type: EventResumption,
		Description: "Source A frequency normal"},
	{Identifier: "atsSourceBfrequencyAbnormalToNormal", Code: 22, Severity: SeverityInfo, Type: EventResumption,
		Description: "Source B frequency normal"},
	{Identifier: "atsOutputOverLoadToNormal", Code: 23, Severity: SeverityInfo, Type: EventResumption,
		Description: "Output load normal"},
	{Identifier: "atsWorkPowerAabnormalToNormal", Code: 24, Severity: SeverityInfo, Type: EventResumption,
		Description: "Unit normal: working power A normal"},
	{Identifier: "atsWorkPowerBabnormalToNormal", Code: 25, Severity: SeverityInfo, Type: EventResumption,
		Description: "Unit normal: working power B normal"},
	{Identifier: "atsOverTemperatureToNormal", Code: 26, Severity: SeverityInfo, Type: EventResumption,
		Description: "Cabinet temperature normal"},
	{Identifier: "atsDcOffsetAbnormalToNormal", Code: 27, Severity: SeverityInfo, Type: EventResumption,
		Description: "Unit normal: sensor circuit normal"},
	{Identifier: "atsEepromAbnormalToNormal", Code: 28, Severity: SeverityInfo, Type: EventResumption,
		Description: "Unit normal: EEPROM data normal"},
	{Identifier: "atsLcdNotConnectToNormal", Code: 29, Severity: SeverityInfo, Type: EventResumption,
		Description: "LCD panel connection normal"},
	{Identifier: "atsOutputExceedsOverloadTimeToNormal", Code: 30, Severity: SeverityInfo, Type: EventResumption,
		Description: "Overload time out normal"},
	{Identifier: "atsInputPhaseDifferenceToNormal", Code: 31, Severity: SeverityInfo, Type: EventResumption,
		Description: "Input sources returned to normal phase"},
	{Identifier: "atsUserSetOverLoadToNormal", Code: 32, Severity: SeverityInfo, Type: EventResumption,
		Description: "User defined load returned to normal"},
	{Identifier: "atsCommunicationToNormal", Code: 33, Severity: SeverityInfo, Type: EventResumption,
		Description: "Communication connection normal"},
	{Identifier: "atsEpoToNormal", Code: 34, Severity: SeverityInfo, Type: EventResumption,
		Description: "EPO alarm normal"},
	{Identifier: "atsCommunicationEstablished", Code: 36, Severity: SeverityInfo, Type: EventResumption,
		Description: "Communication with the ATS has been established"},

	// EMD (environment monitoring device) alarms and their resumptions.
	{Identifier: "emdmTemperatureNotHighWarn", Code: 37, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD temperature below high warning point"},
	{Identifier: "emdmTemperatureTooHighWarn", Code: 38, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD temperature over high warning point", Resumption: "emdmTemperatureNotHighWarn"},
	{Identifier: "emdmTemperatureNotLowWarn", Code: 39, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD temperature above low warning point"},
	{Identifier: "emdmTemperatureTooLowWarn", Code: 40, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD temperature under low warning point", Resumption: "emdmTemperatureNotLowWarn"},
	{Identifier: "emdmTemperatureNotHighCrit", Code: 41, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD temperature below high critical point"},
	{Identifier: "emdmTemperatureTooHighCrit", Code: 42, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD temperature over high critical point", Resumption: "emdmTemperatureNotHighCrit"},
	{Identifier: "emdmTemperatureNotLowCrit", Code: 43, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD temperature above low critical point"},
	{Identifier: "emdmTemperatureTooLowCrit", Code: 44, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD temperature under low critical point", Resumption: "emdmTemperatureNotLowCrit"},
	{Identifier: "emdmHumidityNotHighWarn", Code: 45, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD humidity below high warning point"},
	{Identifier: "emdmHumidityTooHighWarn", Code: 46, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD humidity over high warning point", Resumption: "emdmHumidityNotHighWarn"},
	{Identifier: "emdmHumidityNotLowWarn", Code: 47, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD humidity above low warning point"},
	{Identifier: "emdmHumidityTooLowWarn", Code: 48, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD humidity under low warning point", Resumption: "emdmHumidityNotLowWarn"},
	{Identifier: "emdmHumidityNotHighCrit", Code: 49, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD humidity below high critical point"},
	{Identifier: "emdmHumidityTooHighCrit", Code: 50, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD humidity over high critical point", Resumption: "emdmHumidityNotHighCrit"},
	{Identifier: "emdmHumidityNotLowCrit", Code: 51, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD humidity above low critical point"},
	{Identifier: "emdmHumidityTooLowCrit", Code: 52, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD humidity under low critical point", Resumption: "emdmHumidityNotLowCrit"},
	{Identifier: "emdmAlarm1Normal", Code: 53, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD alarm-1 not active"},
	{Identifier: "emdmAlarm1Active", Code: 54, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD alarm-1 activated", Resumption: "emdmAlarm1Normal"},
	{Identifier: "emdmAlarm2Normal", Code: 55, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD alarm-2 not active"},
	{Identifier: "emdmAlarm2Active", Code: 56, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD alarm-2 activated", Resumption: "emdmAlarm2Normal"},
	{Identifier: "emdmCommunicationSuccess", Code: 57, Severity: SeverityInfo, Type: EventResumption,
		Description: "EMD communication succeeded"},
	{Identifier: "emdmCommunicationLose", Code: 58, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD communication lost", Resumption: "emdmCommunicationSuccess"},
	{Identifier: "emdLogClear", Code: 59, Severity: SeverityInfo, Type: EventState,
		Description: "EMD history log cleared"},
	{Identifier: "emdmUpdateSuccess", Code: 60, Severity: SeverityInfo, Type: EventState,
		Description: "EMD firmware update success"},
	// No resumption trap exists for a failed update; clears via reset.
	{Identifier: "emdmUpdateFail", Code: 61, Severity: SeverityWarning, Type: EventTrigger,
		Description: "EMD firmware update fail"},

	// Informational state reports.
	{Identifier: "atsLoadOnSourceA", Code: 62, Severity: SeverityInfo, Type: EventState,
		Description: "The load is supplied by source A"},
	{Identifier: "atsLoadOnSourceB", Code: 63, Severity: SeverityInfo, Type: EventState,
		Description: "The load is supplied by source B"},
	{Identifier: "atsSourceAPreferred", Code: 64, Severity: SeverityInfo, Type: EventState,
		Description: "Source A set as preferred source"},
	{Identifier: "atsSourceBPreferred", Code: 65, Severity: SeverityInfo, Type: EventState,
		Description: "Source B set as preferred source"},
	{Identifier: "atsLoadOnBypassA", Code: 66, Severity: SeverityInfo, Type: EventState,
		Description: "The load is supplied by bypass A"},
	{Identifier: "atsLoadOnBypassB", Code: 67, Severity: SeverityInfo, Type: EventState,
		Description: "The load is supplied by bypass B"},
	// The MIB has no resumption for a disconnected load; clears via reset.
	{Identifier: "atsLoadOff", Code: 68, Severity: SeverityWarning, Type: EventTrigger,
		Description: "The load disconnected"},
	{Identifier: "atsSendTestTrapEvent", Code: 69, Severity: SeverityInfo, Type: EventState,
		Description: "Send test trap"},
	{Identifier: "atsSendTestMailEvent", Code: 70, Severity: SeverityInfo, Type: EventState,
		Description: "Send test mail"},
}
