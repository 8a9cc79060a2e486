package builtin

const SecondsInMinute = 60
const SecondsInHour = 3600
const SecondsInDay = 86400

// A 365 day year. Schedules spanning leap years are expressed in days or seconds.
const SecondsInYear = 365 * SecondsInDay
