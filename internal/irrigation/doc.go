// Package irrigation manages watering schedules and their run logs.
//
// Schedules belong to a device and fire at a start time on a set of
// weekdays, encoded as a digit mask ("0123456" is every day, "12345"
// Monday to Friday). The Manager keeps a local schedule list per device
// and patches it from service responses: a toggle changes only the
// active flag of the toggled entry, everything else stays bit for bit
// as fetched.
package irrigation
