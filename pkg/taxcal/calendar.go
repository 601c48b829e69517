// Package taxcal implements the Colombian income-tax filing calendar: it maps a
// cedula to its official due date and derives urgency state from that date.
package taxcal

// FallbackDueDate is returned for a suffix missing from the table. It equals the
// last date of the calendar, so an unexpected suffix lands in the final batch.
const FallbackDueDate = "24-10-2025"

// dueDateCalendar is the official DIAN 2025 schedule for natural persons: the
// last two digits of the cedula select the filing date. Batches of two suffixes
// share a date, staggered across August, September and October.
var dueDateCalendar = map[string]string{
	// agosto 2025
	"01": "12-8-2025", "02": "12-8-2025",
	"03": "13-8-2025", "04": "13-8-2025",
	"05": "14-8-2025", "06": "14-8-2025",
	"07": "15-8-2025", "08": "15-8-2025",
	"09": "19-8-2025", "10": "19-8-2025",
	"11": "20-8-2025", "12": "20-8-2025",
	"13": "21-8-2025", "14": "21-8-2025",
	"15": "22-8-2025", "16": "22-8-2025",
	"17": "25-8-2025", "18": "25-8-2025",
	"19": "26-8-2025", "20": "26-8-2025",
	"21": "27-8-2025", "22": "27-8-2025",
	"23": "28-8-2025", "24": "28-8-2025",
	"25": "29-8-2025", "26": "29-8-2025",

	// septiembre 2025
	"27": "1-9-2025", "28": "1-9-2025",
	"29": "2-9-2025", "30": "2-9-2025",
	"31": "3-9-2025", "32": "3-9-2025",
	"33": "4-9-2025", "34": "4-9-2025",
	"35": "5-9-2025", "36": "5-9-2025",
	"37": "8-9-2025", "38": "8-9-2025",
	"39": "9-9-2025", "40": "9-9-2025",
	"41": "10-9-2025", "42": "10-9-2025",
	"43": "11-9-2025", "44": "11-9-2025",
	"45": "12-9-2025", "46": "12-9-2025",
	"47": "15-9-2025", "48": "15-9-2025",
	"49": "16-9-2025", "50": "16-9-2025",
	"51": "17-9-2025", "52": "17-9-2025",
	"53": "18-9-2025", "54": "18-9-2025",
	"55": "19-9-2025", "56": "19-9-2025",
	"57": "22-9-2025", "58": "22-9-2025",
	"59": "23-9-2025", "60": "23-9-2025",
	"61": "24-9-2025", "62": "24-9-2025",
	"63": "25-9-2025", "64": "25-9-2025",
	"65": "26-9-2025", "66": "26-9-2025",

	// octubre 2025
	"67": "1-10-2025", "68": "1-10-2025",
	"69": "2-10-2025", "70": "2-10-2025",
	"71": "3-10-2025", "72": "3-10-2025",
	"73": "6-10-2025", "74": "6-10-2025",
	"75": "7-10-2025", "76": "7-10-2025",
	"77": "8-10-2025", "78": "8-10-2025",
	"79": "9-10-2025", "80": "9-10-2025",
	"81": "10-10-2025", "82": "10-10-2025",
	"83": "14-10-2025", "84": "14-10-2025",
	"85": "15-10-2025", "86": "15-10-2025",
	"87": "16-10-2025", "88": "16-10-2025",
	"89": "17-10-2025", "90": "17-10-2025",
	"91": "20-10-2025", "92": "20-10-2025",
	"93": "21-10-2025", "94": "21-10-2025",
	"95": "22-10-2025", "96": "22-10-2025",
	"97": "23-10-2025", "98": "23-10-2025",
	"99": "24-10-2025", "00": "24-10-2025",
}

// DueDateFor resolves a cedula to its official filing date. The last two
// characters select the calendar batch; cedulas shorter than two characters are
// left-padded with '0'. Same cedula always yields the same date.
func DueDateFor(cedula string) string {
	suffix := cedula
	if len(cedula) > 2 {
		suffix = cedula[len(cedula)-2:]
	}
	for len(suffix) < 2 {
		suffix = "0" + suffix
	}
	if d, ok := dueDateCalendar[suffix]; ok {
		return d
	}
	return FallbackDueDate
}

// CalendarSize reports the number of suffix entries in the filing calendar.
func CalendarSize() int {
	return len(dueDateCalendar)
}
