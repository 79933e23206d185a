package tax

// validStateCodes is the fixed set of 2-digit GST state/UT codes.
// 25 (Daman & Diu) and 28 (old Andhra Pradesh) were retired after the
// 2019/2014 reorganisations; 97 is "other territory", 99 is centre
// jurisdiction.
var validStateCodes = map[string]bool{
	"01": true, "02": true, "03": true, "04": true, "05": true,
	"06": true, "07": true, "08": true, "09": true, "10": true,
	"11": true, "12": true, "13": true, "14": true, "15": true,
	"16": true, "17": true, "18": true, "19": true, "20": true,
	"21": true, "22": true, "23": true, "24": true, "26": true,
	"27": true, "29": true, "30": true, "31": true, "32": true,
	"33": true, "34": true, "35": true, "36": true, "37": true,
	"38": true, "97": true, "99": true,
}

// ValidateGSTIN checks the structural format of a 15-character GSTIN:
// a recognised 2-digit state code, a PAN (5 letters, 4 digits, 1
// letter), and an alphanumeric entity code.
//
// The 15th character is a mod-36 checksum that is intentionally not
// verified, so GSTINs already stored by tenants keep validating.
// Validation never returns an error; callers decide how to surface a
// false result.
func ValidateGSTIN(gstin string) bool {
	if len(gstin) != 15 {
		return false
	}

	if !validStateCodes[gstin[:2]] {
		return false
	}

	// Characters 3-12 follow PAN structure
	pan := gstin[2:12]
	for i := 0; i < 5; i++ {
		if !isLetter(pan[i]) {
			return false
		}
	}
	for i := 5; i < 9; i++ {
		if !isDigit(pan[i]) {
			return false
		}
	}
	if !isLetter(pan[9]) {
		return false
	}

	// Character 13 is the entity number within the state
	return isLetter(gstin[12]) || isDigit(gstin[12])
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
