package classify

import (
	"strings"
	"unicode"
)

// ValidGuns is the allow-list of real weapons used to tell a knife round
// apart from a regular one.
var ValidGuns = map[string]bool{
	"hkp2000": true, "elite": true, "glock": true, "p250": true, "fiveseven": true,
	"tec9": true, "cz75a": true, "deagle": true, "revolver": true,
	"usp_silencer": true, "usp_silencer_off": true,
	"mac10": true, "mp9": true, "mp7": true, "mp5sd": true, "ump45": true, "p90": true, "bizon": true,
	"galilar": true, "famas": true, "ak47": true, "m4a1": true, "m4a1_silencer": true,
	"sg556": true, "aug": true, "ssg08": true, "awp": true, "g3sg1": true, "scar20": true,
	"nova": true, "xm1014": true, "mag7": true, "sawedoff": true,
	"negev": true, "m249": true, "taser": true,
}

// displayKeys maps demoinfocs display names onto internal weapon keys.
var displayKeys = map[string]string{
	"Glock-18": "glock", "USP-S": "usp_silencer", "P2000": "hkp2000", "P250": "p250",
	"Five-SeveN": "fiveseven", "Tec-9": "tec9", "Dual Berettas": "elite",
	"Desert Eagle": "deagle", "CZ75 Auto": "cz75a", "CZ75-Auto": "cz75a", "R8 Revolver": "revolver",

	"MAC-10": "mac10", "MP9": "mp9", "MP7": "mp7", "MP5-SD": "mp5sd", "UMP-45": "ump45",
	"P90": "p90", "PP-Bizon": "bizon",

	"Galil AR": "galilar", "FAMAS": "famas", "AK-47": "ak47", "M4A4": "m4a1",
	"M4A1": "m4a1_silencer", "M4A1-S": "m4a1_silencer", "SG 553": "sg556", "SG 556": "sg556", "AUG": "aug",

	"SSG 08": "ssg08", "AWP": "awp", "G3SG1": "g3sg1", "SCAR-20": "scar20",

	"Nova": "nova", "XM1014": "xm1014", "MAG-7": "mag7", "Sawed-Off": "sawedoff",
	"Negev": "negev", "M249": "m249",

	"Zeus x27": "taser", "Knife": "knife", "C4": "c4", "World": "world",
	"HE Grenade": "hegrenade", "Flashbang": "flashbang", "Smoke Grenade": "smokegrenade",
	"Molotov": "molotov", "Incendiary Grenade": "incgrenade", "Decoy Grenade": "decoy",
}

// prices is the buy-menu price of each weapon key.
var prices = map[string]int{
	// pistols
	"glock": 200, "usp_silencer": 200, "usp_silencer_off": 200, "p250": 300, "hkp2000": 200,
	"fiveseven": 500, "tec9": 500, "elite": 300, "deagle": 700, "cz75a": 500, "revolver": 600,
	// smgs
	"mac10": 1050, "mp9": 1250, "mp7": 1500, "mp5sd": 1500, "ump45": 1200, "p90": 2350, "bizon": 1400,
	// rifles
	"galilar": 1800, "famas": 1950, "ak47": 2700, "m4a1_silencer": 2900, "m4a1": 2900,
	"sg556": 3000, "aug": 3300,
	// snipers
	"ssg08": 1700, "awp": 4750, "g3sg1": 5000, "scar20": 5000,
	// heavy
	"nova": 1050, "xm1014": 2000, "mag7": 1300, "sawedoff": 1100, "negev": 1700, "m249": 5200,
	"taser": 200,
}

// freeKeywords mark equipment that counts as zero value in a duel.
var freeKeywords = []string{"knife", "bayonet", "grenade", "molotov", "incendiary", "flashbang", "smoke", "decoy", "c4"}

// WeaponKey returns the internal key for a weapon display name. Names that
// are already keys are returned as-is; anything else is slugged into lower
// case letters, digits and underscores.
func WeaponKey(name string) string {
	name = strings.TrimSpace(name)
	if k, ok := displayKeys[name]; ok {
		return k
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "weapon_") {
		lower = strings.TrimPrefix(lower, "weapon_")
	}
	if strings.Contains(lower, "knife") || strings.Contains(lower, "bayonet") {
		return "knife"
	}
	var b strings.Builder
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidGun reports whether a weapon name belongs to the real-weapon allow-list.
func IsValidGun(name string) bool {
	return ValidGuns[WeaponKey(name)]
}

// WeaponValue returns the price of a weapon given its display name or key.
// Knives, grenades, C4 and unknown weapons are worth 0.
func WeaponValue(name string) int {
	lower := strings.ToLower(name)
	for _, kw := range freeKeywords {
		if strings.Contains(lower, kw) {
			return 0
		}
	}
	return prices[WeaponKey(name)]
}

// InventoryValue sums WeaponValue over an inventory.
func InventoryValue(inventory []string) int {
	total := 0
	for _, w := range inventory {
		total += WeaponValue(w)
	}
	return total
}

// IsAWP reports whether name is the AWP.
func IsAWP(name string) bool {
	return WeaponKey(name) == "awp"
}

// IsAWPDuel reports whether either weapon in a duel is the AWP.
func IsAWPDuel(attackerWeapon, victimWeapon string) bool {
	return IsAWP(attackerWeapon) || IsAWP(victimWeapon)
}

// IsWorldDamage reports whether a weapon names environmental damage rather
// than a player's weapon.
func IsWorldDamage(name string) bool {
	switch WeaponKey(name) {
	case "world", "trigger_hurt", "worldspawn":
		return true
	}
	return false
}
