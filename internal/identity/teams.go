package identity

// Unknown is the team name used when no source knows a player's team.
const Unknown = "Unknown"

// DefaultTeams maps canonical identities to their team for the analysed season.
var DefaultTeams = map[string]string{
	"donk": "Spirit", "sh1ro": "Spirit", "zont1x": "Spirit", "chopper": "Spirit",
	"magixx": "Spirit", "zweih": "Spirit", "tN1r": "Spirit",

	"ZywOo": "Vitality", "ropz": "Vitality", "flameZ": "Vitality", "mezii": "Vitality",
	"apEX": "Vitality",

	"m0NESY": "Falcons", "NiKo": "Falcons", "Magisk": "Falcons", "TeSeS": "Falcons",
	"kyxsan": "Falcons", "kyousuke": "Falcons",

	"Twistzz": "FaZe", "frozen": "FaZe", "broky": "FaZe", "karrigan": "FaZe",

	"KSCERATO": "FURIA", "molodoy": "FURIA", "YEKINDAR": "FURIA", "yuurih": "FURIA",

	"HeavyGod": "G2", "malbsMd": "G2", "huNter-": "G2", "Snax": "G2", "MATYS": "G2",

	"Spinx": "MOUZ", "torzsi": "MOUZ", "Jimpphat": "MOUZ", "Brollan": "MOUZ", "xertioN": "MOUZ",

	"b1t": "Natus Vincere", "iM": "Natus Vincere", "w0nderful": "Natus Vincere",
	"jL": "Natus Vincere", "Aleksib": "Natus Vincere",

	"910": "The MongolZ", "mzinho": "The MongolZ", "bLitz": "The MongolZ", "Techno": "The MongolZ",

	"device": "Astralis", "Staehr": "Astralis", "jabbi": "Astralis", "HooXi": "Astralis",
}

// Teams resolves canonical identities to team names.
type Teams map[string]string

// TeamOf returns the static team for player. When the table has no entry the
// fallback is used, and Unknown when the fallback is empty.
func (t Teams) TeamOf(player, fallback string) string {
	if team, ok := t[player]; ok {
		return team
	}
	if fallback != "" {
		return fallback
	}
	return Unknown
}
