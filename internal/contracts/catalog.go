package contracts

// Outcomes is the closed set of draw outcome codes and their display names.
// Defined once at process start; never mutated.
var Outcomes = map[string]string{
	"0": "DELFIN", "00": "BALLENA", "1": "CARNERO", "2": "TORO", "3": "CIEMPIES",
	"4": "ALACRAN", "5": "LEON", "6": "RANA", "7": "PERICO", "8": "RATON",
	"9": "AGUILA", "10": "TIGRE", "11": "GATO", "12": "CABALLO", "13": "MONO",
	"14": "PALOMA", "15": "ZORRO", "16": "OSO", "17": "PAVO", "18": "BURRO",
	"19": "CHIVO", "20": "COCHINO", "21": "GALLO", "22": "CAMELLO", "23": "CEBRA",
	"24": "IGUANA", "25": "GALLINA", "26": "VACA", "27": "PERRO", "28": "ZAMURO",
	"29": "ELEFANTE", "30": "CAIMAN", "31": "LAPA", "32": "ARDILLA", "33": "PESCADO",
	"34": "VENADO", "35": "JIRAFA", "36": "CULEBRA", "37": "TORTUGA", "38": "BUFALO",
	"39": "LECHUZA", "40": "AVISPA", "41": "CANGURO", "42": "TUCAN", "43": "MARIPOSA",
	"44": "CHIGUIRE", "45": "GARZA", "46": "PUMA", "47": "PAVO REAL", "48": "PUERCOESPIN",
	"49": "PEREZA", "50": "CANARIO", "51": "PELICANO", "52": "PULPO", "53": "CARACOL",
	"54": "GRILLO", "55": "OSO HORMIGUERO", "56": "TIBURON", "57": "PATO",
	"58": "HORMIGA", "59": "PANTERA", "60": "CAMALEON", "61": "PANDA",
	"62": "CACHICAMO", "63": "CANGREJO", "64": "GAVILAN", "65": "ARANA",
	"66": "LOBO", "67": "AVESTRUZ", "68": "JAGUAR", "69": "CONEJO", "70": "BISONTE",
	"71": "GUACAMAYA", "72": "GORILA", "73": "HIPOPOTAMO", "74": "TURPIAL", "75": "GUACHARO",
}

// Series is the closed set of draw series tracked by the system.
var Series = []string{
	"LOTTO ACTIVO", "LA GRANJITA", "LOTTO REY", "SELVA PLUS",
	"RULETA ACTIVA", "LOTTO ACT INT", "LOTTO ACTIVO RD",
	"GUACHARO ACTIVO", "LA RICACHONA",
}

// Schedule is the full daily draw schedule shared across series.
// Some series only draw on the 30-minute grid.
var Schedule = []string{
	"08:00AM", "08:30AM", "09:00AM", "09:30AM", "10:00AM", "10:30AM",
	"11:00AM", "11:30AM", "12:00PM", "12:30PM", "01:00PM", "01:30PM",
	"02:00PM", "02:30PM", "03:00PM", "03:30PM", "04:00PM", "04:30PM",
	"05:00PM", "05:30PM", "06:00PM", "06:30PM", "07:00PM",
}

// OutcomeName returns the display name for an outcome code.
func OutcomeName(code string) string {
	if name, ok := Outcomes[code]; ok {
		return name
	}
	return "DESCONOCIDO"
}

// KnownOutcome reports whether code belongs to the closed outcome set.
// Codes outside the set are silently dropped from final forecasts.
func KnownOutcome(code string) bool {
	_, ok := Outcomes[code]
	return ok
}

// KnownSeries reports whether name is a tracked draw series.
func KnownSeries(name string) bool {
	for _, s := range Series {
		if s == name {
			return true
		}
	}
	return false
}
