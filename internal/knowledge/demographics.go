package knowledge

import "strings"

// Sex is the patient's biological sex as supplied by the caller
type Sex string

const (
	SexUnknown Sex = ""
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
)

// ElderlyAge is the age at which metric ranges switch to the elderly bucket
const ElderlyAge = 65

// ParseSex accepts M/F and common spellings; anything else is SexUnknown
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "maschio", "uomo":
		return SexMale
	case "f", "female", "femmina", "donna":
		return SexFemale
	}
	return SexUnknown
}

// AgeGroup picks the metric range bucket for an optional age
func AgeGroup(age *int) string {
	if age != nil && *age >= ElderlyAge {
		return GroupElderly
	}
	return GroupAdult
}
