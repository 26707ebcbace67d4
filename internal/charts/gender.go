package charts

// Gender is one of the three canonical PokeAPI genders.
type Gender int

const (
	GenderUnrecognized Gender = iota
	GenderFemale
	GenderMale
	GenderGenderless
)

func ParseGender(name string) Gender {
	switch name {
	case "female":
		return GenderFemale
	case "male":
		return GenderMale
	case "genderless":
		return GenderGenderless
	}
	return GenderUnrecognized
}

func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "female"
	case GenderMale:
		return "male"
	case GenderGenderless:
		return "genderless"
	}
	return "unrecognized"
}

// Color is the fixed background color of the gender's dataset.
func (g Gender) Color() string {
	switch g {
	case GenderFemale:
		return "hsla(330, 100%, 70%, 1)"
	case GenderMale:
		return "hsla(240, 100%, 50%, 1)"
	case GenderGenderless:
		return "hsla(0, 0%, 50%, 1)"
	}
	return ""
}
