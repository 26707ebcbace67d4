package charts

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names one of the dashboard charts.
type Kind string

const (
	KindTypes               Kind = "types"
	KindGenerations         Kind = "generations"
	KindGendersByGeneration Kind = "genders-by-generation"
)

var ErrUnknownKind = errors.New("unknown chart kind")

// Kinds lists every chart in dashboard order.
func Kinds() []Kind {
	return []Kind{KindTypes, KindGenerations, KindGendersByGeneration}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindTypes, KindGenerations, KindGendersByGeneration:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
