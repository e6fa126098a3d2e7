package target

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEnv is returned when a build environment name is not recognized.
var ErrUnknownEnv = errors.New("unknown build environment")

// Env selects which environment-specific manifest sub-object is merged in.
type Env string

const (
	Dev  Env = "dev"
	Prod Env = "prod"
)

func (e Env) String() string { return string(e) }

// Valid reports whether e is a supported build environment.
func (e Env) Valid() bool {
	return e == Dev || e == Prod
}

// ParseEnv converts a string to an Env.
func ParseEnv(s string) (Env, error) {
	e := Env(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w %q: expected %q or %q", ErrUnknownEnv, s, Dev, Prod)
	}
	return e, nil
}
