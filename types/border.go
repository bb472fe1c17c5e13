package types

import (
	"fmt"
	"sort"
	"strings"
)

// BorderCondition is a bit set, a face can carry any combination of flags
type BorderCondition uint8

const (
	PEC BorderCondition = 1 << iota
	PMC
	CPML
)

const BorderNone BorderCondition = 0

var BorderNameMap = map[string]BorderCondition{
	"pec":  PEC,
	"pmc":  PMC,
	"cpml": CPML,
	"none": BorderNone,
}

func (bc BorderCondition) Has(flag BorderCondition) bool {
	return bc&flag != 0
}

func (bc BorderCondition) String() string {
	var names []string
	for name, flag := range BorderNameMap {
		if flag != BorderNone && bc.Has(flag) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// ParseBorderCondition reads "|" or "," separated flag names, e.g. "pec|cpml"
func ParseBorderCondition(s string) (bc BorderCondition, err error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == '+' || r == ' '
	})
	for _, f := range fields {
		flag, ok := BorderNameMap[f]
		if !ok {
			err = fmt.Errorf("unknown border condition %q", f)
			return
		}
		bc |= flag
	}
	return
}

// Face identifies one side of the domain. Faces are numbered per dimension.
type Face uint8

// 1D faces
const (
	Left1D Face = iota
	Right1D
	NumFaces1D
)

// 2D faces: south/north bound x, west/east bound y
const (
	South Face = iota
	North
	East
	West
	NumFaces2D
)

// 3D faces: bottom/top bound x, left/right bound y, front/back bound z
const (
	Front Face = iota
	Back
	Top
	Bottom
	Right
	Left
	NumFaces3D
)

var faceNames = [][]string{
	{"left", "right"},
	{"south", "north", "east", "west"},
	{"front", "back", "top", "bottom", "right", "left"},
}

func FaceName(dimension int, f Face) string {
	if dimension < 1 || dimension > 3 || int(f) >= len(faceNames[dimension-1]) {
		return fmt.Sprintf("face(%d)", f)
	}
	return faceNames[dimension-1][f]
}

func ParseFace(dimension int, name string) (f Face, err error) {
	if dimension < 1 || dimension > 3 {
		err = fmt.Errorf("no faces for dimension %d", dimension)
		return
	}
	for n, fn := range faceNames[dimension-1] {
		if fn == strings.ToLower(name) {
			return Face(n), nil
		}
	}
	err = fmt.Errorf("unknown %dD face %q, valid faces are %v",
		dimension, name, faceNames[dimension-1])
	return
}

// ParseBorders reads a list like "south=pec|cpml;north=pmc" into per-face flags.
// Faces not named keep the value in defaults.
func ParseBorders(dimension int, list string, defaults []BorderCondition) (
	borders []BorderCondition, err error) {
	borders = append([]BorderCondition{}, defaults...)
	for _, item := range strings.Split(list, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			err = fmt.Errorf("border entry %q is not of the form face=flags", item)
			return
		}
		var (
			f  Face
			bc BorderCondition
		)
		if f, err = ParseFace(dimension, strings.TrimSpace(parts[0])); err != nil {
			return
		}
		if bc, err = ParseBorderCondition(parts[1]); err != nil {
			return
		}
		if int(f) >= len(borders) {
			err = fmt.Errorf("face %s has no default entry", FaceName(dimension, f))
			return
		}
		borders[f] = bc
	}
	return
}
