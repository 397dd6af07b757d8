package surface

import (
	"fmt"
	"strings"
)

// SampleType is the field layout of the source surface.
type SampleType int

const (
	SampleProgressive SampleType = iota
	SampleSingleTopField
	SampleSingleBottomField
	SampleInterleavedTopFirst
	SampleInterleavedBottomFirst
)

var sampleNames = map[SampleType]string{
	SampleProgressive:            "progressive",
	SampleSingleTopField:         "single-top",
	SampleSingleBottomField:      "single-bottom",
	SampleInterleavedTopFirst:    "interleaved-top-first",
	SampleInterleavedBottomFirst: "interleaved-bottom-first",
}

func (s SampleType) String() string {
	if name, ok := sampleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SampleType(%d)", int(s))
}

// Progressive reports whether the source is a full progressive frame.
func (s SampleType) Progressive() bool { return s == SampleProgressive }

func (s *SampleType) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	if value == "" {
		*s = SampleProgressive
		return nil
	}
	for st, name := range sampleNames {
		if name == value {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown sample type %q", value)
}

func (s SampleType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
