package version

import "encoding/json"

// LoaderProfile is the overlay a mod loader contributes on top of a base descriptor.
type LoaderProfile struct {
	ID           string    `json:"id"`
	InheritsFrom string    `json:"inheritsFrom"`
	MainClass    string    `json:"mainClass"`
	Libraries    []Library `json:"libraries"`
	Arguments    Arguments `json:"-"`
}

func (p *LoaderProfile) UnmarshalJSON(data []byte) error {
	type plain LoaderProfile
	aux := struct {
		*plain
		RawArguments json.RawMessage `json:"arguments"`
		Legacy       *string         `json:"minecraftArguments"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	args, err := decodeArguments(aux.RawArguments, aux.Legacy)
	if err != nil {
		return err
	}
	p.Arguments = args
	return nil
}

// ApplyProfile merges p onto d. The main class is replaced, libraries are
// merged by group:artifact and arguments are appended, never replaced.
func (d *Descriptor) ApplyProfile(p *LoaderProfile) {
	d.MainClass = p.MainClass
	d.Libraries = MergeLibraries(d.Libraries, p.Libraries)
	d.Arguments = appendArguments(d.Arguments, p.Arguments)
}

// MergeLibraries returns base with every overlay library either replacing the
// base entry sharing its group:artifact key, in place, or appended.
func MergeLibraries(base, overlay []Library) []Library {
	merged := make([]Library, len(base), len(base)+len(overlay))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, lib := range merged {
		if key, ok := lib.Key(); ok {
			index[key] = i
		}
	}

	for _, lib := range overlay {
		key, ok := lib.Key()
		if !ok {
			merged = append(merged, lib)
			continue
		}
		if i, found := index[key]; found {
			merged[i] = lib
			continue
		}
		index[key] = len(merged)
		merged = append(merged, lib)
	}
	return merged
}

func appendArguments(base, extra Arguments) Arguments {
	switch extra.Kind {
	case NoArguments:
		return base
	case LegacyArguments:
		switch base.Kind {
		case NoArguments:
			return extra
		case LegacyArguments:
			base.Legacy = joinFlat(base.Legacy, extra.Legacy)
			return base
		case StructuredArguments:
			base.Game = append(append([]ArgumentItem(nil), base.Game...), LiteralItems(extra.Legacy)...)
			return base
		}
	case StructuredArguments:
		switch base.Kind {
		case NoArguments:
			return extra
		case LegacyArguments:
			return Arguments{
				Kind: StructuredArguments,
				Game: append(LiteralItems(base.Legacy), extra.Game...),
				JVM:  append([]ArgumentItem(nil), extra.JVM...),
			}
		case StructuredArguments:
			base.Game = append(append([]ArgumentItem(nil), base.Game...), extra.Game...)
			base.JVM = append(append([]ArgumentItem(nil), base.JVM...), extra.JVM...)
			return base
		}
	}
	return base
}

func joinFlat(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
