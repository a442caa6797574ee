package version

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type ArgumentsKind int

const (
	// NoArguments: the descriptor carries neither representation.
	NoArguments ArgumentsKind = iota
	// LegacyArguments: a flat minecraftArguments string.
	LegacyArguments
	// StructuredArguments: separate game and jvm item lists.
	StructuredArguments
)

// Arguments holds exactly one of the two argument representations, selected by Kind.
type Arguments struct {
	Kind   ArgumentsKind
	Legacy string
	Game   []ArgumentItem
	JVM    []ArgumentItem
}

type ItemKind int

const (
	LiteralItem ItemKind = iota
	ConditionalItem
)

// ArgumentItem is either a literal token or a rule-gated value.
type ArgumentItem struct {
	Kind    ItemKind
	Literal string
	Rules   []Rule
	Value   ArgumentValue
}

// ArgumentValue is the payload of a conditional item. A single string value
// decodes to a one-element slice.
type ArgumentValue []string

type structuredArguments struct {
	Game []ArgumentItem `json:"game"`
	JVM  []ArgumentItem `json:"jvm"`
}

func Literal(token string) ArgumentItem {
	return ArgumentItem{Kind: LiteralItem, Literal: token}
}

func Conditional(rules []Rule, values ...string) ArgumentItem {
	return ArgumentItem{Kind: ConditionalItem, Rules: rules, Value: values}
}

// LiteralItems splits a flat argument string into literal items.
func LiteralItems(flat string) []ArgumentItem {
	fields := strings.Fields(flat)
	items := make([]ArgumentItem, 0, len(fields))
	for _, f := range fields {
		items = append(items, Literal(f))
	}
	return items
}

func decodeArguments(raw json.RawMessage, legacy *string) (Arguments, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if raw[0] == '"' {
			var flat string
			if err := json.Unmarshal(raw, &flat); err != nil {
				return Arguments{}, err
			}
			return Arguments{Kind: LegacyArguments, Legacy: flat}, nil
		}
		var structured structuredArguments
		if err := json.Unmarshal(raw, &structured); err != nil {
			return Arguments{}, fmt.Errorf("decoding arguments: %w", err)
		}
		return Arguments{Kind: StructuredArguments, Game: structured.Game, JVM: structured.JVM}, nil
	}
	if legacy != nil {
		return Arguments{Kind: LegacyArguments, Legacy: *legacy}, nil
	}
	return Arguments{Kind: NoArguments}, nil
}

func (a *ArgumentItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var token string
		if err := json.Unmarshal(data, &token); err != nil {
			return err
		}
		*a = Literal(token)
		return nil
	}

	var cond struct {
		Rules []Rule        `json:"rules"`
		Value ArgumentValue `json:"value"`
	}
	if err := json.Unmarshal(data, &cond); err != nil {
		return fmt.Errorf("decoding argument item: %w", err)
	}
	*a = Conditional(cond.Rules, cond.Value...)
	return nil
}

func (v *ArgumentValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*v = ArgumentValue{single}
		return nil
	}
	var multiple []string
	if err := json.Unmarshal(data, &multiple); err != nil {
		return fmt.Errorf("decoding argument value: %w", err)
	}
	*v = multiple
	return nil
}
