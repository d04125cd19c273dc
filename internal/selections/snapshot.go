package selections

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/pkg/types"
)

// Option is one offered add-on choice for a participant, with its selected
// state. FieldName is the stable slug the storefront posts back.
type Option struct {
	FieldName string          `json:"field_name"`
	Label     string          `json:"label"`
	Price     decimal.Decimal `json:"price"`
	Selected  bool            `json:"selected"`
}

// Participant is one attendee slot in the checkout, carrying the add-on
// options offered to it.
type Participant struct {
	Index   int      `json:"index"`
	Options []Option `json:"options"`
}

// Snapshot is the full per-session selection state. Every update replaces
// the whole snapshot; there are no per-option writes.
type Snapshot struct {
	Participants []Participant `json:"participants"`
}

// record is the stored wire shape. Seq lets the store discard stale
// replacements that arrive out of order.
type record struct {
	Seq      uint64   `json:"seq"`
	Snapshot Snapshot `json:"snapshot"`
}

// Normalize returns a canonical copy of the snapshot: participants sorted
// by index, nil slices replaced with empty ones, and negative prices
// clamped to zero. Participant indexes start at 1. Malformed input never
// fails, it degrades to a smaller valid snapshot.
func Normalize(snap Snapshot) Snapshot {
	out := Snapshot{Participants: make([]Participant, 0, len(snap.Participants))}
	for _, p := range snap.Participants {
		if p.Index < 1 {
			continue
		}
		cp := Participant{Index: p.Index, Options: make([]Option, 0, len(p.Options))}
		for _, opt := range p.Options {
			if opt.Label == "" && opt.FieldName == "" {
				continue
			}
			if opt.Price.IsNegative() {
				opt.Price = decimal.Zero
			}
			cp.Options = append(cp.Options, opt)
		}
		out.Participants = append(out.Participants, cp)
	}
	sort.SliceStable(out.Participants, func(i, j int) bool {
		return out.Participants[i].Index < out.Participants[j].Index
	})
	return out
}

// Decode parses a stored or posted snapshot payload. Anything that does not
// parse coerces to an empty snapshot rather than an error; a malformed
// payload must never break the checkout.
func Decode(raw []byte) Snapshot {
	if len(raw) == 0 {
		return Snapshot{Participants: []Participant{}}
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{Participants: []Participant{}}
	}
	return Normalize(snap)
}

// SelectedTotal sums the prices of every selected option across all
// participants.
func (s Snapshot) SelectedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Participants {
		for _, opt := range p.Options {
			if opt.Selected {
				total = total.Add(opt.Price)
			}
		}
	}
	return total
}

// SelectedAddons flattens the selected options into attached-addon entries,
// preserving participant order.
func (s Snapshot) SelectedAddons() types.AttachedAddons {
	var out types.AttachedAddons
	for _, p := range s.Participants {
		for _, opt := range p.Options {
			if opt.Selected {
				out = append(out, types.AttachedAddon{
					Label:     opt.Label,
					FieldName: opt.FieldName,
					Price:     opt.Price,
				})
			}
		}
	}
	return out
}

// IsEmpty reports whether the snapshot holds no participants at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Participants) == 0
}

// Toggle identifies one checkbox flip: the participant slot and the add-on
// field being switched.
type Toggle struct {
	Participant int
	FieldName   string
	Selected    bool
}

// Apply returns a copy of the snapshot with the toggle applied. Unknown
// participants or field names leave the snapshot unchanged; selection state
// never mutates the option list itself.
func Apply(snap Snapshot, t Toggle) Snapshot {
	out := Snapshot{Participants: make([]Participant, len(snap.Participants))}
	for i, p := range snap.Participants {
		options := make([]Option, len(p.Options))
		copy(options, p.Options)
		if p.Index == t.Participant {
			for j := range options {
				if options[j].FieldName == t.FieldName {
					options[j].Selected = t.Selected
				}
			}
		}
		out.Participants[i] = Participant{Index: p.Index, Options: options}
	}
	return out
}
