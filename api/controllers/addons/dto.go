package addons

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/api/validators"
	"github.com/pdadev/trackday-backend/internal/selections"
)

// maxFieldLen caps client-supplied labels and field names.
const maxFieldLen = 200

// wireOption is one add-on entry as the storefront posts and reads it.
type wireOption struct {
	FieldName string          `json:"field_name"`
	Label     string          `json:"label"`
	Price     decimal.Decimal `json:"price"`
	Selected  bool            `json:"selected"`
}

// wireParticipant is one participant record on the wire.
type wireParticipant struct {
	Participant int          `json:"participant"`
	Addons      []wireOption `json:"addons"`
}

// syncRequest is decoded leniently: a malformed addons payload coerces to
// an empty snapshot instead of rejecting the request.
type syncRequest struct {
	Seq    uint64          `json:"seq"`
	Addons json.RawMessage `json:"addons"`
}

type syncSuccess struct {
	Success bool              `json:"success"`
	Stored  []wireParticipant `json:"stored"`
}

type syncFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func snapshotFromWire(raw json.RawMessage) selections.Snapshot {
	if len(raw) == 0 {
		return selections.Snapshot{Participants: []selections.Participant{}}
	}
	var wire []wireParticipant
	if err := json.Unmarshal(raw, &wire); err != nil {
		return selections.Snapshot{Participants: []selections.Participant{}}
	}

	snap := selections.Snapshot{Participants: make([]selections.Participant, 0, len(wire))}
	for _, p := range wire {
		part := selections.Participant{Index: p.Participant, Options: make([]selections.Option, 0, len(p.Addons))}
		for _, opt := range p.Addons {
			part.Options = append(part.Options, selections.Option{
				FieldName: validators.SanitizeString(opt.FieldName, maxFieldLen),
				Label:     validators.SanitizeString(opt.Label, maxFieldLen),
				Price:     opt.Price,
				Selected:  opt.Selected,
			})
		}
		snap.Participants = append(snap.Participants, part)
	}
	return selections.Normalize(snap)
}

func snapshotToWire(snap selections.Snapshot) []wireParticipant {
	out := make([]wireParticipant, 0, len(snap.Participants))
	for _, p := range snap.Participants {
		wp := wireParticipant{Participant: p.Index, Addons: make([]wireOption, 0, len(p.Options))}
		for _, opt := range p.Options {
			wp.Addons = append(wp.Addons, wireOption{
				FieldName: opt.FieldName,
				Label:     opt.Label,
				Price:     opt.Price,
				Selected:  opt.Selected,
			})
		}
		out = append(out, wp)
	}
	return out
}
