package participants

import (
	"fmt"
	"strings"

	"github.com/pdadev/trackday-backend/internal/catalog"
	"github.com/pdadev/trackday-backend/pkg/db/models"
)

// MetadataKey names the order metadata entry for one participant slot.
func MetadataKey(index int) string {
	return fmt.Sprintf("Participant %d", index)
}

// MetadataValue renders a participant's details as the multi-line value
// stored on the order. Empty fields are skipped; each affirmed add-on gets
// its own line with the slug humanized back into a label.
func MetadataValue(d Details) string {
	var lines []string
	if d.Name != "" {
		lines = append(lines, "Name: "+d.Name)
	}
	if d.Phone != "" {
		lines = append(lines, "Phone: "+d.Phone)
	}
	if d.Email != "" {
		lines = append(lines, "Email: "+d.Email)
	}
	for _, slug := range d.Addons {
		lines = append(lines, "Add-On: "+catalog.Humanize(slug))
	}
	return strings.Join(lines, "\n")
}

// Assign distributes participant slots across line items by unit ranges:
// the first item's quantity claims the first indexes, the next item the
// following ones. A zero quantity still claims one slot. Participants
// beyond the available units are dropped.
func Assign(quantities []int, parts []Details) [][]Details {
	out := make([][]Details, len(quantities))
	byIndex := map[int]Details{}
	for _, p := range parts {
		byIndex[p.Index] = p
	}

	next := 1
	for i, qty := range quantities {
		slots := qty
		if slots < 1 {
			slots = 1
		}
		for u := 0; u < slots; u++ {
			if p, ok := byIndex[next]; ok {
				out[i] = append(out[i], p)
			}
			next++
		}
	}
	return out
}

// BuildMeta converts assigned participants into ordered metadata rows for
// one order line item.
func BuildMeta(assigned []Details) []models.OrderItemMeta {
	meta := make([]models.OrderItemMeta, 0, len(assigned))
	for pos, d := range assigned {
		meta = append(meta, models.OrderItemMeta{
			Key:      MetadataKey(d.Index),
			Value:    MetadataValue(d),
			Position: pos,
		})
	}
	return meta
}
