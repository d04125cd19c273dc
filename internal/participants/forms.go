package participants

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// fieldRe matches posted participant fields: participant_<index>_<field>.
var fieldRe = regexp.MustCompile(`^participant_(\d+)_(.+)$`)

// Details captures one participant's posted form data. Addons holds the
// slugs of the add-on fields the participant affirmed, sorted for
// deterministic output.
type Details struct {
	Index  int
	Name   string
	Phone  string
	Email  string
	Addons []string
}

// affirmative reports whether a posted checkbox value counts as checked.
func affirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}

// ParseForms extracts participant details from posted form values. Fields
// that do not match the participant pattern are ignored; unknown matching
// fields are treated as add-on checkboxes and kept only when affirmative.
func ParseForms(form url.Values) []Details {
	byIndex := map[int]*Details{}

	for key, values := range form {
		m := fieldRe.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil || index < 1 {
			continue
		}
		value := values[len(values)-1]

		d, ok := byIndex[index]
		if !ok {
			d = &Details{Index: index}
			byIndex[index] = d
		}

		switch m[2] {
		case "full_name", "name":
			d.Name = strings.TrimSpace(value)
		case "phone":
			d.Phone = strings.TrimSpace(value)
		case "email":
			d.Email = strings.TrimSpace(value)
		default:
			if affirmative(value) {
				d.Addons = append(d.Addons, m[2])
			}
		}
	}

	out := make([]Details, 0, len(byIndex))
	for _, d := range byIndex {
		sort.Strings(d.Addons)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
