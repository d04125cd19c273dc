package enums

import "fmt"

// AddonFieldType describes the allowed values for the `type` column in addon_fields.
type AddonFieldType string

const (
	AddonFieldTypeCheckbox AddonFieldType = "checkbox"
	AddonFieldTypeSelect   AddonFieldType = "select"
	AddonFieldTypeText     AddonFieldType = "text"
)

var validAddonFieldTypes = []AddonFieldType{
	AddonFieldTypeCheckbox,
	AddonFieldTypeSelect,
	AddonFieldTypeText,
}

// IsValid reports whether the value matches the canonical addon field type enum.
func (a AddonFieldType) IsValid() bool {
	for _, candidate := range validAddonFieldTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAddonFieldType converts the raw string to AddonFieldType.
func ParseAddonFieldType(value string) (AddonFieldType, error) {
	for _, candidate := range validAddonFieldTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid addon field type %q", value)
}
