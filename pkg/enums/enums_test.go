package enums

import "testing"

func TestAddonFieldTypeParse(t *testing.T) {
	if got, err := ParseAddonFieldType("checkbox"); err != nil || got != AddonFieldTypeCheckbox {
		t.Fatalf("expected checkbox, got %q err %v", got, err)
	}
	if _, err := ParseAddonFieldType("radio"); err == nil {
		t.Fatal("expected error for unknown field type")
	}
	if AddonFieldType("radio").IsValid() {
		t.Fatal("radio should not be valid")
	}
}

func TestCartStatusParse(t *testing.T) {
	if got, err := ParseCartStatus("active"); err != nil || got != CartStatusActive {
		t.Fatalf("expected active, got %q err %v", got, err)
	}
	if _, err := ParseCartStatus("stale"); err == nil {
		t.Fatal("expected error for unknown cart status")
	}
}

func TestOrderStatusParse(t *testing.T) {
	if got, err := ParseOrderStatus("placed"); err != nil || got != OrderStatusPlaced {
		t.Fatalf("expected placed, got %q err %v", got, err)
	}
	if !OrderStatusCanceled.IsValid() {
		t.Fatal("canceled should be valid")
	}
}
