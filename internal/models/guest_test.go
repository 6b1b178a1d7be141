package models

import (
	"reflect"
	"testing"
)

func TestFilterEvents(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"all known", []string{"haldi", "wedding"}, []string{"haldi", "wedding"}},
		{"unknown dropped", []string{"wedding", "afterparty", "reception"}, []string{"wedding", "reception"}},
		{"all unknown", []string{"brunch"}, []string{}},
		{"nil input", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterEvents(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterEvents(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKnownEvent(t *testing.T) {
	for _, e := range AllEvents {
		if !KnownEvent(e) {
			t.Errorf("%q should be known", e)
		}
	}
	if KnownEvent("afterparty") {
		t.Error("afterparty should not be known")
	}
}

func TestFullName(t *testing.T) {
	g := Guest{FirstName: "Priya", LastName: "Sharma"}
	if got := g.FullName(); got != "Priya Sharma" {
		t.Errorf("FullName() = %q", got)
	}
}
