package domain_test

import (
	"testing"

	"weightlog/internal/domain"
)

func TestNormalizeWeight(t *testing.T) {
	tests := []struct {
		name  string
		value string
		unit  string
		want  string
	}{
		{"kg passes through", "80", "kg", "80"},
		{"lb converts", "220.462", "lb", "100"},
		{"unknown unit passes through", "50", "st", "50"},
		{"zero", "0", "lb", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.NormalizeWeight(dec(tc.value), tc.unit)
			if !got.Equal(dec(tc.want)) {
				t.Errorf("NormalizeWeight(%s, %q) = %s; want %s",
					tc.value, tc.unit, got, tc.want)
			}
		})
	}
}

func TestConvertWeight(t *testing.T) {
	got := domain.ConvertWeight(dec("100"), "lb")
	if !got.Equal(dec("220.462")) {
		t.Errorf("ConvertWeight(100, lb) = %s; want 220.462", got)
	}
	if got := domain.ConvertWeight(dec("80"), "kg"); !got.Equal(dec("80")) {
		t.Errorf("ConvertWeight(80, kg) = %s; want 80", got)
	}
}
