package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStakePercent(t *testing.T) {
	tests := []struct {
		name        string
		held, total string
		want        string
	}{
		{"half", "50", "100", "50"},
		{"all", "7.5", "7.5", "100"},
		{"none held", "0", "100", "0"},
		{"zero total", "10", "0", "0"},
		{"zero both", "0", "0", "0"},
		{"third", "1", "3", "33.33333333333333333333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StakePercent(d(tt.held), d(tt.total))
			if !got.Equal(d(tt.want)) {
				t.Errorf("StakePercent(%s, %s) = %s, want %s", tt.held, tt.total, got, tt.want)
			}
		})
	}
}

func TestProRata(t *testing.T) {
	tests := []struct {
		name              string
		rate, held, total string
		want              string
	}{
		{"quarter", "2", "25", "100", "0.5"},
		{"whole", "1.23456789", "10", "10", "1.23456789"},
		{"zero total", "5", "1", "0", "0"},
		{"zero rate", "0", "1", "2", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProRata(d(tt.rate), d(tt.held), d(tt.total))
			if !got.Equal(d(tt.want)) {
				t.Errorf("ProRata(%s, %s, %s) = %s, want %s", tt.rate, tt.held, tt.total, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(d("2"), d("2")); !got.Equal(d("100")) {
		t.Errorf("Percent(2, 2) = %s, want 100", got)
	}
	if got := Percent(d("0.75"), d("0")); !got.IsZero() {
		t.Errorf("Percent(0.75, 0) = %s, want 0", got)
	}
}

func TestMigrationProgress(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{"three quarters", "100", "300", "75"},
		{"nothing moved", "100", "0", "0"},
		{"fully moved", "0", "42.5", "100"},
		{"both empty", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MigrationProgress(d(tt.old), d(tt.new))
			if !got.Equal(d(tt.want)) {
				t.Errorf("MigrationProgress(%s, %s) = %s, want %s", tt.old, tt.new, got, tt.want)
			}
		})
	}
}
