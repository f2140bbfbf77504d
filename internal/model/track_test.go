package model

import (
	"reflect"
	"testing"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		raw   string
		n     int
		total int
		ok    bool
	}{
		{"3/12", 3, 12, true},
		{"1/1", 1, 1, true},
		{" 7 / 20 ", 7, 20, true},
		{"3", 3, 1, true},
		{"0", 0, 1, true},
		{"", 1, 1, false},
		{"abc", 1, 1, false},
		{"3/abc", 1, 1, false},
		{"-2/5", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, total, ok := ParsePair(tt.raw)
			if n != tt.n || total != tt.total || ok != tt.ok {
				t.Errorf("ParsePair(%q) = (%d, %d, %v), want (%d, %d, %v)",
					tt.raw, n, total, ok, tt.n, tt.total, tt.ok)
			}
		})
	}
}

func TestFormatPair(t *testing.T) {
	if got := FormatPair(3, 12); got != "3/12" {
		t.Errorf("FormatPair(3, 12) = %q, want %q", got, "3/12")
	}
	if got := FormatPair(1, 1); got != "1/1" {
		t.Errorf("FormatPair(1, 1) = %q, want %q", got, "1/1")
	}
}

func TestNewTrackMetadataDefaults(t *testing.T) {
	m := NewTrackMetadata()

	if m.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", m.Title, DefaultTitle)
	}
	if m.Year != DefaultYear {
		t.Errorf("Year = %q, want %q", m.Year, DefaultYear)
	}
	if m.TrackNo != 1 || m.TotalTracks != 1 || m.DiskNo != 1 || m.TotalDisks != 1 {
		t.Errorf("pair defaults = (%d/%d, %d/%d), want (1/1, 1/1)",
			m.TrackNo, m.TotalTracks, m.DiskNo, m.TotalDisks)
	}
	if m.Compilation {
		t.Error("Compilation should default to false")
	}
	if m.HasCover() {
		t.Error("HasCover() should be false for a fresh value")
	}
}

func TestArtistJoin(t *testing.T) {
	m := NewTrackMetadata()
	m.TrackArtists = []string{"Shakira", "Wyclef Jean"}

	if got := m.Artist(); got != "Shakira, Wyclef Jean" {
		t.Errorf("Artist() = %q, want %q", got, "Shakira, Wyclef Jean")
	}
}

func TestMapRoundTrip(t *testing.T) {
	m := NewTrackMetadata()
	m.Title = "Underneath Your Clothes"
	m.TrackArtists = []string{"Shakira"}
	m.AlbumArtist = "Shakira"
	m.Album = "Laundry Service"
	m.Compilation = true
	m.TrackNo, m.TotalTracks = 2, 13
	m.DiskNo, m.TotalDisks = 1, 2
	m.Year = "2001"
	m.Genre = "Pop"
	m.Cover = []byte{0x89, 'P', 'N', 'G'}

	got := FromMap(m.Map())
	if !reflect.DeepEqual(got, m) {
		t.Errorf("FromMap(Map()) = %+v, want %+v", got, m)
	}
}

func TestFromMapArtistList(t *testing.T) {
	m := FromMap(map[string]any{
		KeyArtists: []string{"A", "B"},
	})
	if got := m.Artist(); got != "A, B" {
		t.Errorf("Artist() = %q, want %q", got, "A, B")
	}
}

func TestFromMapMissingKeysKeepDefaults(t *testing.T) {
	m := FromMap(map[string]any{})
	if !reflect.DeepEqual(m, NewTrackMetadata()) {
		t.Errorf("FromMap(empty) = %+v, want defaults", m)
	}
}
