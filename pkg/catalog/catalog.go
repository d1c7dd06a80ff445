// ABOUTME: Immutable track catalog for one locale
// ABOUTME: Lists tracks by category and resolves track ids
package catalog

import "log"

// Catalog holds the localized track list. It never changes after New.
type Catalog struct {
	locale  Locale
	tracks  []SoundTrack
	byID    map[string]int
	strings Strings
}

// New builds the catalog for l
func New(l Locale) *Catalog {
	tracks := buildTracks(l)
	byID := make(map[string]int, len(tracks))
	for i, t := range tracks {
		byID[t.ID] = i
	}
	return &Catalog{
		locale:  l,
		tracks:  tracks,
		byID:    byID,
		strings: StringsFor(l),
	}
}

// Locale returns the catalog locale
func (c *Catalog) Locale() Locale {
	return c.locale
}

// Strings returns the interface text for the catalog locale
func (c *Catalog) Strings() Strings {
	return c.strings
}

// All returns every track in display order
func (c *Catalog) All() []SoundTrack {
	out := make([]SoundTrack, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// ListByCategory returns the tracks of one category in display order
func (c *Catalog) ListByCategory(cat Category) []SoundTrack {
	var out []SoundTrack
	for _, t := range c.tracks {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// FindByID resolves a track id. Unknown ids are logged and report false.
func (c *Catalog) FindByID(id string) (SoundTrack, bool) {
	i, ok := c.byID[id]
	if !ok {
		log.Printf("Track not found: %q", id)
		return SoundTrack{}, false
	}
	return c.tracks[i], true
}

// FirstOfKind returns the first track whose params are of kind k
func (c *Catalog) FirstOfKind(k Kind) (SoundTrack, bool) {
	for _, t := range c.tracks {
		if t.Params.Kind() == k {
			return t, true
		}
	}
	return SoundTrack{}, false
}
