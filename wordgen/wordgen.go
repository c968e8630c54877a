// Package wordgen suggests names for new channels.
package wordgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// moods describe how a channel sounds
var moods = []string{
	"Dusty", "Mellow", "Hazy", "Rainy", "Sleepy",
	"Velvet", "Midnight", "Golden", "Faded", "Warm",
	"Foggy", "Quiet", "Drifting", "Lazy", "Neon",
	"Amber", "Cozy", "Distant", "Gentle", "Lunar",
	"Misty", "Pastel", "Slow", "Soft", "Sunday",
	"Twilight", "Vintage", "Wistful", "Analog", "Dreamy",
}

// things are what the channel is about
var things = []string{
	"Tape", "Vinyl", "Cassette", "Piano", "Balcony",
	"Window", "Library", "Garden", "Harbor", "Attic",
	"Tram", "Cafe", "Lantern", "Notebook", "Rooftop",
	"Meadow", "Static", "Radio", "Study", "Porch",
	"Streetlight", "Bookshop", "Raincoat", "Kettle", "Orchard",
	"Subway", "Postcard", "Pillow", "Comet", "Harbour",
}

// Generate returns a random name such as "Dusty Tape Beats" using
// cryptographically secure random number generation.
// Returns an empty string on error.
func Generate() string {
	mood, err := selectRandom(moods)
	if err != nil {
		return ""
	}

	thing, err := selectRandom(things)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%s %s Beats", mood, thing)
}

// selectRandom selects a random element from a slice using crypto/rand
func selectRandom(words []string) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("empty word list")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}

	return words[n.Int64()], nil
}
