package feedsim

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	eventIDBase        = 190000000
	eventIDSpan        = 9999999
	marketIDBase       = 160000000
	marketIDSpan       = 9999999
)

// linkMode controls how a live row relates to its prematch fixture.
type linkMode int

const (
	// linkEmbeddedID embeds the prematch event id in the market id.
	linkEmbeddedID linkMode = iota
	// linkFixtureID shares only the fixture id across feeds.
	linkFixtureID
	// linkNamesOnly shares nothing but abbreviated participant names.
	linkNamesOnly
	// linkOrphan appears in-play with no prematch counterpart.
	linkOrphan
)

// fixture is one generated match, rendered into both provider shapes.
type fixture struct {
	eventID   string
	marketID  string
	fixtureID string
	home      string
	away      string
	league    string
	start     time.Time
	live      bool
	mode      linkMode
}

var firstNames = []string{
	"Novak", "Carlos", "Jannik", "Daniil", "Alexander", "Iga",
	"Aryna", "Coco", "Elena", "Stefanos", "Casper", "Holger",
	"Taylor", "Andrey", "Hubert", "Ons", "Jessica", "Karolina",
}

var lastNames = []string{
	"Djokovic", "Alcaraz", "Sinner", "Medvedev", "Zverev", "Swiatek",
	"Sabalenka", "Gauff", "Rybakina", "Tsitsipas", "Ruud", "Rune",
	"Fritz", "Rublev", "Hurkacz", "Jabeur", "Pegula", "Muchova",
}

var leagues = []string{
	"ATP Cincinnati", "WTA Montreal", "US Open Qualifying",
	"Challenger Como", "ITF M25 Lisbon",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(span int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(span))
	return n.Int64()
}

func pick(options []string) string {
	return options[randomInt(int64(len(options)))]
}

// randomPlayer returns a full name with distinct first and last parts.
func randomPlayer() string {
	return pick(firstNames) + " " + pick(lastNames)
}

// abbreviate renders "Carlos Alcaraz" as "Alcaraz C." the way the
// in-play feed spells participants.
func abbreviate(full string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return full
	}
	return parts[len(parts)-1] + " " + parts[0][:1] + "."
}

// generateFixtures creates n fixtures; roughly liveFraction of them
// also appear in-play, spread across the link modes. A few extra
// orphan live rows are appended so the in-play feed always has events
// the prematch feed does not know about.
func generateFixtures(n int, liveFraction float64) []fixture {
	now := time.Now().UTC().Truncate(time.Minute)

	fixtures := make([]fixture, 0, n+n/10+1)
	for i := 0; i < n; i++ {
		home, away := randomPlayer(), randomPlayer()
		for away == home {
			away = randomPlayer()
		}
		f := fixture{
			eventID:   fmt.Sprintf("E%d", eventIDBase+randomInt(eventIDSpan)),
			fixtureID: fmt.Sprintf("F%d", marketIDBase+randomInt(marketIDSpan)),
			home:      home,
			away:      away,
			league:    pick(leagues),
			start:     now.Add(time.Duration(randomInt(12)) * time.Hour),
			live:      getRandomFloat() < liveFraction,
		}
		switch {
		case getRandomFloat() < 0.6:
			f.mode = linkEmbeddedID
			f.marketID = fmt.Sprintf("13-0-%s-2", f.eventID)
		case getRandomFloat() < 0.5:
			f.mode = linkFixtureID
			f.marketID = fmt.Sprintf("M%d", marketIDBase+randomInt(marketIDSpan))
		default:
			f.mode = linkNamesOnly
			f.marketID = fmt.Sprintf("M%d", marketIDBase+randomInt(marketIDSpan))
			f.fixtureID = ""
		}
		fixtures = append(fixtures, f)
	}

	orphans := n / 10
	if orphans == 0 {
		orphans = 1
	}
	for i := 0; i < orphans; i++ {
		fixtures = append(fixtures, fixture{
			marketID: fmt.Sprintf("M%d", marketIDBase+randomInt(marketIDSpan)),
			home:     randomPlayer(),
			away:     randomPlayer(),
			start:    now,
			live:     true,
			mode:     linkOrphan,
		})
	}

	return fixtures
}
