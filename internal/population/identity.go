package population

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Fixed name pools keep identities deterministic without carrying a fake-data
// dependency. 40x40 surname combinations are plenty for an 8k population;
// the customer code disambiguates emails.
var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Carlos", "Karen", "Daniel", "Lisa", "Matthew", "Nancy",
	"Anthony", "Betty", "Mark", "Margaret", "Steven", "Sandra", "Andrew", "Ashley",
	"Kenji", "Emily", "Omar", "Michelle", "Lucas", "Amanda", "Diego", "Melissa",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
	"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
	"Nakamura", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

var emailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "icloud.com", "hotmail.com"}

type identity struct {
	Name  string
	Email string
	Phone string
}

// newIdentity draws a synthetic person. The caller owns the rng, so the same
// stream always yields the same person.
func newIdentity(rng *rand.Rand, code string) identity {
	first := firstNames[rng.IntN(len(firstNames))]
	last := lastNames[rng.IntN(len(lastNames))]
	domain := emailDomains[rng.IntN(len(emailDomains))]

	return identity{
		Name: first + " " + last,
		Email: fmt.Sprintf("%s.%s.%s@%s",
			strings.ToLower(first), strings.ToLower(last), strings.ToLower(code), domain),
		Phone: fmt.Sprintf("(%d) %03d-%04d", 200+rng.IntN(800), rng.IntN(1000), rng.IntN(10000)),
	}
}

func zipFor(rng *rand.Rand, state string) string {
	if state == "CO" {
		return fmt.Sprintf("80%03d", 200+rng.IntN(100))
	}
	return fmt.Sprintf("%05d", 10000+rng.IntN(89999))
}
