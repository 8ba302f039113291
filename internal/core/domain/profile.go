package domain

import (
	"errors"
	"time"
)

const (
	GenderMen   = "men"
	GenderWomen = "women"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileExists = errors.New("profile already exists")

// Profile is the optional public record linked 1:1 to an Account.
// Zodiac and Horoscope are derived from BirthDate, never set by callers.
type Profile struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Zodiac    string     `json:"zodiac,omitempty"`
	Horoscope string     `json:"horoscope,omitempty"`
	Height    int        `json:"height,omitempty"`
	Weight    int        `json:"weight,omitempty"`
	Interests []string   `json:"interests,omitempty"`
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

var zodiacSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// zodiacCutoff[m] is the last day of month m that still belongs to the
// sign which started in the previous month.
var zodiacCutoff = [13]int{0, 19, 18, 20, 19, 20, 21, 22, 22, 22, 23, 21, 21}

// zodiacByMonth[m] is the sign index for days after the cutoff of month m.
var zodiacByMonth = [13]int{0, 10, 11, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

// ZodiacSign returns the Western zodiac sign for a birth date.
func ZodiacSign(birthDate time.Time) string {
	m := int(birthDate.Month())
	if birthDate.Day() <= zodiacCutoff[m] {
		// previous month's sign runs into the start of this one
		prev := m - 1
		if prev == 0 {
			prev = 12
		}
		return zodiacSigns[zodiacByMonth[prev]]
	}
	return zodiacSigns[zodiacByMonth[m]]
}

var horoscopeAnimals = [12]string{
	"Monkey", "Rooster", "Dog", "Pig", "Rat", "Ox",
	"Tiger", "Rabbit", "Dragon", "Snake", "Horse", "Goat",
}

// HoroscopeAnimal returns the Chinese zodiac animal for a birth year.
// The cycle is anchored so that years divisible by 12 map to Monkey.
func HoroscopeAnimal(year int) string {
	i := year % 12
	if i < 0 {
		i += 12
	}
	return horoscopeAnimals[i]
}
