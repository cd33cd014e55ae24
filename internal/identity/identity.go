// Package identity fabricates fake personal identities. Person, address
// and company data come from gofakeit; document numbers, usernames and
// emails follow fixed pattern lists.
package identity

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// SupportedLocales lists the locales an identity may be tagged with.
// Unsupported values fall back to en_US.
var SupportedLocales = []string{
	"en_US", "en_GB", "fr_FR", "de_DE", "es_ES",
	"it_IT", "pt_BR", "ar_SA", "ja_JP", "zh_CN",
	"ru_RU", "nl_NL", "pl_PL", "tr_TR", "ar_TN",
}

var avatarServices = []string{
	"https://api.multiavatar.com/{seed}.png",
	"https://avatars.dicebear.com/api/identicon/{seed}.svg",
	"https://robohash.org/{seed}?set=set4",
	"https://ui-avatars.com/api/?name={name}&background=random",
}

var emailDomains = []string{
	"gmail.com", "yahoo.com", "outlook.com", "hotmail.com",
	"protonmail.com", "icloud.com", "mail.com", "aol.com",
}

// Identity is one generated fake person. Optional blocks are pointer-typed
// and omitted from JSON when not requested.
type Identity struct {
	FullName   string `json:"full_name"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Birthdate  string `json:"birthdate"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	NationalID string `json:"national_id"`

	PassportNumber *string `json:"passport_number,omitempty"`
	DriverLicense  *string `json:"driver_license,omitempty"`

	CreditCard       *string `json:"credit_card,omitempty"`
	CreditCardExpiry *string `json:"credit_card_expiry,omitempty"`
	CreditCardCVV    *string `json:"credit_card_cvv,omitempty"`
	BankAccount      *string `json:"bank_account,omitempty"`

	Company  *string `json:"company,omitempty"`
	JobTitle *string `json:"job_title,omitempty"`
	Website  *string `json:"website,omitempty"`

	ProfilePicURL *string `json:"profile_pic_url,omitempty"`
	Locale        string  `json:"locale"`
}

// Options controls which optional blocks are generated and the age window.
type Options struct {
	IncludeFinancial    bool
	IncludeProfessional bool
	MinAge              int
	MaxAge              int
	Gender              string // "male", "female" or empty for random
}

// DefaultOptions matches the historical defaults: everything included,
// ages 18 through 65.
func DefaultOptions() Options {
	return Options{
		IncludeFinancial:    true,
		IncludeProfessional: true,
		MinAge:              18,
		MaxAge:              65,
	}
}

// Generator produces identities from an explicitly owned entropy stream.
// Not safe for concurrent use; concurrent callers construct their own.
type Generator struct {
	faker  *gofakeit.Faker
	rnd    *rand.Rand
	locale string
}

// New returns a Generator seeded from the OS entropy source.
func New(locale string) (*Generator, error) {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("failed to seed identity generator: %w", err)
	}
	seed := binary.LittleEndian.Uint64(buf[:8])
	stream := binary.LittleEndian.Uint64(buf[8:])
	return NewSeeded(locale, seed, stream), nil
}

// NewSeeded returns a deterministic Generator for the given seed and
// stream offset.
func NewSeeded(locale string, seed, stream uint64) *Generator {
	src := rand.NewPCG(seed, stream)
	return &Generator{
		// The faker and the pattern draws share one source, so a seeded
		// run replays the exact same identity sequence.
		faker:  gofakeit.NewFaker(src, false),
		rnd:    rand.New(src),
		locale: normalizeLocale(locale),
	}
}

func normalizeLocale(locale string) string {
	for _, l := range SupportedLocales {
		if l == locale {
			return locale
		}
	}
	return "en_US"
}

// Locale reports the locale identities will be tagged with.
func (g *Generator) Locale() string { return g.locale }

// Generate fabricates one identity.
func (g *Generator) Generate(opts Options) *Identity {
	if opts.MinAge <= 0 {
		opts.MinAge = 18
	}
	if opts.MaxAge < opts.MinAge {
		opts.MaxAge = opts.MinAge
	}

	gender := opts.Gender
	if gender == "" {
		gender = pick(g.rnd, []string{"male", "female"})
	}

	first := g.faker.FirstName()
	last := g.faker.LastName()
	full := first + " " + last

	now := time.Now()
	oldest := now.AddDate(-opts.MaxAge-1, 0, 1)
	youngest := now.AddDate(-opts.MinAge, 0, 0)
	birthdate := g.faker.DateRange(oldest, youngest)

	id := &Identity{
		FullName:   full,
		FirstName:  first,
		LastName:   last,
		Username:   g.username(first, last, birthdate.Year()),
		Email:      g.email(first, last),
		Phone:      g.faker.Phone(),
		Address:    g.faker.Street(),
		City:       g.faker.City(),
		Country:    g.faker.Country(),
		PostalCode: g.faker.Zip(),
		Birthdate:  birthdate.Format("2006-01-02"),
		Age:        age(birthdate, now),
		Gender:     gender,
		NationalID: g.faker.SSN(),

		PassportNumber: ptr(g.passportNumber()),
		DriverLicense:  ptr(g.driverLicense()),
		Locale:         g.locale,
	}

	if opts.IncludeFinancial {
		id.CreditCard = ptr(g.faker.CreditCardNumber(nil))
		id.CreditCardExpiry = ptr(g.faker.CreditCardExp())
		id.CreditCardCVV = ptr(fmt.Sprintf("%03d", 100+g.rnd.IntN(900)))
		id.BankAccount = ptr(g.digits(16))
	}

	if opts.IncludeProfessional {
		id.Company = ptr(g.faker.Company())
		id.JobTitle = ptr(g.faker.JobTitle())
		id.Website = ptr("https://" + g.faker.DomainName())
	}

	id.ProfilePicURL = ptr(g.avatarURL(full))
	return id
}

// GenerateBatch fabricates count identities sequentially.
func (g *Generator) GenerateBatch(count int, opts Options) []*Identity {
	ids := make([]*Identity, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, g.Generate(opts))
	}
	return ids
}

func age(birthdate, now time.Time) int {
	years := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		years--
	}
	return years
}

func (g *Generator) username(first, last string, birthYear int) string {
	lf := strings.ToLower(first)
	ll := strings.ToLower(last)
	patterns := []string{
		lf + ll,
		lf + "." + ll,
		lf + "_" + ll,
		fmt.Sprintf("%s%d", lf, 1+g.rnd.IntN(999)),
		fmt.Sprintf("%c%s%02d", lf[0], ll, birthYear%100),
		fmt.Sprintf("%s%c%d", ll, lf[0], 1+g.rnd.IntN(99)),
	}
	return pick(g.rnd, patterns)
}

func (g *Generator) email(first, last string) string {
	lf := strings.ToLower(first)
	ll := strings.ToLower(last)
	patterns := []string{
		lf + "." + ll,
		lf + ll,
		string(lf[0]) + ll,
		fmt.Sprintf("%s%d", lf, 1+g.rnd.IntN(999)),
	}
	return pick(g.rnd, patterns) + "@" + pick(g.rnd, emailDomains)
}

func (g *Generator) passportNumber() string {
	return g.upperLetters(2) + g.digits(7)
}

func (g *Generator) driverLicense() string {
	return g.upperLetters(1) + g.digits(12)
}

func (g *Generator) avatarURL(fullName string) string {
	seed := 100000 + g.rnd.IntN(900000)
	tpl := pick(g.rnd, avatarServices)
	url := strings.ReplaceAll(tpl, "{seed}", fmt.Sprintf("%d", seed))
	return strings.ReplaceAll(url, "{name}", strings.ReplaceAll(fullName, " ", "+"))
}

func (g *Generator) upperLetters(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('A' + g.rnd.IntN(26)))
	}
	return b.String()
}

func (g *Generator) digits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + g.rnd.IntN(10)))
	}
	return b.String()
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.IntN(len(items))]
}

func ptr(s string) *string { return &s }
