package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"scbank/internal/core"
)

// NewFromDir builds the catalog from the built-in fixtures, replacing any
// section a JSON file in the data directory provides. A missing or
// unreadable file keeps the defaults. An empty base means no overrides.
func NewFromDir(base string) *Catalog {
	c := New()
	if base == "" {
		return c
	}
	if contacts := readContacts(filepath.Join(base, "contacts.json")); len(contacts) > 0 {
		c.contacts = contacts
	}
	if faqs := readFaqs(filepath.Join(base, "faqs.json")); len(faqs) > 0 {
		c.faqs = faqs
	}
	if rates := readRates(filepath.Join(base, "rates.json")); len(rates) > 0 {
		c.rates = rates
	}
	return c
}

type contactOverride struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type faqOverride struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func readContacts(path string) []core.Contact {
	var raw []contactOverride
	if !readJSON(path, &raw) {
		return nil
	}
	out := make([]core.Contact, 0, len(raw))
	for _, o := range raw {
		if strings.TrimSpace(o.ID) == "" || strings.TrimSpace(o.Name) == "" {
			continue
		}
		out = append(out, core.Contact{ID: o.ID, Name: o.Name, AvatarURL: o.AvatarURL})
	}
	return out
}

func readFaqs(path string) []core.FaqItem {
	var raw []faqOverride
	if !readJSON(path, &raw) {
		return nil
	}
	out := make([]core.FaqItem, 0, len(raw))
	for _, o := range raw {
		if strings.TrimSpace(o.Question) == "" {
			continue
		}
		out = append(out, core.FaqItem{Question: o.Question, Answer: o.Answer})
	}
	return out
}

// readRates loads an ISO code to units-per-USD map, normalizing codes to
// upper case so lookups stay case-insensitive.
func readRates(path string) map[string]float64 {
	var raw map[string]float64
	if !readJSON(path, &raw) {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for code, rate := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || rate <= 0 {
			continue
		}
		out[code] = rate
	}
	return out
}

func readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
