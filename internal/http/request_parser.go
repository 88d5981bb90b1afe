package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scbank/internal/core"
)

const dateParamLayout = "2006-01-02"

// parseCriteria builds filter criteria from query parameters. Every
// parameter is optional; absent ones leave that predicate inactive.
//
//	search      free-text term
//	type        all | income | expense
//	accounts    comma-separated account ids
//	category    all | exact category name
//	dateStart   YYYY-MM-DD, inclusive
//	dateEnd     YYYY-MM-DD, inclusive
func parseCriteria(values url.Values) (core.FilterCriteria, error) {
	c := core.DefaultCriteria()

	c.SearchTerm = strings.TrimSpace(values.Get("search"))

	if v := strings.TrimSpace(values.Get("type")); v != "" {
		if v != core.TypeAll && !core.TransactionType(v).Valid() {
			return c, fmt.Errorf("unknown transaction type %q", v)
		}
		c.Type = v
	}

	if v := strings.TrimSpace(values.Get("accounts")); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.AccountIDs = append(c.AccountIDs, id)
			}
		}
	}

	if v := strings.TrimSpace(values.Get("category")); v != "" {
		c.Category = v
	}

	var err error
	if c.DateRange.Start, err = parseDateParam(values.Get("dateStart")); err != nil {
		return c, err
	}
	if c.DateRange.End, err = parseDateParam(values.Get("dateEnd")); err != nil {
		return c, err
	}
	if !c.DateRange.Start.IsZero() && !c.DateRange.End.IsZero() &&
		c.DateRange.End.Before(c.DateRange.Start) {
		return c, fmt.Errorf("dateEnd precedes dateStart")
	}

	return c, nil
}

func parseDateParam(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateParamLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", v)
	}
	return t, nil
}

// criteriaCacheKey is a canonical string form of the criteria, used as the
// filter cache key.
func criteriaCacheKey(c core.FilterCriteria) string {
	var b strings.Builder
	b.WriteString("s=")
	b.WriteString(strings.ToLower(c.SearchTerm))
	b.WriteString("|t=")
	b.WriteString(c.Type)
	b.WriteString("|a=")
	b.WriteString(strings.Join(c.AccountIDs, ","))
	b.WriteString("|c=")
	b.WriteString(c.Category)
	b.WriteString("|ds=")
	if !c.DateRange.Start.IsZero() {
		b.WriteString(c.DateRange.Start.Format(dateParamLayout))
	}
	b.WriteString("|de=")
	if !c.DateRange.End.IsZero() {
		b.WriteString(c.DateRange.End.Format(dateParamLayout))
	}
	return b.String()
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// bearerToken pulls the session token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
