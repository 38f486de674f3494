package category

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstaudit/internal/bill"
	"gstaudit/internal/domain"
	"gstaudit/internal/port"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Options configures a Resolver. Zero values fall back to restaurant services at 5%.
type Options struct {
	DefaultCategory string
	DefaultRate     *decimal.Decimal
	Table           []Rule
	Logger          *zap.Logger
}

// Resolution is the category and rate chosen for one item description.
type Resolution struct {
	Category string
	Rate     decimal.Decimal
	HSNCode  string
	Source   domain.RateSource
}

// Resolver maps item descriptions to a category and statutory GST rate.
type Resolver struct {
	lookup          port.RateLookup
	table           []Rule
	defaultCategory string
	defaultRate     decimal.Decimal
	logger          *zap.Logger
}

// NewResolver creates a Resolver. lookup may be nil, in which case only the
// keyword table and the default apply.
func NewResolver(lookup port.RateLookup, opts Options) (*Resolver, error) {
	r := &Resolver{
		lookup:          lookup,
		table:           opts.Table,
		defaultCategory: opts.DefaultCategory,
		defaultRate:     decimal.NewFromInt(5),
		logger:          opts.Logger,
	}
	if r.table == nil {
		r.table = DefaultTable()
	}
	if r.defaultCategory == "" {
		r.defaultCategory = RestaurantServices
	}
	if opts.DefaultRate != nil {
		r.defaultRate = *opts.DefaultRate
	}
	if !IsSlab(r.defaultRate) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDefaultRate, r.defaultRate)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r, nil
}

// Table returns the keyword rules in the order they are evaluated.
func (r *Resolver) Table() []Rule {
	return r.table
}

// Resolve picks a category and rate for a description: reference lookup first,
// then the keyword table, then the configured default. It never fails.
func (r *Resolver) Resolve(name string) Resolution {
	if r.lookup != nil && strings.TrimSpace(name) != "" {
		if entry, ok := r.lookup.Lookup(name); ok {
			if IsSlab(entry.Rate) {
				cat := entry.Category
				if cat == "" {
					cat = entry.Name
				}
				return Resolution{Category: cat, Rate: entry.Rate, HSNCode: entry.Code, Source: domain.RateSourceLookup}
			}
			r.logger.Warn("reference rate is not a statutory slab, ignoring",
				zap.String("item", name),
				zap.String("code", entry.Code),
				zap.String("rate", entry.Rate.String()),
			)
		}
	}

	if rule, ok := matchRule(r.table, name); ok {
		return Resolution{Category: rule.Category, Rate: rule.Rate, HSNCode: rule.HSNCode, Source: domain.RateSourceKeyword}
	}

	r.logger.Warn("unknown item category, using default rate",
		zap.String("item", name),
		zap.String("category", r.defaultCategory),
		zap.String("rate", r.defaultRate.String()),
	)
	return Resolution{Category: r.defaultCategory, Rate: r.defaultRate, Source: domain.RateSourceDefault}
}

// ResolveItems fills category, rate and the per-item CGST/SGST split in place.
func (r *Resolver) ResolveItems(items []bill.LineItem) {
	for i := range items {
		item := &items[i]
		res := r.Resolve(item.Name)
		item.Category = res.Category
		item.GSTRate = res.Rate
		item.HSNCode = res.HSNCode
		item.RateSource = res.Source

		half := item.TotalPrice.Mul(res.Rate).Div(hundred).Div(two).Round(2)
		item.CGST = half
		item.SGST = half
	}
}

func matchRule(table []Rule, name string) (Rule, bool) {
	desc := strings.ToLower(name)
	tokens := strings.FieldsFunc(desc, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	joined := strings.Join(tokens, " ")
	for _, rule := range table {
		for _, kw := range rule.Keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(joined, kw) {
					return rule, true
				}
				continue
			}
			for _, tok := range tokens {
				if strings.Contains(tok, kw) {
					return rule, true
				}
			}
		}
	}
	return Rule{}, false
}
