package validation

import (
	"strings"

	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
)

// NormalizeShopProfile trims names in the menu/staff sub-lists and drops
// rows left without a name. Dropping is a policy choice, not a validation
// error: half-filled rows are treated as abandoned input.
func NormalizeShopProfile(p *dtos.ShopProfile) {
	p.Name = strings.TrimSpace(p.Name)
	p.Area = strings.TrimSpace(p.Area)

	if p.Menus != nil {
		menus := make([]dtos.MenuItem, 0, len(p.Menus))
		for _, m := range p.Menus {
			m.Name = strings.TrimSpace(m.Name)
			if m.Name == "" {
				continue
			}
			menus = append(menus, m)
		}
		p.Menus = menus
	}

	if p.Staff != nil {
		staff := make([]dtos.StaffRow, 0, len(p.Staff))
		for _, s := range p.Staff {
			s.Name = strings.TrimSpace(s.Name)
			if s.Name == "" {
				continue
			}
			staff = append(staff, s)
		}
		p.Staff = staff
	}
}

// ShopProfile checks an edited profile against the server's constraints.
// Callers should run NormalizeShopProfile first.
func ShopProfile(p dtos.ShopProfile) *FieldErrors {
	fields := map[string]string{}
	if err := validate.Struct(p); err != nil {
		fields = structFields(err)
	}
	if p.PriceMax != 0 && p.PriceMax < p.PriceMin {
		fields["price_max"] = "price_max must be greater than or equal to price_min"
	}
	if len(fields) > 0 {
		return &FieldErrors{Message: "shop profile is invalid", Fields: fields}
	}
	return nil
}

// TherapistRecord checks an edited roster entry.
func TherapistRecord(t dtos.TherapistRecord) *FieldErrors {
	if err := validate.Struct(t); err != nil {
		return &FieldErrors{Message: "therapist record is invalid", Fields: structFields(err)}
	}
	return nil
}
