// Package seed creates the bootstrap accounts and sample listing. Every
// step skips records that already exist, so running it twice is safe.
package seed

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/utils"
)

// Options holds the bootstrap credentials.
type Options struct {
	SuperAdminEmail    string `env:"SEED_SUPERADMIN_EMAIL" envDefault:"superadmin@luxylyfe.com"`
	SuperAdminPassword string `env:"SEED_SUPERADMIN_PASSWORD" envDefault:"superadmin123"`
	AdminEmail         string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@luxylyfe.com"`
	AdminPassword      string `env:"SEED_ADMIN_PASSWORD" envDefault:"admin123"`
	MemberEmail        string `env:"SEED_MEMBER_EMAIL" envDefault:"member@luxylyfe.com"`
	MemberPassword     string `env:"SEED_MEMBER_PASSWORD" envDefault:"member123"`
	Cost               int
}

// SampleProperty is the listing the seeded member belongs to.
func SampleProperty(ownerEmail string) *model.Property {
	return &model.Property{
		PropertyID:   "LL-0001",
		Title:        "Oceanfront Villa",
		Address:      "100 Ocean Drive",
		City:         "Miami Beach",
		State:        "FL",
		ZipCode:      "33139",
		PropertyType: model.PropertyVilla,
		Bedrooms:     5,
		Bathrooms:    4.5,
		Sqft:         6200,
		Price:        12500000,
		Description:  "Private beachfront estate with infinity pool.",
		Amenities:    []string{"Pool", "Private beach", "Wine cellar"},
		Images:       []string{},
		Email:        ownerEmail,
		Phone:        "+1 (305) 555-0100",
		IsAvailable:  true,
		IsFeature:    true,
	}
}

// Run creates the superadmin, admin, sample property and member.
func Run(ctx context.Context, repos *repository.Repositories, opts Options, log logrus.FieldLogger) error {
	accounts := []struct {
		email, password, name string
		role                  model.Role
	}{
		{opts.SuperAdminEmail, opts.SuperAdminPassword, "Super Admin", model.RoleSuperAdmin},
		{opts.AdminEmail, opts.AdminPassword, "Admin", model.RoleAdmin},
	}
	for _, a := range accounts {
		if err := ensureUser(ctx, repos, opts.Cost, &model.User{Email: a.email, Role: a.role, Name: a.name}, a.password, log); err != nil {
			return err
		}
	}

	prop := SampleProperty(opts.MemberEmail)
	existing, err := repos.Properties.FindUnique(ctx, repository.PropertyWhere{PropertyID: prop.PropertyID})
	if err != nil {
		return err
	}
	if existing == nil {
		if existing, err = repos.Properties.Create(ctx, prop); err != nil {
			return err
		}
		log.WithField("property_id", existing.PropertyID).Info("seeded property")
	}

	return ensureUser(ctx, repos, opts.Cost, &model.User{
		Email:           opts.MemberEmail,
		Role:            model.RoleMember,
		Name:            "Sample Member",
		Phone:           existing.Phone,
		PropertyAddress: existing.Address,
		PropertyNumber:  "1",
	}, opts.MemberPassword, log)
}

func ensureUser(ctx context.Context, repos *repository.Repositories, cost int, u *model.User, password string, log logrus.FieldLogger) error {
	existing, err := repos.Users.FindUnique(ctx, repository.UserWhere{Email: u.Email})
	if err != nil {
		return err
	}
	if existing != nil {
		log.WithField("email", existing.Email).Debug("user exists; skipping")
		return nil
	}
	if u.Password, err = utils.HashPassword(password, cost); err != nil {
		return err
	}
	if _, err := repos.Users.Create(ctx, u); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"email": u.Email, "role": u.Role}).Info("seeded user")
	return nil
}
