package formation

import (
	"fmt"

	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
)

// UpdateRole assigns a name and side type to unum. symmetryCode is 0 for
// Center, negative for Side and the mirrored unum for Symmetry.
//
// A Symmetry role must mirror a named Side role other than itself and always
// carries that role's name: roleName must be empty or equal to it. Renaming a
// Side role renames its mirrors too. A Side role that other roles mirror
// cannot be retyped. On error the table is left unchanged.
func (f *Formation) UpdateRole(unum, symmetryCode int, roleName string) error {
	err := f.updateRole(unum, symmetryCode, roleName)
	if err != nil {
		f.logger.Debug("role update rejected", "unum", unum, "code", symmetryCode, "role", roleName, "err", err)
	} else {
		roleName = f.roles.Name(unum)
	}
	if f.hooks.OnRoleUpdate != nil {
		f.hooks.OnRoleUpdate(&domain.RoleEvent{
			EventBase: f.base(domain.EventRoleUpdate),
			Unum:      unum,
			Code:      symmetryCode,
			RoleName:  roleName,
			Err:       err,
		})
	}
	return err
}

func (f *Formation) updateRole(unum, symmetryCode int, roleName string) error {
	if !domain.ValidUnum(unum) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidUnum, unum)
	}

	next := domain.SideTypeFromCode(symmetryCode)
	if err := f.roles.CheckTransition(unum, next); err != nil {
		return fmt.Errorf("%w: unum %d cannot become %s", err, unum, next)
	}
	if next.IsSymmetry() {
		refName := f.roles.Name(next.Ref())
		if roleName == "" {
			roleName = refName
		} else if roleName != refName {
			return fmt.Errorf("%w: mirror of %d must be named %q, got %q", domain.ErrValidation, next.Ref(), refName, roleName)
		}
	}
	if !domain.ValidRoleName(roleName) {
		return fmt.Errorf("%w: role name %q", domain.ErrValidation, roleName)
	}

	cur, _ := f.roles.Get(unum)
	if next.IsIndependent() && (!cur.Assigned() || cur.Type != next) {
		home := domain.DefaultHome(unum)
		if cur.Assigned() {
			home = f.Position(unum, geom.Vector2D{})
		}
		if next.IsCenter() {
			home.Y = 0
		}
		if err := f.model.CreateRole(unum, next, home); err != nil {
			return fmt.Errorf("create role %d: %w", unum, err)
		}
	}

	f.roles.Set(unum, domain.Role{Name: roleName, Type: next})
	for _, dep := range f.roles.Dependents(unum) {
		f.roles.Set(dep, domain.Role{Name: roleName, Type: domain.SymmetryOf(unum)})
	}
	return nil
}

// CreateDefaultData resets the formation to the canonical starting
// configuration: the 4-3-3 pattern of domain.DefaultRoles with each role at
// its home position for a focus point on the center mark. The attached
// sample corpus is kept.
func (f *Formation) CreateDefaultData() error {
	model := f.newModel()
	prevModel, prevRoles, prevVersion := f.model, f.roles, f.version

	f.model = model
	f.roles = domain.NewRoleTable()
	f.version = FormatVersion
	for _, d := range domain.DefaultRoles {
		if err := f.updateRole(d.Unum, d.Code, d.Name); err != nil {
			f.model, f.roles, f.version = prevModel, prevRoles, prevVersion
			return fmt.Errorf("default data: %w", err)
		}
	}
	f.logger.Debug("default formation created", "method", f.MethodName())
	return nil
}
