package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Role is a party role. Each distinct role present in a party grants a 1%
// main-stat bonus.
type Role int

const (
	RoleTank Role = iota + 1
	RoleHealer
	RoleMelee
	RoleRanged
	RoleCaster
)

var roleNames = map[Role]string{
	RoleTank:   "tank",
	RoleHealer: "healer",
	RoleMelee:  "melee",
	RoleRanged: "ranged",
	RoleCaster: "caster",
}

// String returns the lower-case role name.
func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole returns the Role named s.
//
// Postcondition: Returns a valid Role or a non-nil error.
func ParseRole(s string) (Role, error) {
	for r, n := range roleNames {
		if n == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// UnmarshalYAML decodes a role from its name.
func (r *Role) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML encodes a role as its name.
func (r Role) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}
