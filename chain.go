package ikfast

// Limit represents the limits of motion for a joint.
type Limit struct {
	Min float64
	Max float64
}

// Joint describes a single movable joint between the base link and the tip link.
// Continuous joints carry a synthetic [-pi, pi] range and HasLimits false, so they are
// never rejected by the limit filter.
type Joint struct {
	Name       string
	Limit      Limit
	HasLimits  bool
	Continuous bool
}

// Chain is the ordered joint and link table between a base link and a tip link,
// base first. It is immutable once built; an Engine holds one for its lifetime.
type Chain struct {
	baseLink  string
	tipLink   string
	linkNames []string
	joints    []Joint
}

// DoF returns the number of movable joints in the chain.
func (c *Chain) DoF() int {
	return len(c.joints)
}

// Joints returns the chain's joints in base to tip order. Callers must not mutate it.
func (c *Chain) Joints() []Joint {
	return c.joints
}

// JointNames returns the names of the chain's joints in base to tip order.
func (c *Chain) JointNames() []string {
	names := make([]string, 0, len(c.joints))
	for _, joint := range c.joints {
		names = append(names, joint.Name)
	}
	return names
}

// LinkNames returns the names of the links traversed between tip and base, in base to
// tip order. The base link itself is not included.
func (c *Chain) LinkNames() []string {
	return c.linkNames
}

// BaseLink returns the name of the link the chain is rooted at.
func (c *Chain) BaseLink() string {
	return c.baseLink
}

// TipLink returns the name of the end effector link.
func (c *Chain) TipLink() string {
	return c.tipLink
}
