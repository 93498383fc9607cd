package ikfast

import (
	"encoding/xml"
	"math"
	"os"
	"slices"

	"github.com/pkg/errors"
)

// Supported URDF joint type values.
const (
	ContinuousJoint = "continuous"
	RevoluteJoint   = "revolute"
	PrismaticJoint  = "prismatic"
	FixedJoint      = "fixed"
)

// urdfConfig covers the subset of the Universal Robot Description Format needed to
// recover the joint table the generated solver was built against.
type urdfConfig struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Joints  []urdfJoint `xml:"joint"`
}

type urdfJoint struct {
	XMLName xml.Name    `xml:"joint"`
	Name    string      `xml:"name,attr"`
	Type    string      `xml:"type,attr"`
	Parent  urdfFrame   `xml:"parent"`
	Child   urdfFrame   `xml:"child"`
	Limit   *urdfLimit  `xml:"limit,omitempty"`
	Safety  *urdfSafety `xml:"safety_controller,omitempty"`
}

type urdfFrame struct {
	Link string `xml:"link,attr"`
}

type urdfLimit struct {
	Lower float64 `xml:"lower,attr"`
	Upper float64 `xml:"upper,attr"`
}

type urdfSafety struct {
	SoftLower float64 `xml:"soft_lower_limit,attr"`
	SoftUpper float64 `xml:"soft_upper_limit,attr"`
}

// NewChainFromURDFFile reads a URDF file and builds the chain between the given links.
func NewChainFromURDFFile(filename, baseLink, tipLink string, numJoints int) (*Chain, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return NewChainFromURDF(xmlData, baseLink, tipLink, numJoints)
}

// NewChainFromURDF walks the robot description from the tip link toward the base link
// and records each movable joint along the way, preferring safety-controller soft limits
// over nominal ones. Fixed joints are traversed but contribute no joint. The walk must
// produce exactly numJoints joints, the count the solver was generated for; anything else
// is a configuration mismatch and fails.
func NewChainFromURDF(xmlData []byte, baseLink, tipLink string, numJoints int) (*Chain, error) {
	if len(xmlData) == 0 {
		return nil, ErrNoModelInformation
	}

	urdf := &urdfConfig{}
	if err := xml.Unmarshal(xmlData, urdf); err != nil {
		return nil, errors.Wrap(err, "failed to parse URDF data")
	}

	jointByChild := map[string]*urdfJoint{}
	for i := range urdf.Joints {
		joint := &urdf.Joints[i]
		jointByChild[joint.Child.Link] = joint
	}

	var linkNames []string
	var joints []Joint
	link := tipLink
	for link != baseLink && len(joints) <= numJoints {
		linkNames = append(linkNames, link)
		parentJoint, ok := jointByChild[link]
		if !ok {
			return nil, errors.Errorf("link %q has no parent joint, %q is not an ancestor of %q", link, baseLink, tipLink)
		}
		joint, movable, err := parseJoint(parentJoint)
		if err != nil {
			return nil, err
		}
		if movable {
			joints = append(joints, joint)
		}
		link = parentJoint.Parent.Link
	}

	if len(joints) != numJoints {
		return nil, NewJointCountMismatchError(len(joints), numJoints)
	}

	// The walk runs tip to base; the solver expects base to tip.
	slices.Reverse(linkNames)
	slices.Reverse(joints)

	return &Chain{
		baseLink:  baseLink,
		tipLink:   tipLink,
		linkNames: linkNames,
		joints:    joints,
	}, nil
}

func parseJoint(joint *urdfJoint) (Joint, bool, error) {
	switch joint.Type {
	case FixedJoint:
		return Joint{}, false, nil
	case ContinuousJoint:
		return Joint{
			Name:       joint.Name,
			Limit:      Limit{Min: -math.Pi, Max: math.Pi},
			Continuous: true,
		}, true, nil
	case RevoluteJoint, PrismaticJoint:
		if joint.Limit == nil {
			return Joint{}, false, errors.Errorf("joint %q has no limit element", joint.Name)
		}
		limit := Limit{Min: joint.Limit.Lower, Max: joint.Limit.Upper}
		if joint.Safety != nil {
			limit = Limit{Min: joint.Safety.SoftLower, Max: joint.Safety.SoftUpper}
		}
		return Joint{Name: joint.Name, Limit: limit, HasLimits: true}, true, nil
	default:
		// Joint types with no kinematic meaning to the solver are skipped, as are
		// fixed joints.
		return Joint{}, false, nil
	}
}
