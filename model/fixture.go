package model

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// IDGenerator produces unique name suffixes, grounded in the same interface
// the teacher's deploy engine uses to assign ids to blueprint instances.
// NewAnonymousMember uses it to mint a member name when a test doesn't
// care what the name actually is, only that it is distinct.
type IDGenerator interface {
	GenerateID() string
}

// UUIDIDGenerator is an IDGenerator backed by random UUIDv4 strings.
type UUIDIDGenerator struct{}

// NewUUIDIDGenerator creates an IDGenerator that produces UUIDv4 strings.
func NewUUIDIDGenerator() IDGenerator {
	return &UUIDIDGenerator{}
}

// GenerateID returns a new random UUIDv4 string.
func (g *UUIDIDGenerator) GenerateID() string {
	return uuid.NewString()
}

// NewAnonymousMember builds a member of structID's shape, named with a
// generator-produced suffix rather than a hand-chosen name.
func NewAnonymousMember(gen IDGenerator, structID ShapeID, target ShapeID, traits ...TraitEntry) *Member {
	name := "m" + gen.GenerateID()
	return NewMember(structID.WithMember(name), name, target, traits...)
}

// fixtureDoc is the YAML fixture format used by model/testdata: a compact,
// hand-authored way to describe a small service-description model for
// tests, modelled after the teacher's schema.Resource yaml/json dual
// tagging convention.
type fixtureDoc struct {
	Namespace  string              `yaml:"namespace" json:"namespace"`
	Simples    []fixtureSimple     `yaml:"simples,omitempty" json:"simples,omitempty"`
	Structures []fixtureStructure  `yaml:"structures,omitempty" json:"structures,omitempty"`
	Operations []fixtureOperation  `yaml:"operations,omitempty" json:"operations,omitempty"`
	Resources  []fixtureResource   `yaml:"resources,omitempty" json:"resources,omitempty"`
	Services   []fixtureService    `yaml:"services,omitempty" json:"services,omitempty"`
}

type fixtureSimple struct {
	Name string `yaml:"name" json:"name"`
	Kind string `yaml:"kind" json:"kind"`
}

type fixtureMember struct {
	Name   string   `yaml:"name" json:"name"`
	Target string   `yaml:"target" json:"target"`
	Traits []string `yaml:"traits,omitempty" json:"traits,omitempty"`
}

type fixtureStructure struct {
	Name    string          `yaml:"name" json:"name"`
	Members []fixtureMember `yaml:"members,omitempty" json:"members,omitempty"`
}

type fixtureOperation struct {
	Name   string `yaml:"name" json:"name"`
	Input  string `yaml:"input,omitempty" json:"input,omitempty"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

type fixtureIdentifier struct {
	Name   string `yaml:"name" json:"name"`
	Target string `yaml:"target" json:"target"`
}

type fixtureIdentifierBinding struct {
	Operation  string `yaml:"operation" json:"operation"`
	Identifier string `yaml:"identifier" json:"identifier"`
	Member     string `yaml:"member" json:"member"`
}

type fixtureResource struct {
	Name                string                     `yaml:"name" json:"name"`
	Identifiers         []fixtureIdentifier        `yaml:"identifiers,omitempty" json:"identifiers,omitempty"`
	Create              string                     `yaml:"create,omitempty" json:"create,omitempty"`
	Read                string                     `yaml:"read,omitempty" json:"read,omitempty"`
	Update              string                     `yaml:"update,omitempty" json:"update,omitempty"`
	Put                 string                     `yaml:"put,omitempty" json:"put,omitempty"`
	Delete              string                     `yaml:"delete,omitempty" json:"delete,omitempty"`
	List                string                     `yaml:"list,omitempty" json:"list,omitempty"`
	IdentifierBindings  []fixtureIdentifierBinding `yaml:"identifierBindings,omitempty" json:"identifierBindings,omitempty"`
	Documentation       string                     `yaml:"documentation,omitempty" json:"documentation,omitempty"`
}

type fixtureService struct {
	Name      string   `yaml:"name" json:"name"`
	Resources []string `yaml:"resources,omitempty" json:"resources,omitempty"`
}

var fixtureKinds = map[string]Kind{
	"string":    KindString,
	"integer":   KindInteger,
	"float":     KindFloat,
	"boolean":   KindBoolean,
	"blob":      KindBlob,
	"timestamp": KindTimestamp,
}

var fixtureTraits = map[string]TraitID{
	"createOnlyProperty":   TraitCreateOnlyProperty,
	"readOnlyProperty":     TraitReadOnlyProperty,
	"writeOnlyProperty":    TraitWriteOnlyProperty,
	"mutableProperty":      TraitMutableProperty,
	"additionalIdentifier": TraitAdditionalIdentifier,
	"excludeProperty":      TraitExcludeProperty,
	"deprecated":           TraitDeprecated,
}

// LoadFixtureYAML decodes a fixtureDoc and builds the model it describes,
// for table-driven tests that would rather author a service description as
// data than assemble it call-by-call through Builder.
func LoadFixtureYAML(data []byte) (*InMemory, error) {
	var doc fixtureDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("model: decoding fixture: %w", err)
	}
	return buildFixture(doc)
}

func buildFixture(doc fixtureDoc) (*InMemory, error) {
	ns := doc.Namespace
	b := NewBuilder()

	for _, s := range doc.Simples {
		kind, ok := fixtureKinds[s.Kind]
		if !ok {
			return nil, fmt.Errorf("model: fixture simple %q: unknown kind %q", s.Name, s.Kind)
		}
		b.AddSimple(&Simple{ID: NewShapeID(ns, s.Name), Kind: kind})
	}

	for _, s := range doc.Structures {
		structID := NewShapeID(ns, s.Name)
		members := make([]*Member, 0, len(s.Members))
		for _, m := range s.Members {
			traits := make([]TraitEntry, 0, len(m.Traits))
			for _, traitName := range m.Traits {
				traitID, ok := fixtureTraits[traitName]
				if !ok {
					return nil, fmt.Errorf("model: fixture member %q: unknown trait %q", m.Name, traitName)
				}
				traits = append(traits, WithPresenceTrait(traitID))
			}
			members = append(members, NewMember(structID.WithMember(m.Name), m.Name, NewShapeID(ns, m.Target), traits...))
		}
		b.AddStructure(&Structure{ID: structID, Members: members})
	}

	for _, op := range doc.Operations {
		operation := &Operation{ID: NewShapeID(ns, op.Name)}
		if op.Input != "" {
			input := NewShapeID(ns, op.Input)
			operation.Input = &input
		}
		if op.Output != "" {
			output := NewShapeID(ns, op.Output)
			operation.Output = &output
		}
		b.AddOperation(operation)
	}

	for _, r := range doc.Resources {
		resourceID := NewShapeID(ns, r.Name)
		identifiers := make([]Identifier, 0, len(r.Identifiers))
		for _, ident := range r.Identifiers {
			identifiers = append(identifiers, Identifier{Name: ident.Name, Target: NewShapeID(ns, ident.Target)})
		}

		resource := &Resource{ID: resourceID, Identifiers: identifiers}
		if r.Documentation != "" {
			resource.Traits = map[TraitID]Trait{TraitDocumentation: DocumentationTrait(r.Documentation)}
		}
		resource.Create = fixtureOpRef(ns, r.Create)
		resource.Read = fixtureOpRef(ns, r.Read)
		resource.Update = fixtureOpRef(ns, r.Update)
		resource.Put = fixtureOpRef(ns, r.Put)
		resource.Delete = fixtureOpRef(ns, r.Delete)
		resource.List = fixtureOpRef(ns, r.List)
		b.AddResource(resource)

		for _, binding := range r.IdentifierBindings {
			b.BindIdentifier(resourceID, NewShapeID(ns, binding.Operation), binding.Identifier, binding.Member)
		}
	}

	for _, svc := range doc.Services {
		resources := make([]ShapeID, 0, len(svc.Resources))
		for _, name := range svc.Resources {
			resources = append(resources, NewShapeID(ns, name))
		}
		b.AddService(&Service{ID: NewShapeID(ns, svc.Name), Name: svc.Name, Resources: resources})
	}

	return b.Build(), nil
}

func fixtureOpRef(namespace, name string) *ShapeID {
	if name == "" {
		return nil
	}
	id := NewShapeID(namespace, name)
	return &id
}
