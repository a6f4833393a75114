package gardenaCommands

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrUnknownParameter  = errors.New("unknown parameter")
	ErrTooManyArguments  = errors.New("too many arguments")
	ErrMissingArgument   = errors.New("missing argument")
	ErrDuplicateArgument = errors.New("argument given twice")
)

// Command is a requested action for one ability of a device. Building a
// Command never talks to the API; the client sends it.
type Command struct {
	Name       string
	Ability    string
	Parameters map[string]any
}

func (c Command) String() string {
	if len(c.Parameters) == 0 {
		return fmt.Sprintf("%s/%s", c.Ability, c.Name)
	}
	return fmt.Sprintf("%s/%s%v", c.Ability, c.Name, c.Parameters)
}

// Param declares one parameter of a command.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

func Required(name string) Param {
	return Param{Name: name}
}

func Optional(name string, value any) Param {
	return Param{Name: name, Default: value, HasDefault: true}
}

// Spec declares a command: its name, the ability it targets and its
// ordered parameter list.
type Spec struct {
	Name    string
	Ability string
	Params  []Param
}

// Build binds positional arguments to the declared parameters.
func (s Spec) Build(args ...any) (Command, error) {
	return s.bind(args, nil)
}

// BuildNamed binds arguments by parameter name.
func (s Spec) BuildNamed(args map[string]any) (Command, error) {
	return s.bind(nil, args)
}

// Bind accepts positional arguments followed by named ones.
func (s Spec) Bind(positional []any, named map[string]any) (Command, error) {
	return s.bind(positional, named)
}

func (s Spec) bind(positional []any, named map[string]any) (Command, error) {
	if len(positional) > len(s.Params) {
		return Command{}, fmt.Errorf("%s takes %d arguments, got %d: %w", s.Name, len(s.Params), len(positional), ErrTooManyArguments)
	}
	for name := range named {
		i := slices.IndexFunc(s.Params, func(p Param) bool { return p.Name == name })
		if i == -1 {
			return Command{}, fmt.Errorf("%s: %q: %w", s.Name, name, ErrUnknownParameter)
		}
		if i < len(positional) {
			return Command{}, fmt.Errorf("%s: %q: %w", s.Name, name, ErrDuplicateArgument)
		}
	}

	params := make(map[string]any, len(s.Params))
	for i, p := range s.Params {
		if i < len(positional) {
			params[p.Name] = positional[i]
			continue
		}
		if v, ok := named[p.Name]; ok {
			params[p.Name] = v
			continue
		}
		if !p.HasDefault {
			return Command{}, fmt.Errorf("%s: %q: %w", s.Name, p.Name, ErrMissingArgument)
		}
		params[p.Name] = p.Default
	}

	cmd := Command{Name: s.Name, Ability: s.Ability}
	if len(params) > 0 {
		cmd.Parameters = params
	}
	return cmd, nil
}

// Family groups the commands of one ability.
type Family struct {
	Ability  string
	Commands []Spec
}

// NewFamily scopes every spec to ability.
func NewFamily(ability string, specs ...Spec) Family {
	f := Family{Ability: ability, Commands: make([]Spec, len(specs))}
	for i, s := range specs {
		s.Ability = ability
		f.Commands[i] = s
	}
	return f
}

// Command returns the spec with the given name.
func (f Family) Command(name string) (Spec, bool) {
	i := slices.IndexFunc(f.Commands, func(s Spec) bool { return s.Name == name })
	if i == -1 {
		return Spec{}, false
	}
	return f.Commands[i], true
}

func (f Family) must(name string, args ...any) Command {
	spec, ok := f.Command(name)
	if !ok {
		panic(fmt.Sprintf("gardenaCommands: %s has no command %q", f.Ability, name))
	}
	cmd, err := spec.Build(args...)
	if err != nil {
		panic(err)
	}
	return cmd
}

var registry = map[string]Family{}

func register(f Family) Family {
	registry[f.Ability] = f
	return f
}

// Families returns all registered command families sorted by ability.
func Families() []Family {
	abilities := maps.Keys(registry)
	slices.Sort(abilities)
	families := make([]Family, 0, len(abilities))
	for _, a := range abilities {
		families = append(families, registry[a])
	}
	return families
}

// Lookup finds the command spec registered for ability and name.
func Lookup(ability, name string) (Spec, error) {
	family, ok := registry[ability]
	if !ok {
		return Spec{}, fmt.Errorf("%s/%s: %w", ability, name, ErrUnknownCommand)
	}
	spec, ok := family.Command(name)
	if !ok {
		return Spec{}, fmt.Errorf("%s/%s: %w", ability, name, ErrUnknownCommand)
	}
	return spec, nil
}
