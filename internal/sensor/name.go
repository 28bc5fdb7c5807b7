package sensor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// A param is one argument a design accepts in its name, in order.  Optional
// params carry the value used when the name leaves them out.
type param struct {
	name       string
	isInt      bool
	hasDefault bool
	intDefault int
	strDefault string
}

func reqInt(name string) param { return param{name: name, isInt: true} }
func reqStr(name string) param { return param{name: name} }

func optInt(name string, def int) param {
	return param{name: name, isInt: true, hasDefault: true, intDefault: def}
}

func optStr(name string, def string) param {
	return param{name: name, hasDefault: true, strDefault: def}
}

// defaulted reports whether v is the param's default value.
func (p param) defaulted(v any) bool {
	if !p.hasDefault {
		return false
	}
	if p.isInt {
		i, ok := v.(int)
		return ok && i == p.intDefault
	}
	s, ok := v.(string)
	return ok && s == p.strDefault
}

// A design is one named strategy in the catalog, with the schema needed to
// parse its arguments out of a name and to print its canonical name back.
type design struct {
	abbrev  string
	aliases []string
	summary string
	params  []param

	// spacerByDefault says whether the design gets a spacer when no target
	// is given.  The wildtype and dead scaffolds ship bare.
	spacerByDefault bool

	build func(args []any, ligand, target string) (*Construct, error)
}

var catalog = []*design{
	{
		abbrev:  "wt",
		summary: "wildtype sgRNA scaffold",
		build: func(args []any, ligand, target string) (*Construct, error) {
			return WtSgrna(target)
		},
	},
	{
		abbrev:  "dead",
		summary: "negative control with a misfolded nexus",
		build: func(args []any, ligand, target string) (*Construct, error) {
			return DeadSgrna(target)
		},
	},
	{
		abbrev:          "us",
		aliases:         []string{"fu"},
		summary:         "fold the aptamer into the upper stem",
		params:          []param{reqInt("N"), optInt("linker", 0), optInt("splitter", 0), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return FoldUpperStem(args[0].(int), args[1].(int), args[2].(int), args[3].(int), ligand, target)
		},
	},
	{
		abbrev:          "ls",
		aliases:         []string{"fl"},
		summary:         "fold the aptamer into the lower stem",
		params:          []param{reqInt("N"), optInt("linker", 0), optInt("splitter", 0)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return FoldLowerStem(args[0].(int), args[1].(int), args[2].(int), ligand, target)
		},
	},
	{
		abbrev:          "nx",
		aliases:         []string{"fx"},
		summary:         "fold the aptamer into the nexus",
		params:          []param{optInt("linker", 0)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return FoldNexus(args[0].(int), ligand, target)
		},
	},
	{
		abbrev:          "nxx",
		aliases:         []string{"fxx"},
		summary:         "fold the aptamer into the nexus, keeping N and M flanking bases",
		params:          []param{reqInt("N"), reqInt("M"), optInt("splitter", 0), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return FoldNexus2(args[0].(int), args[1].(int), args[2].(int), args[3].(int), ligand, target)
		},
	},
	{
		abbrev:          "fh",
		summary:         "replace one of the hairpins with the aptamer",
		params:          []param{reqInt("H"), reqInt("N"), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return FoldHairpin(args[0].(int), args[1].(int), args[2].(int), ligand, target)
		},
	},
	{
		abbrev:          "hp",
		summary:         "replace the 3' hairpins with the aptamer",
		params:          []param{reqInt("N")},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return ReplaceHairpins(args[0].(int), ligand, target)
		},
	},
	{
		abbrev:          "id",
		summary:         "split the sgRNA and let the ligand dimerize it",
		params:          []param{reqStr("half"), reqInt("N")},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return InduceDimerization(args[0].(string), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "sb",
		summary:         "serpentine the bulge",
		params:          []param{reqInt("N"), optStr("tuning", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return SerpentineBulge(args[0].(int), args[1].(string), args[2].(int), ligand, target)
		},
	},
	{
		abbrev:          "sl",
		summary:         "serpentine the lower stem",
		params:          []param{optStr("tuning", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return SerpentineLowerStem(args[0].(string), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "slx",
		summary:         "serpentine the lower stem around the nexus",
		params:          []param{optStr("tuning", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return SerpentineLowerStemAroundNexus(args[0].(string), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "sh",
		summary:         "serpentine the first hairpin",
		params:          []param{reqInt("N"), optStr("tuning", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return SerpentineHairpin(args[0].(int), args[1].(string), args[2].(int), ligand, target)
		},
	},
	{
		abbrev:          "cb",
		summary:         "circle the bulge",
		params:          []param{optStr("tuning", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return CircleBulge(args[0].(string), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "cbc",
		summary:         "circle the bulge, combined with an orthogonal switch",
		params:          []param{reqStr("tuning"), reqStr("combo"), optStr("arg", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return CircleBulgeCombo(args[0].(string), args[1].(string), args[2].(string), args[3].(int), ligand, target)
		},
	},
	{
		abbrev:          "cl",
		summary:         "circle the lower stem",
		params:          []param{optStr("tuning", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return CircleLowerStem(args[0].(string), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "ch",
		summary:         "circle the first hairpin",
		params:          []param{reqInt("N"), optStr("tuning", ""), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return CircleHairpin(args[0].(int), args[1].(string), args[2].(int), ligand, target)
		},
	},
	{
		abbrev:          "hu",
		summary:         "gate the upper stem with a hammerhead ribozyme",
		params:          []param{reqInt("mode"), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return HammerheadUpperStem(args[0].(int), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "hx",
		summary:         "gate the nexus with a hammerhead ribozyme",
		params:          []param{reqInt("mode"), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return HammerheadNexus(args[0].(int), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "hh",
		summary:         "gate the first hairpin with a hammerhead ribozyme",
		params:          []param{reqInt("mode"), optInt("aptamers", 1)},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return HammerheadHairpin(args[0].(int), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "rb",
		summary:         "randomize the bulge around the aptamer",
		params:          []param{reqInt("len5"), reqInt("len3")},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return RandomBulge(args[0].(int), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "rx",
		summary:         "randomize the nexus around the aptamer",
		params:          []param{reqInt("len5"), reqInt("len3")},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return RandomNexus(args[0].(int), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:          "rh",
		summary:         "randomize the first hairpin around the aptamer",
		params:          []param{reqInt("len5"), reqInt("len3")},
		spacerByDefault: true,
		build: func(args []any, ligand, target string) (*Construct, error) {
			return RandomHairpin(args[0].(int), args[1].(int), ligand, target)
		},
	},
	{
		abbrev:  "t7",
		summary: "T7 promoter, for in vitro transcription",
		params:  []param{optStr("source", "briner")},
		build: func(args []any, ligand, target string) (*Construct, error) {
			return T7Promoter(args[0].(string))
		},
	},
	{
		abbrev:  "theo",
		aliases: []string{"th", "theophylline"},
		summary: "the theophylline aptamer by itself",
		build: func(args []any, ligand, target string) (*Construct, error) {
			return Aptamer("theo", "whole")
		},
	},
	{
		abbrev:  "tet",
		aliases: []string{"tc", "tetracycline"},
		summary: "the tetracycline aptamer by itself",
		build: func(args []any, ligand, target string) (*Construct, error) {
			return Aptamer("tet", "whole")
		},
	},
}

var designsByName = map[string]*design{}

func init() {
	for _, d := range catalog {
		designsByName[d.abbrev] = d
		for _, a := range d.aliases {
			designsByName[a] = d
		}
	}
}

// makeName assembles the canonical name for a design: the abbreviation,
// followed by its arguments in parentheses.  Trailing arguments still at
// their default values are left out, so equivalent constructs always get
// the same name.
func makeName(abbrev string, args ...any) string {
	if d, ok := designsByName[abbrev]; ok {
		for len(args) > 0 {
			i := len(args) - 1
			if i >= len(d.params) || !d.params[i].defaulted(args[i]) {
				break
			}
			args = args[:i]
		}
	}
	if len(args) == 0 {
		return abbrev
	}
	words := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case int:
			words[i] = strconv.Itoa(v)
		case string:
			words[i] = v
		default:
			words[i] = fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("%s(%s)", abbrev, strings.Join(words, ","))
}

// isDelimiter reports whether a rune separates tokens in a design name.
// Several spellings are accepted so names can live in filenames, shell
// commands, and spreadsheets without quoting.
func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', ',', '/', '-', '_', ' ', '\t':
		return true
	}
	return false
}

// coerceArgs checks the tokens parsed out of a name against a design's
// schema and fills in defaults for the arguments the name leaves out.
func coerceArgs(d *design, tokens []string) ([]any, error) {
	if len(tokens) > len(d.params) {
		return nil, fmt.Errorf(
			"%w: %s takes at most %d arguments, got %d",
			ErrInvalidArg, d.abbrev, len(d.params), len(tokens))
	}
	args := make([]any, len(d.params))
	for i, p := range d.params {
		if i < len(tokens) {
			if p.isInt {
				n, err := strconv.Atoi(tokens[i])
				if err != nil {
					return nil, fmt.Errorf(
						"%w: %s: argument %s must be an integer, not %q",
						ErrInvalidArg, d.abbrev, p.name, tokens[i])
				}
				args[i] = n
			} else {
				args[i] = tokens[i]
			}
			continue
		}
		if !p.hasDefault {
			return nil, fmt.Errorf(
				"%w: %s: missing required argument %s", ErrInvalidArg, d.abbrev, p.name)
		}
		if p.isInt {
			args[i] = p.intDefault
		} else {
			args[i] = p.strDefault
		}
	}
	return args, nil
}

// Options override the defaults a design would otherwise use.
type Options struct {
	// Ligand picks the aptamer.  A ligand prefix in the name itself (as in
	// "tet/cb") takes precedence.  Empty means theophylline.
	Ligand string

	// Target picks the spacer for designs that carry one.  Empty means the
	// design's default (aavs for most designs, none for the bare scaffolds).
	Target string

	// Spacerless drops the spacer entirely.
	Spacerless bool
}

// FromName builds the construct a name describes, using default options.
func FromName(name string) (*Construct, error) {
	return Build(name, Options{})
}

// Build parses a design name and constructs it.  Names are an abbreviation
// followed by arguments, with parentheses, commas, slashes, dashes,
// underscores, and spaces all accepted as separators, and an optional
// ligand prefix ("tet/cb").
func Build(name string, opts Options) (*Construct, error) {
	tokens := strings.FieldsFunc(name, isDelimiter)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: can't parse an empty name", ErrInvalidArg)
	}

	ligand := opts.Ligand
	if ligand == "" {
		ligand = "theo"
	}
	if len(tokens) > 1 && isLigand(tokens[0]) {
		ligand = tokens[0]
		tokens = tokens[1:]
	}

	d, ok := designsByName[tokens[0]]
	if !ok {
		return nil, fmt.Errorf("%w: no design named %q", ErrInvalidArg, tokens[0])
	}

	args, err := coerceArgs(d, tokens[1:])
	if err != nil {
		return nil, err
	}

	target := opts.Target
	if target == "" && d.spacerByDefault {
		target = "aavs"
	}
	if opts.Spacerless {
		target = ""
	}

	return d.build(args, ligand, target)
}

// DesignInfo describes one catalog entry, for listings.
type DesignInfo struct {
	Name    string
	Aliases []string
	Params  []string
	Summary string
}

// Designs returns the catalog in alphabetical order.
func Designs() []DesignInfo {
	infos := make([]DesignInfo, 0, len(catalog))
	for _, d := range catalog {
		info := DesignInfo{
			Name:    d.abbrev,
			Aliases: append([]string(nil), d.aliases...),
			Summary: d.summary,
		}
		for _, p := range d.params {
			info.Params = append(info.Params, p.name)
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
