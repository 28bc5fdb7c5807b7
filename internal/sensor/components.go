package sensor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// linkerFlavor is the filler pattern for linkers and splitters. It avoids
// long repeats and keeps the GC fraction sane.
const linkerFlavor = "UUUCCC"

// complements maps each base to its Watson-Crick partner in the RNA
// alphabet. T complements like U so spacer-derived sequences stay sensible.
var complements = map[byte]byte{
	'A': 'U', 'U': 'A', 'G': 'C', 'C': 'G', 'T': 'A', 'N': 'N',
}

// reverseComplement returns the reverse complement of an RNA sequence.
func reverseComplement(seq string) string {
	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		rc[len(seq)-1-i] = complements[seq[i]]
	}
	return string(rc)
}

// repeatSeq returns length bases of the cycling filler pattern.
func repeatSeq(length int, pattern string) string {
	return strings.Repeat(pattern, 1+length/len(pattern))[:length]
}

// aptamerParts is an aptamer split into its 5' arm, the natural linker
// joining the arms, and its 3' arm, with the dot-bracket structure of each
// piece. The split point is where designs nest extra aptamers or longer
// splitters.
type aptamerParts struct {
	seq5, linker, seq3  string
	fold5, foldL, fold3 string
}

// aptamerRegistry holds the ligand-binding motifs the catalog can insert.
// It is populated once and read-only thereafter.
var aptamerRegistry = map[string]aptamerParts{
	"theo": {
		seq5:   "AUACCAGCC",
		linker: "GAAA",
		seq3:   "GGCCCUUGGCAG",
		fold5:  "(((((.(((",
		foldL:  "....",
		fold3:  ")))....)))))",
	},
	// No fold annotation for tet yet: the construct renders it unpaired.
	"tet": {
		seq5:   "AAAACAUACCAGAUUUCGAUCUGGAGA",
		linker: "GGUG",
		seq3:   "AAGAAUACGACCACCUA",
	},
}

// ligandAliases maps every accepted spelling to a registry key.
var ligandAliases = map[string]string{
	"theo": "theo", "th": "theo", "theophylline": "theo",
	"tet": "tet", "tc": "tet", "tetracycline": "tet",
}

// canonicalLigand resolves a ligand spelling, or fails for unknown ligands.
func canonicalLigand(ligand string) (string, error) {
	l, ok := ligandAliases[ligand]
	if !ok {
		return "", fmt.Errorf("%w: no aptamer for ligand %q", ErrInvalidArg, ligand)
	}
	return l, nil
}

// isLigand reports whether a token names a known ligand.
func isLigand(token string) bool {
	_, ok := ligandAliases[token]
	return ok
}

// Aptamer returns the named ligand's aptamer as a construct. piece selects
// "whole" for the full motif, "5" or "3" for one side of its split point
// (used by the split-construct designs), or "splitter" for the natural
// linker between the arms.
func Aptamer(ligand, piece string) (*Construct, error) {
	l, err := canonicalLigand(ligand)
	if err != nil {
		return nil, err
	}
	p := aptamerRegistry[l]

	c := NewConstruct(l)
	var d *Domain
	switch piece {
	case "whole":
		d = newDomain("aptamer", p.seq5+p.linker+p.seq3)
		d.expectedFold = p.fold5 + p.foldL + p.fold3
	case "5":
		d = newDomain("aptamer/5", p.seq5)
		d.expectedFold = p.fold5
	case "3":
		d = newDomain("aptamer/3", p.seq3)
		d.expectedFold = p.fold3
	case "splitter":
		d = newDomain("aptamer/splitter", p.linker)
		d.expectedFold = p.foldL
	default:
		return nil, fmt.Errorf(
			"%w: aptamer piece must be \"whole\", \"5\", \"3\", or \"splitter\", not %q",
			ErrInvalidArg, piece)
	}
	d.Style = "white"
	c.add(d)
	return c, nil
}

// spacerRegistry maps target gene names to guide sequences. The aavs spacer
// is kept in the DNA alphabet it was ordered in.
var spacerRegistry = map[string]string{
	"aavs":  "GGGGCCACTAGGGACAGGAT",
	"rfp":   "AACUUUCAGUUUAGCGGUCU",
	"vegfa": "GGGUGGGGGGAGUUUGCUCC",
}

// Spacer returns the guide domain targeting the named gene.
func Spacer(target string) (*Domain, error) {
	seq, ok := spacerRegistry[target]
	if !ok {
		return nil, fmt.Errorf("%w: no spacer for target %q", ErrInvalidArg, target)
	}
	return newDomain("spacer", seq), nil
}

// t7Promoters holds the promoter variants used to transcribe designs in
// vitro, keyed by the protocol they come from.
var t7Promoters = map[string]string{
	"igem":   "TAATACGACTCACTATA",
	"briner": "TATAGTAATAATACGACTCACTATAG",
}

// T7Promoter returns the T7 promoter from the named protocol.
func T7Promoter(source string) (*Construct, error) {
	seq, ok := t7Promoters[source]
	if !ok {
		return nil, fmt.Errorf("%w: no T7 promoter from source %q", ErrInvalidArg, source)
	}
	c := NewConstruct("t7")
	c.add(newDomain("t7", seq))
	return c, nil
}

// pieceName suffixes a domain name with its ordinal when a design carries
// more than one copy.
func pieceName(base string, i, n int) string {
	if n == 1 {
		return base
	}
	return fmt.Sprintf("%s/%d", base, i)
}

// aptamerInsert builds the insert shared by most designs: the aptamer, an
// optional filler linker on each side, an optional splitter replacing the
// aptamer's natural linker, and optionally further aptamers nested at the
// split point (one inside the next, for cooperative binding).
func aptamerInsert(ligand string, linker5, linker3, splitterLen int, flavor string, numAptamers int) (*Construct, error) {
	l, err := canonicalLigand(ligand)
	if err != nil {
		return nil, err
	}
	if linker5 < 0 || linker3 < 0 {
		return nil, fmt.Errorf("%w: linker length must be 0 or greater", ErrInvalidArg)
	}
	if splitterLen < 0 {
		return nil, fmt.Errorf("%w: splitter length must be 0 or greater", ErrInvalidArg)
	}
	if numAptamers < 1 {
		return nil, fmt.Errorf("%w: must have at least 1 aptamer", ErrInvalidArg)
	}
	p := aptamerRegistry[l]

	insert := NewConstruct("aptamer insert")
	if linker5 > 0 {
		insert.add(newDomain("linker/5", repeatSeq(linker5, flavor)))
	}
	for i := 1; i <= numAptamers; i++ {
		d := newDomain(pieceName("aptamer/5", i, numAptamers), p.seq5)
		d.expectedFold = p.fold5
		insert.add(d)
	}
	if splitterLen > 0 {
		insert.add(newDomain("splitter", repeatSeq(splitterLen, flavor)))
	} else {
		d := newDomain("splitter", p.linker)
		d.expectedFold = p.foldL
		insert.add(d)
	}
	for i := numAptamers; i >= 1; i-- {
		d := newDomain(pieceName("aptamer/3", i, numAptamers), p.seq3)
		d.expectedFold = p.fold3
		insert.add(d)
	}
	if linker3 > 0 {
		insert.add(newDomain("linker/3", repeatSeq(linker3, flavor)))
	}
	return insert, nil
}

// complementarySwitch is the untuned switch: the switch domain is the
// perfect reverse complement of the sequence it sequesters, the on domain a
// copy of that sequence inside the insert, and the off domain the host copy
// it competes with.
func complementarySwitch(targetSeq string) (sw, on, off *Domain) {
	sw = newDomain("switch", reverseComplement(targetSeq))
	on = newDomain("on", targetSeq)
	off = newDomain("off", targetSeq)
	return sw, on, off
}

// middleOut orders candidate offsets by distance from the middle of a
// sequence of the given length, nearest first, lower offset on ties. Tuning
// mutations go in the middle of a duplex, where they cost the most.
func middleOut(candidates []int, length int) []int {
	mid := length / 2
	sorted := append([]int(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i]-mid, sorted[j]-mid
		if di < 0 {
			di = -di
		}
		if dj < 0 {
			dj = -dj
		}
		if di != dj {
			return di < dj
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

// mutateBases rewrites the bases at the given offsets through sub.
func mutateBases(seq string, offsets []int, sub func(byte) byte) string {
	b := []byte(seq)
	for _, i := range offsets {
		b[i] = sub(b[i])
	}
	return string(b)
}

// wobbleSwitch weakens one strand of the switch duplex with G·U wobble
// pairs: A→G keeps pairing with U, C→U keeps pairing with G. favorCutting
// mutates the switch domain, tilting the balance toward the active state;
// otherwise the on domain is mutated.
func wobbleSwitch(targetSeq string, favorCutting bool, numMutations int) (sw, on, off *Domain, err error) {
	sw, on, off = complementarySwitch(targetSeq)
	victim := on
	if favorCutting {
		victim = sw
	}

	var candidates []int
	for i := 0; i < victim.Len(); i++ {
		if b := victim.seq[i]; b == 'A' || b == 'C' {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < numMutations {
		return nil, nil, nil, fmt.Errorf(
			"%w: only %d wobble positions in %q, need %d",
			ErrInvalidArg, len(candidates), victim.seq, numMutations)
	}
	wob := func(b byte) byte {
		if b == 'A' {
			return 'G'
		}
		return 'U'
	}
	picks := middleOut(candidates, victim.Len())[:numMutations]
	victim.seq = mutateBases(victim.seq, picks, wob)
	return sw, on, off, nil
}

// mismatchSwitch breaks one or more pairs of the switch duplex outright:
// A/U become C, G/C become A, none of which can pair with the original
// partner. The favorCutting flag picks the strand, as in wobbleSwitch.
func mismatchSwitch(targetSeq string, favorCutting bool, numMutations int) (sw, on, off *Domain, err error) {
	sw, on, off = complementarySwitch(targetSeq)
	victim := on
	if favorCutting {
		victim = sw
	}
	if numMutations > victim.Len() {
		return nil, nil, nil, fmt.Errorf(
			"%w: %q is too short for %d mismatches",
			ErrInvalidArg, victim.seq, numMutations)
	}
	mis := func(b byte) byte {
		if b == 'G' || b == 'C' {
			return 'A'
		}
		return 'C'
	}
	var all []int
	for i := 0; i < victim.Len(); i++ {
		all = append(all, i)
	}
	picks := middleOut(all, victim.Len())[:numMutations]
	victim.seq = mutateBases(victim.seq, picks, mis)
	return sw, on, off, nil
}

// bulgeSwitch bulges one strand of the switch duplex by inserting unpaired
// adenosines at its midpoint. The favorCutting flag picks the strand, as in
// wobbleSwitch.
func bulgeSwitch(targetSeq string, favorCutting bool, numBases int) (sw, on, off *Domain) {
	sw, on, off = complementarySwitch(targetSeq)
	victim := on
	if favorCutting {
		victim = sw
	}
	mid := victim.Len() / 2
	victim.seq = victim.seq[:mid] + strings.Repeat("A", numBases) + victim.seq[mid:]
	return sw, on, off
}

// tunableSwitch builds the switch/on/off domain trio for a sequestering
// insert, applying the named tuning strategy. The empty string means a
// perfectly complementary switch. Otherwise the code is two letters plus an
// optional count: the first letter picks the mutation (w: wobble, m:
// mismatch, b: bulge) and the second the state it favors (x: cutting, o:
// off).
func tunableSwitch(targetSeq, tuning string) (sw, on, off *Domain, err error) {
	if tuning == "" {
		sw, on, off = complementarySwitch(targetSeq)
		return sw, on, off, nil
	}
	if len(tuning) < 2 {
		return nil, nil, nil, fmt.Errorf("%w: unknown tuning strategy %q", ErrInvalidArg, tuning)
	}

	bias := tuning[1]
	if bias != 'x' && bias != 'o' {
		return nil, nil, nil, fmt.Errorf("%w: unknown tuning strategy %q", ErrInvalidArg, tuning)
	}
	favorCutting := bias == 'x'

	n := 1
	if rest := tuning[2:]; rest != "" {
		n, err = strconv.Atoi(rest)
		if err != nil || n < 1 {
			return nil, nil, nil, fmt.Errorf("%w: unknown tuning strategy %q", ErrInvalidArg, tuning)
		}
	}

	switch tuning[0] {
	case 'w':
		return wobbleSwitch(targetSeq, favorCutting, n)
	case 'm':
		return mismatchSwitch(targetSeq, favorCutting, n)
	case 'b':
		sw, on, off = bulgeSwitch(targetSeq, favorCutting, n)
		return sw, on, off, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: unknown tuning strategy %q", ErrInvalidArg, tuning)
	}
}

// serpentineInsert sequesters targetSeq in a non-productive hairpin capped
// by turnSeq. targetEnd says which end of the host copy the insert abuts:
// "5" puts the turn and switch before the aptamer, "3" after it.
func serpentineInsert(ligand, targetSeq, targetEnd, tuning, turnSeq string, numAptamers int) (*Construct, error) {
	sw, on, _, err := tunableSwitch(targetSeq, tuning)
	if err != nil {
		return nil, err
	}
	apt, err := aptamerInsert(ligand, 0, 0, 0, linkerFlavor, numAptamers)
	if err != nil {
		return nil, err
	}

	insert := NewConstruct("serpentine")
	turn := newDomain("turn", turnSeq)
	switch targetEnd {
	case "3":
		insert.add(on)
		insert.merge(apt)
		insert.add(sw)
		insert.add(turn)
	case "5":
		insert.add(turn)
		insert.add(sw)
		insert.merge(apt)
		insert.add(on)
	default:
		return nil, fmt.Errorf(
			"%w: target end must be \"5\" or \"3\", not %q", ErrInvalidArg, targetEnd)
	}
	return insert, nil
}

// circleInsert is the strand-displacement insert: the switch domain can pair
// either with the on domain inside the insert or with the host copy of
// targetSeq, and ligand binding favors the former. targetEnd says which end
// of the host copy the insert abuts.
func circleInsert(ligand, targetSeq, targetEnd, tuning string, numAptamers int) (*Construct, error) {
	sw, on, _, err := tunableSwitch(targetSeq, tuning)
	if err != nil {
		return nil, err
	}
	apt, err := aptamerInsert(ligand, 0, 0, 0, linkerFlavor, numAptamers)
	if err != nil {
		return nil, err
	}

	insert := NewConstruct("circle")
	switch targetEnd {
	case "3":
		insert.add(sw)
		insert.merge(apt)
		insert.add(on)
	case "5":
		insert.add(on)
		insert.merge(apt)
		insert.add(sw)
	default:
		return nil, fmt.Errorf(
			"%w: target end must be \"5\" or \"3\", not %q", ErrInvalidArg, targetEnd)
	}
	return insert, nil
}

// hammerheadArms holds the ribozyme pieces flanking the aptamer when it
// replaces loop II of the minimal hammerhead. The mode picks how many base
// pairs of stem II are rebuilt on each side of the aptamer.
var hammerheadArms = map[int]struct{ seq5, seq3 string }{
	1: {"GCUGUCACCGGA", "UCCGGUCUGAUGAGUCCGUGAGGACGAAACAGC"},
	2: {"GCUGUCACCGGAUG", "CAUCCGGUCUGAUGAGUCCGUGAGGACGAAACAGC"},
	3: {"GCUGUCACCGGAUGUG", "CACAUCCGGUCUGAUGAGUCCGUGAGGACGAAACAGC"},
}

// hammerheadInsert embeds the aptamer in a self-cleaving hammerhead
// ribozyme, so that ligand binding gates cleavage.
func hammerheadInsert(ligand string, mode, numAptamers int) (*Construct, error) {
	arms, ok := hammerheadArms[mode]
	if !ok {
		return nil, fmt.Errorf(
			"%w: hammerhead mode must be 1, 2, or 3, not %d", ErrInvalidArg, mode)
	}
	apt, err := aptamerInsert(ligand, 0, 0, 0, linkerFlavor, numAptamers)
	if err != nil {
		return nil, err
	}

	insert := NewConstruct("hammerhead")
	insert.add(newDomain("hammerhead/5", arms.seq5))
	insert.merge(apt)
	insert.add(newDomain("hammerhead/3", arms.seq3))
	return insert, nil
}

// randomInsert flanks the aptamer with runs of randomized bases, for
// screening libraries rather than single designs.
func randomInsert(ligand string, len5, len3 int) (*Construct, error) {
	apt, err := Aptamer(ligand, "whole")
	if err != nil {
		return nil, err
	}
	insert := NewConstruct("random")
	insert.add(newDomain("random/5", strings.Repeat("N", len5)))
	insert.merge(apt)
	insert.add(newDomain("random/3", strings.Repeat("N", len3)))
	return insert, nil
}
