package sensor

import (
	"fmt"
	"strconv"
)

// WtSgrna returns the wildtype sgRNA scaffold, optionally with a spacer
// targeting the named gene (pass "" for no spacer at all).
//
// The scaffold is composed of four domains: stem, nexus, hairpins, and tail.
// The stem domain encompasses the lower stem, the bulge, and the upper stem.
// Attachments are allowed pretty much anywhere, although it would be prudent
// to restrict this based on the structural biology of Cas9 before making
// random attachments.
func WtSgrna(target string) (*Construct, error) {
	sgrna := NewConstruct(makeName("wt"))

	if target != "" {
		spacer, err := Spacer(target)
		if err != nil {
			return nil, err
		}
		sgrna.add(spacer)
	}

	stem := newDomain("stem", "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU")
	nexus := newDomain("nexus", "AAGGCUAGUCCGU")
	hairpins := newDomain("hairpins", "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC")
	tail := newDomain("tail", "UUUUUU")

	stem.expectedFold = "((((((..((((....))))....))))))"
	hairpins.expectedFold = ".....((((....)))).((((((...))))))"

	stem.Style = "green"
	nexus.Style = "red"
	hairpins.Style = "blue"

	stem.AllowAttachmentsAnywhere()
	nexus.AllowAttachmentsAnywhere()
	hairpins.AllowAttachmentsAnywhere()

	sgrna.add(stem)
	sgrna.add(nexus)
	sgrna.add(hairpins)
	sgrna.add(tail)

	return sgrna, nil
}

// DeadSgrna returns the negative control scaffold.  It carries the two
// nexus mutations described by Briner et al. that keep the sgRNA from
// folding properly.
func DeadSgrna(target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("dead")

	nexus := sgrna.Domain("nexus")
	nexus.Mutable = true
	if err := nexus.Mutate(2, 'C'); err != nil {
		return nil, err
	}
	if err := nexus.Mutate(3, 'C'); err != nil {
		return nil, err
	}
	nexus.Mutable = false

	return sgrna, nil
}

// FoldUpperStem inserts the aptamer into the upper stem region of the
// sgRNA.  The upper stem is very tolerant to mutation; in the natural
// CRISPR/Cas system it is where the two strands of guide RNA (crRNA and
// tracrRNA) come together.
//
// n says how many of the 4 upper stem base pairs to preserve, linkerLen how
// many filler bases to put on either side of the aptamer, splitterLen how
// many filler bases to put between the two halves of the aptamer, and
// numAptamers how many aptamers to nest within each other.
func FoldUpperStem(n, linkerLen, splitterLen, numAptamers int, ligand, target string) (*Construct, error) {
	if n < 0 || n > 4 {
		return nil, fmt.Errorf(
			"%w: location for upper stem insertion must be between 0 and 4, not %d",
			ErrInvalidArg, n)
	}

	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("us", n, linkerLen, splitterLen, numAptamers)

	insert, err := aptamerInsert(ligand, linkerLen, linkerLen, splitterLen, linkerFlavor, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(8+n), "stem", At(20-n)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// FoldLowerStem inserts the aptamer into the lower stem region of the
// sgRNA.  n says how many of the 6 lower stem base pairs to preserve; in
// practice values below 4 or 5 will almost certainly interfere with normal
// Cas9 binding.
func FoldLowerStem(n, linkerLen, splitterLen int, ligand, target string) (*Construct, error) {
	if n < 0 || n > 6 {
		return nil, fmt.Errorf(
			"%w: location for lower stem insertion must be between 0 and 6, not %d",
			ErrInvalidArg, n)
	}

	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("ls", n, linkerLen, splitterLen)

	insert, err := aptamerInsert(ligand, linkerLen, linkerLen, splitterLen, linkerFlavor, 1)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(n), "stem", At(30-n)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// FoldNexus replaces the five irregular nexus residues with the aptamer and
// a variable length linker.  The linker filler is a poly-U pattern here
// because the nexus is naturally unstructured.
func FoldNexus(linkerLen int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("nx", linkerLen)

	insert, err := aptamerInsert(ligand, linkerLen, linkerLen, 0, "U", 1)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "nexus", At(4), "nexus", At(9)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// FoldNexus2 inserts the aptamer into the nexus region with more control
// than FoldNexus: n and m say how many nucleotides to keep on the 5' and 3'
// sides of the nexus, the filler goes inside the aptamer rather than around
// it, and more than one aptamer can be chained together.
func FoldNexus2(n, m, splitterLen, numAptamers int, ligand, target string) (*Construct, error) {
	minSplitterLen := len(aptamerRegistry["theo"].linker)

	if n < 0 || n > 4 {
		return nil, fmt.Errorf("%w: nxx: N must be between 0 and 4, not %d", ErrInvalidArg, n)
	}
	if m < 0 || m > 5 {
		return nil, fmt.Errorf("%w: nxx: M must be between 0 and 5, not %d", ErrInvalidArg, m)
	}
	if splitterLen > 0 && splitterLen <= minSplitterLen {
		return nil, fmt.Errorf(
			"%w: nxx: splitter length must be longer than %d (the natural linker length)",
			ErrInvalidArg, minSplitterLen)
	}
	if numAptamers < 1 {
		return nil, fmt.Errorf("%w: nxx: must have at least 1 aptamer", ErrInvalidArg)
	}

	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("nxx", n, m, splitterLen, numAptamers)

	insert, err := aptamerInsert(ligand, 0, 0, splitterLen, linkerFlavor, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "nexus", At(2+n), "nexus", At(11-m)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// FoldHairpin replaces one of the two 3' hairpins with the aptamer.  h
// picks the hairpin (1 or 2) and n says how many of its base pairs to
// preserve: the first hairpin has 4 and the second has 6.
func FoldHairpin(h, n, numAptamers int, ligand, target string) (*Construct, error) {
	if h != 1 && h != 2 {
		return nil, fmt.Errorf("%w: fh(H,N): H must be either 1 or 2", ErrInvalidArg)
	}
	maxN := 4
	if h == 2 {
		maxN = 6
	}
	if n < 0 || n > maxN {
		return nil, fmt.Errorf("%w: fh(H,N): N must be between 0 and %d", ErrInvalidArg, maxN)
	}

	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("fh", h, n)

	insert, err := aptamerInsert(ligand, 0, 0, 0, linkerFlavor, numAptamers)
	if err != nil {
		return nil, err
	}
	a, b := 5+n, 17-n
	if h == 2 {
		a, b = 18+n, 33-n
	}
	if err := sgrna.Attach(insert, "hairpins", At(a), "hairpins", At(b)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// ReplaceHairpins removes a portion of the 3' terminal hairpins and
// replaces it with the aptamer.  Counting starts at the beginning of the
// hairpins domain: n of 33 keeps the whole scaffold and simply appends the
// aptamer, smaller values truncate the 3' end, and larger values insert a
// linker between the scaffold and the aptamer.
func ReplaceHairpins(n int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("hp", n)

	hairpins := sgrna.Domain("hairpins")
	site := n
	if site > hairpins.Len() {
		site = hairpins.Len()
	}
	linker5 := n - hairpins.Len()
	if linker5 < 0 {
		linker5 = 0
	}

	insert, err := aptamerInsert(ligand, linker5, 0, 0, linkerFlavor, 1)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "hairpins", At(site), "hairpins", Ellipsis); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// InduceDimerization splits the guide RNA into its two naturally occurring
// halves and uses the aptamer to bring them together in the presence of the
// ligand.  The aptamer replaces some or all of the upper stem.  half picks
// which side of the split construct to return ("5" or "3") and n says how
// many of the 4 upper stem base pairs to preserve.
func InduceDimerization(half string, n int, ligand, target string) (*Construct, error) {
	if n < 0 || n > 4 {
		return nil, fmt.Errorf(
			"%w: location for upper stem insertion must be between 0 and 4, not %d",
			ErrInvalidArg, n)
	}

	design := NewConstruct(makeName("id", half, n))
	wt, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}

	switch half {
	case "5":
		if spacer := wt.Domain("spacer"); spacer != nil {
			design.add(spacer)
		}
		design.add(wt.Domain("stem"))
		apt, err := Aptamer(ligand, "5")
		if err != nil {
			return nil, err
		}
		if err := design.Attach(apt, "stem", At(8+n), "stem", Ellipsis); err != nil {
			return nil, err
		}
	case "3":
		design.merge(wt)
		apt, err := Aptamer(ligand, "3")
		if err != nil {
			return nil, err
		}
		if err := design.Attach(apt, "stem", Ellipsis, "stem", At(20-n)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf(
			"%w: half for induced dimerization must be either 5 (for the 5' half) or 3 (for the 3' half), not %q",
			ErrInvalidArg, half)
	}

	return design, nil
}

// wtStemSlice returns a slice of the wildtype stem domain, clipped to the
// domain boundaries.
func wtStemSlice(a, b int) string {
	const stem = "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU"
	if b > len(stem) {
		b = len(stem)
	}
	return stem[a:b]
}

// wtScaffoldSlice returns a slice of the spacerless wildtype scaffold
// sequence.
func wtScaffoldSlice(a, b int) string {
	const scaffold = "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" +
		"AAGGCUAGUCCGU" +
		"UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC" +
		"UUUUUU"
	return scaffold[a:b]
}

// SerpentineBulge sequesters the bulge in a non-productive hairpin when the
// ligand isn't present.  The bulge is an interesting target because it
// doesn't have to be there, but if it is there it must be unpaired and it
// must have its wildtype sequence.  The two adenosines naturally in the
// bulge become the tetraloop that caps the non-productive hairpin.
//
// n is the length of the non-productive hairpin: the first two base pairs
// come from the bulge and subsequent ones from the lower stem, so it can't
// be shorter than 2.
func SerpentineBulge(n int, tuning string, numAptamers int, ligand, target string) (*Construct, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: sb(N): N must be 2 or greater", ErrInvalidArg)
	}

	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("sb", n, tuning)

	insert, err := serpentineInsert(ligand, wtStemSlice(22, 22+n), "3", tuning, "GAAA", numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(8), "stem", At(22)); err != nil {
		return nil, err
	}

	if err := insert.Domain("on").Prepend("UC"); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// SerpentineLowerStem sequesters the nexus in base pairs with the lower
// stem in the absence of the ligand.  The serpentine is fixed at four base
// pairs because the lower stem must stay six base pairs long and two of
// them are needed for the tetraloop.
func SerpentineLowerStem(tuning string, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("sl", tuning)

	insert, err := serpentineInsert(ligand, "GGCU", "3", tuning, "GAAA", numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(0), "nexus", At(2)); err != nil {
		return nil, err
	}

	if err := insert.Domain("on").Prepend("UC"); err != nil {
		return nil, err
	}
	if err := insert.Domain("on").Append("GA"); err != nil {
		return nil, err
	}
	if err := insert.Domain("switch").Prepend("AAGU"); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// SerpentineLowerStemAroundNexus uses the lower stem to extend the nexus
// stem in the absence of the ligand.  The complementary region is fixed at
// six base pairs because the lower stem cannot be lengthened or shortened,
// and the extended stem has a bulge because of the short AA linker between
// the lower stem and the nexus.
func SerpentineLowerStemAroundNexus(tuning string, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("slx", tuning)

	insert, err := serpentineInsert(ligand, "GUUAUC", "3", tuning, "", numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", Ellipsis, "stem", Ellipsis); err != nil {
		return nil, err
	}

	if err := insert.Domain("on").Append("GA"); err != nil {
		return nil, err
	}
	if err := insert.Domain("switch").Prepend("AAGU"); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// SerpentineHairpin sequesters the 3' end of the nexus in base pairs with
// the 5' strand of the first hairpin in the absence of the ligand.  n is
// the length of the complementary region, which is also the length of the
// first hairpin; it is naturally 4 base pairs but solvent exposed, so it
// can be longer.
func SerpentineHairpin(n int, tuning string, numAptamers int, ligand, target string) (*Construct, error) {
	if n < 4 || n > 14 {
		return nil, fmt.Errorf("%w: sh(N): N must be between 4 and 14", ErrInvalidArg)
	}

	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("sh", n, tuning)

	insert, err := serpentineInsert(ligand, wtScaffoldSlice(44-n, 44), "5", tuning, "AUCA", numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "hairpins", At(1), "hairpins", At(17)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// CircleBulge extends the lower stem hairpin through the bulge when the
// ligand is absent.  Straightening the bulge (mutating both sides so they
// can base pair) completely eliminates Cas9 activity.  Note that this
// design unconditionally removes the 5' part of the bulge, which has the
// sequence GA; in wildtype sgRNA this mutation has no significant effect.
func CircleBulge(tuning string, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("cb", tuning)

	insert, err := circleInsert(ligand, "AAGU", "3", tuning, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(6), "stem", At(20)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// CircleBulgeCombo combines CircleBulge with an orthogonal design, to
// increase fold activation (possibly at the expense of affinity) by
// requiring two switches to turn on.  Only designs known to be functional
// on their own can be combined with the bulge circle: combo must be "slx"
// or "sh", and comboArg carries that design's argument (a tuning strategy
// for "slx", a length for "sh").
func CircleBulgeCombo(tuning, combo, comboArg string, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := CircleBulge(tuning, numAptamers, ligand, target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("cbc", tuning, combo, comboArg)

	switch combo {

	// Serpentine the lower stem around the nexus.  This isn't done by
	// making an attachment, because that attachment would overlap with the
	// bulge circle.  Instead, the on and switch domains are written
	// directly into the existing stem domain.
	case "slx":
		stem := sgrna.Domain("stem")
		slxTuning := comboArg
		if slxTuning == "" {
			slxTuning = "wo"
		}
		sw, on, _, err := tunableSwitch("GUUAUC", slxTuning)
		if err != nil {
			return nil, err
		}
		l := stem.Len()
		if err := stem.Replace(0, 6, on.Seq()); err != nil {
			return nil, err
		}
		if err := stem.Replace(l-6, l, sw.Seq()); err != nil {
			return nil, err
		}

	// Serpentine the first hairpin, exactly as SerpentineHairpin does.
	case "sh":
		if comboArg == "" {
			return nil, fmt.Errorf("%w: the \"sh\" combo strategy requires an argument", ErrInvalidArg)
		}
		n, err := strconv.Atoi(comboArg)
		if err != nil {
			return nil, fmt.Errorf("%w: the \"sh\" combo strategy requires an integer argument", ErrInvalidArg)
		}
		insert, err := serpentineInsert(ligand, wtScaffoldSlice(44-n, 44), "5", "", "AUCA", numAptamers)
		if err != nil {
			return nil, err
		}
		if err := sgrna.Attach(insert, "hairpins", At(1), "hairpins", At(17)); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: unsupported combo strategy %q", ErrInvalidArg, combo)
	}

	return sgrna, nil
}

// CircleLowerStem sequesters the 5' half of the nexus in base pairs with
// the 5' half of the lower stem in the absence of the ligand.  The
// displaced sequence must be six base pairs long because the lower stem
// cannot change length, and it is fixed to match the start of the nexus.
func CircleLowerStem(tuning string, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("cl", tuning)

	insert, err := circleInsert(ligand, "AAGGCU", "3", tuning, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(0), "stem", Ellipsis); err != nil {
		return nil, err
	}

	if err := insert.Domain("switch").Append("GA"); err != nil {
		return nil, err
	}
	if err := insert.Domain("on").Prepend("AAGU"); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// CircleHairpin moves the nexus closer to the hairpins in the absence of
// the ligand, by letting the 5' half of the first hairpin pair either with
// its own 3' half (active) or with the region between the nexus and the
// hairpin (inactive).  n is the length of the complementary region.
func CircleHairpin(n int, tuning string, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("ch", n, tuning)

	insert, err := circleInsert(ligand, wtScaffoldSlice(48-n, 48), "5", tuning, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "hairpins", At(5), "hairpins", At(17)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// HammerheadUpperStem replaces the upper stem with a ligand-gated
// hammerhead ribozyme.
func HammerheadUpperStem(mode, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("hu", mode)

	insert, err := hammerheadInsert(ligand, mode, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(8), "stem", At(20)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// HammerheadNexus replaces the irregular nexus residues with a ligand-gated
// hammerhead ribozyme.
func HammerheadNexus(mode, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("hx", mode)

	insert, err := hammerheadInsert(ligand, mode, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "nexus", At(2), "nexus", At(11)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// HammerheadHairpin replaces the first hairpin with a ligand-gated
// hammerhead ribozyme.
func HammerheadHairpin(mode, numAptamers int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("hh", mode)

	insert, err := hammerheadInsert(ligand, mode, numAptamers)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "hairpins", At(5), "hairpins", At(17)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// RandomBulge replaces the bulge and upper stem with randomized bases
// flanking the aptamer, for library screening.  len5 and len3 are the
// lengths of the randomized runs on each side.
func RandomBulge(len5, len3 int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("rb", len5, len3)

	insert, err := randomInsert(ligand, len5, len3)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "stem", At(6), "stem", At(24)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// RandomNexus replaces the irregular nexus residues with randomized bases
// flanking the aptamer, for library screening.
func RandomNexus(len5, len3 int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("rx", len5, len3)

	insert, err := randomInsert(ligand, len5, len3)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "nexus", At(2), "nexus", At(11)); err != nil {
		return nil, err
	}
	return sgrna, nil
}

// RandomHairpin replaces the first hairpin with randomized bases flanking
// the aptamer, for library screening.
func RandomHairpin(len5, len3 int, ligand, target string) (*Construct, error) {
	sgrna, err := WtSgrna(target)
	if err != nil {
		return nil, err
	}
	sgrna.Name = makeName("rh", len5, len3)

	insert, err := randomInsert(ligand, len5, len3)
	if err != nil {
		return nil, err
	}
	if err := sgrna.Attach(insert, "hairpins", At(5), "hairpins", At(17)); err != nil {
		return nil, err
	}
	return sgrna, nil
}
