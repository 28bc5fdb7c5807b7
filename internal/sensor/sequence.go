// Package sensor assembles ligand-sensitive sgRNA designs from named,
// reusable sequence domains, and round-trips every design through a compact
// textual name grammar (see FromName).
package sensor

import (
	"fmt"
	"strings"
)

// alphabet is the set of bases a domain may carry. T appears only in spacer
// and promoter sequences, which are kept in the DNA alphabet they were
// ordered in; N marks randomized positions in library designs.
const alphabet = "AUGCTN"

func checkAlphabet(seq string) error {
	for i := 0; i < len(seq); i++ {
		if !strings.ContainsRune(alphabet, rune(seq[i])) {
			return fmt.Errorf("%w: base %q at position %d", ErrInvalidArg, seq[i], i)
		}
	}
	return nil
}

// sitePolicy controls where inserts may be attached within a domain.
type sitePolicy int

const (
	// noSites rejects attachments entirely (the default).
	noSites sitePolicy = iota

	// anySite accepts a cut at any offset within the domain.
	anySite

	// listedSites accepts cuts only at explicitly listed offsets.
	listedSites
)

// Domain is a named, contiguous run of bases within a construct, along with
// its display style, expected secondary structure, and mutation policy.
type Domain struct {
	name string
	seq  string

	// Style is a display hint (a color tag) used when printing constructs.
	Style string

	// Mutable gates point mutations made via Mutate. Structural edits
	// (Replace, Prepend, Append) are always allowed: they're reserved for
	// the design strategies that own the domain, not for tuning variants.
	Mutable bool

	expectedFold string
	policy       sitePolicy
	sites        []int
}

// NewDomain returns a domain with the given name and sequence. The sequence
// must use the AUGC alphabet, plus N for randomized positions and T for
// sequences kept in their DNA form.
func NewDomain(name, seq string) (*Domain, error) {
	if err := checkAlphabet(seq); err != nil {
		return nil, fmt.Errorf("domain %s: %w", name, err)
	}
	return &Domain{name: name, seq: seq}, nil
}

// newDomain is for the catalog's own literals, which are known to be clean.
func newDomain(name, seq string) *Domain {
	return &Domain{name: name, seq: seq}
}

// Name returns the domain's name. Names are fixed at creation; constructs
// key their lookups on them.
func (d *Domain) Name() string { return d.name }

// Seq returns the domain's current sequence.
func (d *Domain) Seq() string { return d.seq }

// Len returns the domain's current length in bases.
func (d *Domain) Len() int { return len(d.seq) }

// ExpectedFold returns the domain's dot-bracket annotation, or "" if none
// has been assigned.
func (d *Domain) ExpectedFold() string { return d.expectedFold }

// SetExpectedFold assigns a dot-bracket annotation. The annotation must be
// empty or exactly as long as the sequence.
func (d *Domain) SetExpectedFold(fold string) error {
	if fold != "" && len(fold) != len(d.seq) {
		return fmt.Errorf(
			"%w: fold for domain %s is %d characters, sequence is %d",
			ErrInvalidArg, d.name, len(fold), len(d.seq))
	}
	d.expectedFold = fold
	return nil
}

// AllowAttachmentsAnywhere opens every offset of the domain to attachments.
func (d *Domain) AllowAttachmentsAnywhere() {
	d.policy = anySite
	d.sites = nil
}

// AllowAttachmentsAt opens only the given offsets to attachments.
func (d *Domain) AllowAttachmentsAt(sites ...int) {
	d.policy = listedSites
	d.sites = append([]int(nil), sites...)
}

// canCutAt reports whether the domain's attachment policy accepts a cut at
// the given offset.
func (d *Domain) canCutAt(i int) bool {
	switch d.policy {
	case anySite:
		return true
	case listedSites:
		for _, s := range d.sites {
			if s == i {
				return true
			}
		}
	}
	return false
}

// Copy returns an independent copy of the domain.
func (d *Domain) Copy() *Domain {
	dup := *d
	dup.sites = append([]int(nil), d.sites...)
	return &dup
}

// Mutate replaces the base at the given position. The domain must be
// Mutable; designs that need a point mutation toggle the flag around the
// call so stray edits still fail loudly.
func (d *Domain) Mutate(position int, base byte) error {
	if !d.Mutable {
		return fmt.Errorf("%w: can't mutate domain %s", ErrImmutable, d.name)
	}
	if position < 0 || position >= len(d.seq) {
		return fmt.Errorf(
			"%w: position %d in domain %s (length %d)",
			ErrBounds, position, d.name, len(d.seq))
	}
	if err := checkAlphabet(string(base)); err != nil {
		return err
	}
	d.seq = d.seq[:position] + string(base) + d.seq[position+1:]
	return nil
}

// Replace splices seq into the domain over [start, end), growing or
// shrinking it as needed. Any fold annotation is dropped, since it can't be
// meaningfully spliced.
func (d *Domain) Replace(start, end int, seq string) error {
	if start < 0 || end < start || end > len(d.seq) {
		return fmt.Errorf(
			"%w: [%d, %d) in domain %s (length %d)",
			ErrBounds, start, end, d.name, len(d.seq))
	}
	if err := checkAlphabet(seq); err != nil {
		return err
	}
	d.seq = d.seq[:start] + seq + d.seq[end:]
	d.expectedFold = ""
	return nil
}

// Prepend grafts a fragment onto the domain's 5' end.
func (d *Domain) Prepend(fragment string) error {
	return d.Replace(0, 0, fragment)
}

// Append grafts a fragment onto the domain's 3' end.
func (d *Domain) Append(fragment string) error {
	return d.Replace(len(d.seq), len(d.seq), fragment)
}

// Position locates one side of a cut within a named domain: either a fixed
// offset, or Ellipsis. Ellipsis resolves when the attachment is made, to the
// start of the domain on the 5' side of the cut and to its end on the 3'
// side. It exists because several strategies cut relative to a domain whose
// length depends on earlier parameters, where a fixed offset would be wrong.
type Position struct {
	index    int
	ellipsis bool
}

// At returns a fixed position within a domain.
func At(index int) Position { return Position{index: index} }

// Ellipsis is the "rest of the domain" position.
var Ellipsis = Position{ellipsis: true}

// cut is a resolved position: a domain name and a concrete offset.
type cut struct {
	domain string
	index  int
}

// attachment carves the host between two cuts and splices an insert into
// the gap. The host domains stay whole underneath: rendering skips the
// carved stretch, so index arithmetic against the original domains stays
// valid for the strategies that need it.
type attachment struct {
	insert *Construct
	start  cut
	end    cut
}

// Construct is an ordered run of domains making up one designed RNA, 5'→3'.
type Construct struct {
	// Name is the canonical design name, assembled by the catalog.
	Name string

	domains     []*Domain
	attachments []attachment
}

// NewConstruct returns an empty construct with the given name.
func NewConstruct(name string) *Construct {
	return &Construct{Name: name}
}

// add appends a domain the caller knows to be uniquely named.
func (c *Construct) add(d *Domain) {
	c.domains = append(c.domains, d)
}

// merge moves another construct's domains and attachments onto the 3' end.
func (c *Construct) merge(other *Construct) {
	c.domains = append(c.domains, other.domains...)
	c.attachments = append(c.attachments, other.attachments...)
}

// hasDomain reports whether name is one of the construct's own top-level
// domains (attached inserts keep their own namespaces).
func (c *Construct) hasDomain(name string) bool {
	for _, d := range c.domains {
		if d.name == name {
			return true
		}
	}
	return false
}

// domainIndex returns the position of a top-level domain.
func (c *Construct) domainIndex(name string) (int, bool) {
	for i, d := range c.domains {
		if d.name == name {
			return i, true
		}
	}
	return 0, false
}

// AppendDomain adds a domain to the construct's 3' end, taking ownership of
// it. The name must not collide with an existing domain.
func (c *Construct) AppendDomain(d *Domain) error {
	if d == nil {
		return fmt.Errorf("%w: nil domain", ErrInvalidArg)
	}
	if c.hasDomain(d.name) {
		return fmt.Errorf("%w: construct already has a domain named %s", ErrInvalidArg, d.name)
	}
	c.add(d)
	return nil
}

// AppendConstruct moves another construct's domains onto the 3' end of this
// one. The argument is consumed and must not be used afterwards.
func (c *Construct) AppendConstruct(other *Construct) error {
	if other == nil {
		return fmt.Errorf("%w: nil construct", ErrInvalidArg)
	}
	for _, d := range other.domains {
		if c.hasDomain(d.name) {
			return fmt.Errorf("%w: construct already has a domain named %s", ErrInvalidArg, d.name)
		}
	}
	c.merge(other)
	return nil
}

// Domain returns the named domain, searching the construct's own domains
// first and then any attached inserts, in attachment order. Returns nil if
// no domain has the name.
func (c *Construct) Domain(name string) *Domain {
	for _, d := range c.domains {
		if d.name == name {
			return d
		}
	}
	for i := range c.attachments {
		if d := c.attachments[i].insert.Domain(name); d != nil {
			return d
		}
	}
	return nil
}

// Attach carves the host from (domainA, posA) to (domainB, posB), where
// domainB is the same domain or a later one, and splices the insert into the
// gap. The 5'
// material up to posA and the 3' material from posB onward are kept; the
// stretch between the cuts is dropped from the rendered sequence. The insert
// is consumed and must not be used afterwards.
func (c *Construct) Attach(insert *Construct, domainA string, posA Position, domainB string, posB Position) error {
	if insert == nil {
		return fmt.Errorf("%w: nil insert", ErrInvalidArg)
	}
	ia, ok := c.domainIndex(domainA)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDomain, domainA)
	}
	ib, ok := c.domainIndex(domainB)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDomain, domainB)
	}
	if ib < ia {
		return fmt.Errorf(
			"%w: domain %s ends before domain %s begins",
			ErrInvalidArg, domainB, domainA)
	}

	da, db := c.domains[ia], c.domains[ib]
	a := posA.index
	if posA.ellipsis {
		a = 0
	}
	b := posB.index
	if posB.ellipsis {
		b = db.Len()
	}

	if a < 0 || a > da.Len() {
		return fmt.Errorf(
			"%w: position %d exceeds domain %s (length %d)",
			ErrInvalidArg, a, domainA, da.Len())
	}
	if b < 0 || b > db.Len() {
		return fmt.Errorf(
			"%w: position %d exceeds domain %s (length %d)",
			ErrInvalidArg, b, domainB, db.Len())
	}
	if ia == ib && b < a {
		return fmt.Errorf(
			"%w: cut [%d, %d) in domain %s is reversed",
			ErrInvalidArg, a, b, domainA)
	}
	if !da.canCutAt(a) {
		return fmt.Errorf(
			"%w: domain %s does not allow attachments at position %d",
			ErrInvalidArg, domainA, a)
	}
	if !db.canCutAt(b) {
		return fmt.Errorf(
			"%w: domain %s does not allow attachments at position %d",
			ErrInvalidArg, domainB, b)
	}
	for _, att := range c.attachments {
		if att.start.domain == domainA {
			return fmt.Errorf(
				"%w: domain %s already has an attachment",
				ErrInvalidArg, domainA)
		}
	}
	for _, d := range insert.domains {
		if c.hasDomain(d.name) {
			return fmt.Errorf(
				"%w: construct already has a domain named %s",
				ErrInvalidArg, d.name)
		}
	}

	c.attachments = append(c.attachments, attachment{
		insert: insert,
		start:  cut{domain: domainA, index: a},
		end:    cut{domain: domainB, index: b},
	})
	return nil
}

// Replace splices seq over [start, end) of the named domain, without adding
// any new domains.
func (c *Construct) Replace(domain string, start, end int, seq string) error {
	d := c.Domain(domain)
	if d == nil {
		return fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	return d.Replace(start, end, seq)
}

// attachmentStartingAt returns the attachment whose 5' cut is in the named
// domain, if any.
func (c *Construct) attachmentStartingAt(name string) *attachment {
	for i := range c.attachments {
		if c.attachments[i].start.domain == name {
			return &c.attachments[i]
		}
	}
	return nil
}

// render walks the domains 5'→3', carving out attached stretches and
// splicing in their inserts. The field accessor lets the same walk produce
// the sequence and the fold annotation.
func (c *Construct) render(field func(*Domain) string) string {
	var b strings.Builder
	for i := 0; i < len(c.domains); i++ {
		d := c.domains[i]
		att := c.attachmentStartingAt(d.name)
		if att == nil {
			b.WriteString(field(d))
			continue
		}
		s := field(d)
		b.WriteString(s[:min(att.start.index, len(s))])
		b.WriteString(att.insert.render(field))
		for c.domains[i].name != att.end.domain {
			i++
		}
		e := field(c.domains[i])
		b.WriteString(e[min(att.end.index, len(e)):])
	}
	return b.String()
}

// Seq returns the construct's rendered sequence: every domain in order, with
// attachment carves replaced by their inserts. Never stale: it re-renders
// from the current domain contents on every call.
func (c *Construct) Seq() string {
	return c.render(func(d *Domain) string { return d.seq })
}

// ExpectedFold returns the dot-bracket annotation aligned with Seq. Domains
// without an annotation render as dots.
func (c *Construct) ExpectedFold() string {
	return c.render(func(d *Domain) string {
		if d.expectedFold == "" {
			return strings.Repeat(".", d.Len())
		}
		return d.expectedFold
	})
}

// Len returns the rendered sequence length.
func (c *Construct) Len() int { return len(c.Seq()) }

// Equal reports whether two constructs render the same sequence. Names,
// styles, and folds don't participate.
func (c *Construct) Equal(other *Construct) bool {
	return other != nil && c.Seq() == other.Seq()
}

// EqualSeq reports whether the construct renders exactly the given sequence.
func (c *Construct) EqualSeq(seq string) bool { return c.Seq() == seq }
