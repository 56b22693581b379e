package play

import "strings"

// Kind is the primary classification of a play type label. It names the play in status
// lines; overlay decisions read the Traits predicates since one label can match several
// keywords.
type Kind int

const (
	KindOther Kind = iota
	KindKickoff
	KindPunt
	KindPass
	KindRun
	KindFieldGoal
	KindTouchdown
	KindExtraPoint
)

func (k Kind) String() string {
	switch k {
	case KindKickoff:
		return "kickoff"
	case KindPunt:
		return "punt"
	case KindPass:
		return "pass"
	case KindRun:
		return "run"
	case KindFieldGoal:
		return "field goal"
	case KindTouchdown:
		return "touchdown"
	case KindExtraPoint:
		return "extra point"
	case KindOther:
		fallthrough
	default:
		return "other"
	}
}

// Traits is the set of keywords a play type label matched. A single label can carry several,
// e.g. "pass_touchdown".
type Traits uint16

const (
	TraitKick Traits = 1 << iota
	TraitPunt
	TraitPass
	TraitRun
	TraitFieldGoal
	TraitTouchdown
	TraitExtraPoint
	// TraitTouchdownLabel is the stricter "touchdown" or "td" match.
	TraitTouchdownLabel
	// TraitTouch is the bare "touch" match, without the exact "td" label.
	TraitTouch
)

func (t Traits) Has(trait Traits) bool {
	return t&trait != 0
}

// KickOrPunt reports a kickoff or punt, after which possession changes on the return.
func (t Traits) KickOrPunt() bool {
	return t.Has(TraitKick | TraitPunt)
}

func (t Traits) Pass() bool {
	return t.Has(TraitPass)
}

func (t Traits) Run() bool {
	return t.Has(TraitRun)
}

func (t Traits) FieldGoal() bool {
	return t.Has(TraitFieldGoal)
}

func (t Traits) Touchdown() bool {
	return t.Has(TraitTouchdown)
}

func (t Traits) ExtraPoint() bool {
	return t.Has(TraitExtraPoint)
}

// TouchdownLabel reports a label spelling out "touchdown" or an exact "td".
func (t Traits) TouchdownLabel() bool {
	return t.Has(TraitTouchdownLabel)
}

// LeadsToExtraPoint reports a previous play after which an extra point keeps the touchdown
// spot. Only labels containing "touch" qualify; a bare "td" does not.
func (t Traits) LeadsToExtraPoint() bool {
	return t.Has(TraitTouch)
}

// Scoring reports a touchdown, field goal or extra point.
func (t Traits) Scoring() bool {
	return t.Has(TraitTouchdown | TraitFieldGoal | TraitExtraPoint)
}

// Classify matches a free text play type label, case-insensitively, against the known
// keywords.
func Classify(playType string) (Kind, Traits) {
	label := strings.ToLower(strings.TrimSpace(playType))

	var traits Traits
	if strings.Contains(label, "kick") {
		traits |= TraitKick
	}
	if strings.Contains(label, "punt") {
		traits |= TraitPunt
	}
	if strings.Contains(label, "pass") {
		traits |= TraitPass
	}
	if strings.Contains(label, "run") || strings.Contains(label, "rush") {
		traits |= TraitRun
	}
	if (strings.Contains(label, "field") && strings.Contains(label, "goal")) || strings.Contains(label, "fg") {
		traits |= TraitFieldGoal
	}
	if strings.Contains(label, "touch") {
		traits |= TraitTouch
	}
	if strings.Contains(label, "touch") || label == "td" {
		traits |= TraitTouchdown
	}
	if strings.Contains(label, "touchdown") || label == "td" {
		traits |= TraitTouchdownLabel
	}
	if strings.Contains(label, "extra") || strings.Contains(label, "xp") || strings.Contains(label, "pat") {
		traits |= TraitExtraPoint
	}

	return kindOf(traits), traits
}

func kindOf(traits Traits) Kind {
	switch {
	case traits.Has(TraitKick):
		return KindKickoff
	case traits.Has(TraitPunt):
		return KindPunt
	case traits.Has(TraitExtraPoint):
		return KindExtraPoint
	case traits.Has(TraitFieldGoal):
		return KindFieldGoal
	case traits.Has(TraitTouchdown):
		return KindTouchdown
	case traits.Has(TraitPass):
		return KindPass
	case traits.Has(TraitRun):
		return KindRun
	default:
		return KindOther
	}
}
