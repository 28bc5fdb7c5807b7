package sensor

import (
	"errors"
	"testing"
)

const aavsSpacer = "GGGGCCACTAGGGACAGGAT"

// theoApt is the assembled theophylline aptamer, for readability in the
// expected sequences below.
const theoApt = "AUACCAGCC" + "GAAA" + "GGCCCUUGGCAG"

func Test_FromName_sequences(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"wt", "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC" + "UUUUUU"},
		{"dead", "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AACCCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC" + "UUUUUU"},

		{"us(4)", aavsSpacer + "GUUUUAGAGCUA" + theoApt + "UAGCAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(2)", aavsSpacer + "GUUUUAGAGC" + theoApt + "GCAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(0)", aavsSpacer + "GUUUUAGA" + theoApt + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(4,1)", aavsSpacer + "GUUUUAGAGCUA" + "U" + theoApt + "U" + "UAGCAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(4,7)", aavsSpacer + "GUUUUAGAGCUA" + "UUUCCCU" + theoApt + "UUUCCCU" + "UAGCAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(0,1)", aavsSpacer + "GUUUUAGA" + "U" + theoApt + "U" + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(0,7)", aavsSpacer + "GUUUUAGA" + "UUUCCCU" + theoApt + "UUUCCCU" + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(0,0,1)", aavsSpacer + "GUUUUAGA" + "AUACCAGCC" + "U" + "GGCCCUUGGCAG" + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(0,0,7)", aavsSpacer + "GUUUUAGA" + "AUACCAGCC" + "UUUCCCU" + "GGCCCUUGGCAG" + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"us(0,0,0,2)", aavsSpacer + "GUUUUAGA" + "AUACCAGCCAUACCAGCCGAAAGGCCCUUGGCAGGGCCCUUGGCAG" + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"ls(6)", aavsSpacer + "GUUUUA" + theoApt + "UAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"ls(5)", aavsSpacer + "GUUUU" + theoApt + "AAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"ls(0)", aavsSpacer + theoApt + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"ls(6,1)", aavsSpacer + "GUUUUA" + "U" + theoApt + "U" + "UAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"ls(6,7)", aavsSpacer + "GUUUUA" + "UUUCCCU" + theoApt + "UUUCCCU" + "UAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"ls(0,1)", aavsSpacer + "U" + theoApt + "U" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"ls(0,7)", aavsSpacer + "UUUCCCU" + theoApt + "UUUCCCU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"nx(0)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGG" + theoApt + "CCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nx(1)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGG" + "U" + theoApt + "U" + "CCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nx(6)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGG" + "UUUUUU" + theoApt + "UUUUUU" + "CCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"nxx(0,0)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AA" + theoApt + "GU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(1,1)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAG" + theoApt + "CGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(2,2)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGG" + theoApt + "CCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(2,3)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGG" + theoApt + "UCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(4,5,5)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCU" + "AUACCAGCC" + "UUUCC" + "GGCCCUUGGCAG" + "AGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(4,5,6)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCU" + "AUACCAGCC" + "UUUCCC" + "GGCCCUUGGCAG" + "AGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(4,5,7)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCU" + "AUACCAGCC" + "UUUCCCU" + "GGCCCUUGGCAG" + "AGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(4,5,8)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCU" + "AUACCAGCC" + "UUUCCCUU" + "GGCCCUUGGCAG" + "AGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(4,5,0,2)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCU" + "AUACCAGCCAUACCAGCCGAAAGGCCCUUGGCAGGGCCCUUGGCAG" + "AGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(4,5,0,3)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCU" + "AUACCAGCCAUACCAGCCAUACCAGCCGAAAGGCCCUUGGCAGGGCCCUUGGCAGGGCCCUUGGCAG" + "AGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"nxx(4,5,10,2)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCU" + "AUACCAGCCAUACCAGCC" + "UUUCCCUUUC" + "GGCCCUUGGCAGGGCCCUUGGCAG" + "AGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"fh(1,0)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCA" + theoApt + "GGCACCGAGUCGGUGC" + "UUUUUU"},
		{"fh(1,4)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUU" + theoApt + "AAGUGGCACCGAGUCGGUGC" + "UUUUUU"},
		{"fh(2,0)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUG" + theoApt + "UUUUUU"},
		{"fh(2,6)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGA" + theoApt + "CGGUGC" + "UUUUUU"},

		{"hp(0)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + theoApt + "UUUUUU"},
		{"hp(18)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUG" + theoApt + "UUUUUU"},
		{"hp(33)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC" + theoApt + "UUUUUU"},
		{"hp(39)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC" + "UUUCCC" + theoApt + "UUUUUU"},
		{"hp(49)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC" + "UUUCCCUUUCCCUUUC" + theoApt + "UUUUUU"},

		{"id(5,0)", aavsSpacer + "GUUUUAGA" + "AUACCAGCC"},
		{"id(5,1)", aavsSpacer + "GUUUUAGAG" + "AUACCAGCC"},
		{"id(5,2)", aavsSpacer + "GUUUUAGAGC" + "AUACCAGCC"},
		{"id(5,3)", aavsSpacer + "GUUUUAGAGCU" + "AUACCAGCC"},
		{"id(5,4)", aavsSpacer + "GUUUUAGAGCUA" + "AUACCAGCC"},
		{"id(3,0)", aavsSpacer + "GGCCCUUGGCAG" + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"id(3,1)", aavsSpacer + "GGCCCUUGGCAG" + "CAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"id(3,2)", aavsSpacer + "GGCCCUUGGCAG" + "GCAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"id(3,3)", aavsSpacer + "GGCCCUUGGCAG" + "AGCAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"id(3,4)", aavsSpacer + "GGCCCUUGGCAG" + "UAGCAAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"sb(2)", aavsSpacer + "GUUUUAGA" + "UCGU" + theoApt + "AC" + "GAAA" + "GUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"sb(8)", aavsSpacer + "GUUUUAGA" + "UCGUUAAAAU" + theoApt + "AUUUUAAC" + "GAAA" + "GUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"sl", aavsSpacer + "UCGGCUGA" + theoApt + "AAGUAGCC" + "GAAA" + "GGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"slx", aavsSpacer + "GUUAUCGA" + theoApt + "AAGUGAUAAC" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"sh(4)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "U" + "AUCA" + "AACG" + theoApt + "CGUU" + "GGCACCGAGUCGGUGC" + "UUUUUU"},
		{"sh(14)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "U" + "AUCA" + "AACGGACUAGCCUU" + theoApt + "AAGGCUAGUCCGUU" + "GGCACCGAGUCGGUGC" + "UUUUUU"},

		{"cb", aavsSpacer + "GUUUUA" + "ACUU" + theoApt + "AAGU" + "AAGUUAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"cbc/wo/slx/wo", aavsSpacer + "GUUGUC" + "ACUU" + theoApt + "AGGU" + "AAGU" + "GAUAAC" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"cbc/wo/sh/5", aavsSpacer + "GUUUUA" + "ACUU" + theoApt + "AGGU" + "AAGUUAAAAU" + "AAGGCUAGUCCGU" + "U" + "AUCA" + "AACGG" + theoApt + "CCGUU" + "GGCACCGAGUCGGUGC" + "UUUUUU"},
		{"cbc/wo/sh/7", aavsSpacer + "GUUUUA" + "ACUU" + theoApt + "AGGU" + "AAGUUAAAAU" + "AAGGCUAGUCCGU" + "U" + "AUCA" + "AACGGAC" + theoApt + "GUCCGUU" + "GGCACCGAGUCGGUGC" + "UUUUUU"},

		{"cl", aavsSpacer + "AGCCUUGA" + theoApt + "AAGU" + "AAGGCU" + "AAGGCUAGUCCGU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"ch(4)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCA" + "AUCA" + theoApt + "UGAU" + "GGCACCGAGUCGGUGC" + "UUUUUU"},
		{"ch(18)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCA" + "AAGGCUAGUCCGUUAUCA" + theoApt + "UGAUAACGGACUAGCCUU" + "GGCACCGAGUCGGUGC" + "UUUUUU"},

		{"rb(4,8)", aavsSpacer + "GUUUUA" + "NNNN" + theoApt + "NNNNNNNN" + "UAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"rb(5,7)", aavsSpacer + "GUUUUA" + "NNNNN" + theoApt + "NNNNNNN" + "UAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},
		{"rb(6,6)", aavsSpacer + "GUUUUA" + "NNNNNN" + theoApt + "NNNNNN" + "UAAAAU" + "AAGGCUAGUCCGUUAUCAACUUGAAAAAGUGGCACCGAGUCGGUGCUUUUUU"},

		{"rx(6,6)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AA" + "NNNNNN" + theoApt + "NNNNNN" + "GU" + "UAUCAACUUGAAAAAGUGGCACCGAGUCGGUGC" + "UUUUUU"},

		{"rh(6,6)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCA" + "NNNNNN" + theoApt + "NNNNNN" + "GGCACCGAGUCGGUGC" + "UUUUUU"},
		{"rh(6,5)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCA" + "NNNNNN" + theoApt + "NNNNN" + "GGCACCGAGUCGGUGC" + "UUUUUU"},
		{"rh(4,4)", aavsSpacer + "GUUUUAGAGCUAGAAAUAGCAAGUUAAAAU" + "AAGGCUAGUCCGU" + "UAUCA" + "NNNN" + theoApt + "NNNN" + "GGCACCGAGUCGGUGC" + "UUUUUU"},

		{"theo", theoApt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromName(tt.name)
			if err != nil {
				t.Fatalf("FromName(%q) error = %v", tt.name, err)
			}
			if got.Seq() != tt.want {
				t.Errorf("FromName(%q).Seq() = %v, want %v", tt.name, got.Seq(), tt.want)
			}
		})
	}
}

func Test_FromName_errors(t *testing.T) {
	tests := []string{
		"",
		"nosuchdesign",
		"us(5)",
		"us(4,0,0,0)",
		"fh(1,2,0)",
		"ls(7)",
		"nxx(5,0)",
		"nxx(0,6)",
		"nxx(0,0,4)",
		"nxx(0,0,5,0)",
		"fh(0,0)",
		"fh(3,0)",
		"fh(1,5)",
		"fh(2,7)",
		"id(0,0)",
		"id(hello,0)",
		"id(3,5)",
		"id(3,hello)",
		"sb(1)",
		"sh(3)",
		"sh(15)",
		"hu(4)",
		"cbc(wo,sh)",
		"cbc(wo,nope)",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := FromName(name); !errors.Is(err, ErrInvalidArg) {
				t.Errorf("FromName(%q) error = %v, want ErrInvalidArg", name, err)
			}
		})
	}
}

func Test_InduceDimerization_spacerless(t *testing.T) {
	got, err := InduceDimerization("5", 0, "theo", "")
	if err != nil {
		t.Fatal(err)
	}
	if want := "GUUUUAGA" + "AUACCAGCC"; got.Seq() != want {
		t.Errorf("InduceDimerization(5, 0) = %v, want %v", got.Seq(), want)
	}
}

func Test_DeadSgrna_mutations(t *testing.T) {
	dead, err := DeadSgrna("")
	if err != nil {
		t.Fatal(err)
	}
	nexus := dead.Domain("nexus")
	if nexus.Seq() != "AACCCUAGUCCGU" {
		t.Errorf("dead nexus = %v, want AACCCUAGUCCGU", nexus.Seq())
	}
	if nexus.Mutable {
		t.Error("dead nexus should be locked again after mutating")
	}
}

func Test_WtSgrna_fold(t *testing.T) {
	wt, err := WtSgrna("")
	if err != nil {
		t.Fatal(err)
	}
	want := "((((((..((((....))))....))))))" +
		"............." +
		".....((((....)))).((((((...))))))" +
		"......"
	if got := wt.ExpectedFold(); got != want {
		t.Errorf("wt fold = %v, want %v", got, want)
	}
}

func Test_constructNames(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"us(4,0)", "us(4)"},
		{"us 4 0", "us(4)"},
		{"us(0,0,7)", "us(0,0,7)"},
		{"us(0,0,0,2)", "us(0,0,0,2)"},
		{"cb", "cb"},
		{"cb/wo", "cb(wo)"},
		{"cbc/wo/slx/wo", "cbc(wo,slx,wo)"},
		{"sb(2)", "sb(2)"},
		{"fh(1,0)", "fh(1,0)"},
		{"id(5,2)", "id(5,2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromName(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != tt.want {
				t.Errorf("FromName(%q).Name = %v, want %v", tt.name, got.Name, tt.want)
			}
		})
	}
}

func Test_nameRoundTrip(t *testing.T) {
	names := []string{
		"wt", "dead", "us(2)", "ls(5,1)", "nx(3)", "nxx(1,2)", "fh(1,2)",
		"hp(18)", "id(5,2)", "sb(4)", "sl", "slx", "sh(6)", "cb(wo)",
		"cbc(wo,slx,wo)", "cl", "ch(6)", "hu(1)", "hx(2)", "hh(3)",
		"rb(4,8)", "rx(6,6)", "rh(5,5)",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			first, err := FromName(name)
			if err != nil {
				t.Fatal(err)
			}
			if first.Name != name {
				t.Fatalf("FromName(%q).Name = %v, not canonical", name, first.Name)
			}
			second, err := FromName(first.Name)
			if err != nil {
				t.Fatal(err)
			}
			if !second.Equal(first) {
				t.Errorf("FromName(%q) does not round-trip", name)
			}
		})
	}
}
