// Package hotline provides the static emergency-contact directory for the
// province and its municipalities.
package hotline

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one municipality's emergency contact block.
type Entry struct {
	Name     string
	Contacts string
}

const provincialContacts = "0917335763 | 09611543688 | (036) 6410185"

var entries = []Entry{
	{"Anini-y", "09456009363"},
	{"Barbaza", "09630356439 | 09366594189"},
	{"Belison", "09177068793"},
	{"Bugasong", "09064437973"},
	{"Caluya", "09108621478"},
	{"Culasi", "09060439444 | 09612435152"},
	{"Hamtic", "09359298423 | 09067203929"},
	{"Laua-an", "09260364499 | 09630334491"},
	{"Libertad", "09511304178 | (036)2781686"},
	{"Pandan", "09234774774 | (036)2789068"},
	{"Patnongon", "09560441742"},
	{"San Jose", "09273875772 | 09192868863"},
	{"San Remegio", "09056756684 | 09957481064"},
	{"Sebaste", "09778513357"},
	{"Sibalom", "09485475457 | 09354031071"},
	{"Tibiao", "09778035582"},
	{"Tobias Fornier", "09997774775 | 09156322110"},
	{"Valderrama", "09177145517"},
}

var byNormalizedName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[Normalize(e.Name)] = e
	}
	return m
}()

// Normalize collapses a municipality name for matching: lowercase with
// hyphens and spaces removed, so "Anini-y", "aniniy" and "ANINI-Y" all
// resolve identically.
func Normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// Find resolves a municipality by name, tolerating case, hyphen and space
// differences.
func Find(input string) (Entry, bool) {
	e, ok := byNormalizedName[Normalize(input)]
	return e, ok
}

// ResolveMessage returns the outbound hotline text for the given input.
// The literal "all" (in any case) resolves to the aggregate provincial
// block. The second result is false when the input matches nothing.
func ResolveMessage(input string) (string, bool) {
	if Normalize(input) == "all" {
		return AllMessage(), true
	}
	e, ok := Find(input)
	if !ok {
		return "", false
	}
	return Message(e), true
}

// Message renders the hotline block for one municipality, with the
// provincial contacts appended.
func Message(e Entry) string {
	return fmt.Sprintf("🚨 EMERGENCY HOTLINES FOR %s 🚨\n\n📞 MDRRMO %s:\n%s\n\n📞 PDRRMO ANTIQUE (Provincial):\n%s\n\n⚠️ Save these numbers for emergencies!",
		strings.ToUpper(e.Name), strings.ToUpper(e.Name), e.Contacts, provincialContacts)
}

// AllMessage renders the aggregate block covering every municipality.
func AllMessage() string {
	var b strings.Builder
	b.WriteString("🚨 ANTIQUE EMERGENCY HOTLINES 🚨\n\n📞 PDRRMO ANTIQUE:\n")
	b.WriteString(provincialContacts)
	b.WriteString("\n\n🏘️ ALL MUNICIPAL DRRMO CONTACTS:")
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(strings.ToUpper(e.Name))
		b.WriteString(": ")
		b.WriteString(e.Contacts)
	}
	return b.String()
}

// PromptMessage renders the municipality-selection prompt listing every
// known name.
func PromptMessage() string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, "  "+e.Name)
	}
	sort.Strings(names)
	return "🏘️ Please type the name of your municipality to get the correct emergency hotlines.\n\nAvailable municipalities:\n\n" +
		strings.Join(names, "\n") +
		"\n\nOr type \"ALL\" to see all hotlines."
}
