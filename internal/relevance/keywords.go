package relevance

// LegalKeywords is the default vocabulary for legal-topic matching.
// Entries are matched as lowercase substrings.
var LegalKeywords = []string{
	"legal", "lawyer", "attorney", "court", "visa", "residency", "permit",
	"contract", "agreement", "dispute", "lawsuit", "litigation", "notary",
	"attestation", "legalization", "power of attorney", "poa", "will",
	"inheritance", "divorce", "custody", "labor", "employment", "termination",
	"gratuity", "rera", "ejari", "tenancy", "lease", "rental", "landlord",
	"tenant", "eviction", "deposit", "cheque", "bounce", "debt", "fine",
	"traffic", "violation", "immigration", "deportation", "ban", "overstay",
	"sponsor", "sponsorship", "golden visa", "freelance visa", "company setup",
	"trade license", "freezone", "mainland", "llc", "establishment card",
	"mol", "mohre", "mofa", "moj", "ica", "gdrfa", "dha", "dewa",
	"typing center", "amer", "tasheel", "tas-heel",
}

// TranslationKeywords is the default vocabulary for translation-topic
// matching.
var TranslationKeywords = []string{
	"translation", "translate", "translator", "arabic", "english",
	"document", "certificate", "degree", "diploma", "transcript",
	"birth certificate", "marriage certificate", "death certificate",
	"police clearance", "good conduct", "medical report", "attestation",
	"apostille", "legalization", "notarization", "certified", "sworn",
	"official", "embassy", "consulate", "ministry", "government",
}
